// Package validate runs go-playground/validator rules on form structs and
// returns Laravel-style, per-field messages in Spanish.
//
// Field names come from the `form` tag so messages and error keys match the
// HTML inputs:
//
//	type LoginForm struct {
//	    Email    string `form:"email"    validate:"required,email"`
//	    Password string `form:"password" validate:"required"`
//	}
//
//	errs := validate.Struct(in)
//	if validate.HasErrors(errs) { ... }
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return val
}

// Struct validates v. Returns a map of field name → message; an empty map
// means no errors.
func Struct(data any) map[string]string {
	errs := make(map[string]string)

	err := v.Struct(data)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

// HasErrors returns true if the error map is non-empty.
func HasErrors(errs map[string]string) bool {
	return len(errs) > 0
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio.", field)
	case "email":
		return fmt.Sprintf("El campo %s debe ser una dirección de correo válida.", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("El campo %s debe contener al menos %s caracteres.", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s debe ser al menos %s.", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("El campo %s no debe contener más de %s caracteres.", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s no debe ser mayor que %s.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("El campo %s seleccionado no es válido.", field)
	case "gte":
		return fmt.Sprintf("El campo %s debe ser mayor o igual que %s.", field, fe.Param())
	default:
		return fmt.Sprintf("El campo %s no es válido.", field)
	}
}
