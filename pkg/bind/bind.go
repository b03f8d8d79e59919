// Package bind decodes and validates an HTML form submission into a struct.
//
// Fields are matched by their `form` tag. String values are trimmed unless
// the tag carries the notrim option:
//
//	type LoginForm struct {
//	    Email    string `form:"email"            validate:"required,email"`
//	    Password string `form:"password,notrim"  validate:"required"`
//	    Remember bool   `form:"remember"`
//	}
package bind

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/ventas/config"
	"github.com/shashiranjanraj/ventas/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 1 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || n <= 0 {
		return 1 << 20
	}
	return n
}

// Form parses the request form into dest, which must be a pointer to a
// struct, and runs validation.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is unreadable or too large.
func Form(r *http.Request, dest any) (errs map[string]string, err error) {
	if r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())
	}
	if err = r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid form: %w", err)
	}

	if err = decode(r.PostForm, dest); err != nil {
		return nil, err
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

func decode(values map[string][]string, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind: dest must be a pointer to a struct, got %T", dest)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		raw := ""
		if vs := values[name]; len(vs) > 0 {
			raw = vs[0]
		}
		if opts != "notrim" {
			raw = strings.TrimSpace(raw)
		}

		if err := set(rv.Field(i), raw); err != nil {
			return fmt.Errorf("bind: field %s: %w", name, err)
		}
	}
	return nil
}

func set(v reflect.Value, raw string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		v.SetBool(checked(raw))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseUint(raw, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported kind %s", v.Kind())
	}
	return nil
}

// checked reports whether a checkbox value means "on".
func checked(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "on", "true", "yes":
		return true
	}
	return false
}
