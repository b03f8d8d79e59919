package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/ventas/app/services"
	"github.com/shashiranjanraj/ventas/pkg/auth"
	"github.com/shashiranjanraj/ventas/pkg/ctx"
	"github.com/shashiranjanraj/ventas/pkg/logger"
)

const (
	msgBadCredentials = "Estas credenciales no coinciden con nuestros registros."
	msgThrottled      = "Demasiados intentos de acceso. Por favor intente nuevamente en un minuto."
)

// LoginForm is the POST /login payload.
type LoginForm struct {
	Email    string `form:"email"           validate:"required,email,max=255"`
	Password string `form:"password,notrim" validate:"required"`
	Remember bool   `form:"remember"`
}

type AuthController struct {
	*Base
	service *services.AuthService
	guard   *auth.Guard
}

func NewAuthController(base *Base, service *services.AuthService, guard *auth.Guard) *AuthController {
	return &AuthController{Base: base, service: service, guard: guard}
}

// Home sends guests to the login form and users to the dashboard.
func (a *AuthController) Home(c *ctx.Context) {
	if a.guard.User(c.R) != nil {
		a.redirectTo(c, "dashboard", nil)
		return
	}
	a.redirectTo(c, "login", nil)
}

// ShowLogin renders the login form.
func (a *AuthController) ShowLogin(c *ctx.Context) {
	a.render(c, http.StatusOK, "auth/login", a.page(c, "Iniciar Sesión"))
}

func (a *AuthController) loginError(c *ctx.Context, status int, email string, errs map[string]string) {
	p := a.page(c, "Iniciar Sesión")
	p.Errors = errs
	p.Old = map[string]string{"email": email}
	a.render(c, status, "auth/login", p)
}

// Login authenticates the submitted credentials.
func (a *AuthController) Login(c *ctx.Context) {
	var form LoginForm
	errs, err := c.BindForm(&form)
	if err != nil {
		c.Error(http.StatusBadRequest, "Solicitud inválida.")
		return
	}
	if len(errs) > 0 {
		a.loginError(c, http.StatusUnprocessableEntity, form.Email, errs)
		return
	}

	user, err := a.service.Attempt(c.Context(), form.Email, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		logger.WithCtx(c.Context()).Info("login failed", "ip", c.ClientIP())
		a.loginError(c, http.StatusUnprocessableEntity, form.Email, map[string]string{"email": msgBadCredentials})
		return
	}
	if err != nil {
		a.fail(c, "login: attempt", err)
		return
	}

	if err := a.guard.Login(c.W, c.R, user, form.Remember); err != nil {
		a.fail(c, "login: start session", err)
		return
	}

	logger.WithCtx(c.Context()).Info("login", "user_id", user.ID, "remember", form.Remember)
	a.redirectTo(c, "dashboard", nil)
}

// Throttled re-renders the login form once the attempt budget is spent.
func (a *AuthController) Throttled(c *ctx.Context) {
	a.loginError(c, http.StatusTooManyRequests, c.PostForm("email"), map[string]string{"email": msgThrottled})
}

// Logout ends the session and returns to the home page.
func (a *AuthController) Logout(c *ctx.Context) {
	if err := a.guard.Logout(c.W, c.R); err != nil {
		a.fail(c, "logout", err)
		return
	}
	c.Redirect("/")
}
