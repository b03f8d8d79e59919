// Package auth resolves the signed-in user of a request.
//
// The Guard looks at the session first (key "user_id") and falls back to
// the signed remember-me cookie, re-establishing the session when that
// cookie is valid.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/ventas/pkg/logger"
	"github.com/shashiranjanraj/ventas/pkg/session"
)

// SessionKey is where the signed-in user's id lives in the session.
const SessionKey = "user_id"

// Authenticatable is implemented by the user model.
type Authenticatable interface {
	AuthID() uint
	AuthRole() string
}

// UserProvider loads users by id. A missing user is reported as (nil, nil)
// or an error; both log the request out.
type UserProvider interface {
	Retrieve(ctx context.Context, id uint) (Authenticatable, error)
}

// GuardOptions configures the remember-me cookie.
type GuardOptions struct {
	Key          []byte
	CookieName   string
	RememberTTL  time.Duration
	SecureCookie bool
}

// Guard authenticates requests against the session and remember cookie.
type Guard struct {
	users UserProvider
	opts  GuardOptions
}

func NewGuard(users UserProvider, opts GuardOptions) *Guard {
	if opts.CookieName == "" {
		opts.CookieName = "ventas_remember"
	}
	if opts.RememberTTL <= 0 {
		opts.RememberTTL = 30 * 24 * time.Hour
	}
	return &Guard{users: users, opts: opts}
}

// User returns the authenticated user or nil for guests.
func (g *Guard) User(r *http.Request) Authenticatable {
	if u := UserFromCtx(r.Context()); u != nil {
		return u
	}

	sess := session.FromCtx(r)
	if id, ok := sess.GetUint(SessionKey); ok {
		if u := g.retrieve(r.Context(), id); u != nil {
			return u
		}
		sess.Delete(SessionKey)
	}

	cookie, err := r.Cookie(g.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := ParseRememberToken(g.opts.Key, cookie.Value)
	if err != nil {
		logger.WithCtx(r.Context()).Debug("auth: remember cookie rejected", "error", err)
		return nil
	}
	u := g.retrieve(r.Context(), claims.UserID)
	if u == nil {
		return nil
	}
	sess.Set(SessionKey, u.AuthID())
	return u
}

func (g *Guard) retrieve(ctx context.Context, id uint) Authenticatable {
	u, err := g.users.Retrieve(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Debug("auth: user lookup failed", "user_id", id, "error", err)
		return nil
	}
	return u
}

// Login regenerates the session and stores the user's id in it. With
// remember set, a signed cookie keeps the user signed in after the session
// expires.
func (g *Guard) Login(w http.ResponseWriter, r *http.Request, u Authenticatable, remember bool) error {
	sess := session.FromCtx(r)
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(SessionKey, u.AuthID())

	if !remember {
		return nil
	}
	token, err := IssueRememberToken(g.opts.Key, u.AuthID(), g.opts.RememberTTL)
	if err != nil {
		return fmt.Errorf("auth: remember token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     g.opts.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(g.opts.RememberTTL.Seconds()),
		HttpOnly: true,
		Secure:   g.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout invalidates the session and expires the remember cookie.
func (g *Guard) Logout(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     g.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return session.FromCtx(r).Invalidate()
}

// ------------------- Context -------------------

type ctxKey struct{}

// WithUser stores u in ctx. Called by the Authenticate middleware.
func WithUser(ctx context.Context, u Authenticatable) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromCtx returns the user stored by WithUser, or nil.
func UserFromCtx(ctx context.Context) Authenticatable {
	u, _ := ctx.Value(ctxKey{}).(Authenticatable)
	return u
}

// HasRole reports whether u carries one of roles.
func HasRole(u Authenticatable, roles ...string) bool {
	if u == nil {
		return false
	}
	for _, role := range roles {
		if u.AuthRole() == role {
			return true
		}
	}
	return false
}
