package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ventas/pkg/cache"
	"github.com/shashiranjanraj/ventas/pkg/session"
)

var testKey = []byte("test-key")

type fakeUser struct {
	id   uint
	role string
}

func (u fakeUser) AuthID() uint     { return u.id }
func (u fakeUser) AuthRole() string { return u.role }

type fakeProvider map[uint]fakeUser

func (p fakeProvider) Retrieve(_ context.Context, id uint) (Authenticatable, error) {
	u, ok := p[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, CheckPassword(hash, "secret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestRememberToken(t *testing.T) {
	token, err := IssueRememberToken(testKey, 9, time.Hour)
	require.NoError(t, err)

	claims, err := ParseRememberToken(testKey, token)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)

	_, err = ParseRememberToken([]byte("other-key"), token)
	assert.Error(t, err)

	expired, err := IssueRememberToken(testKey, 9, -time.Minute)
	require.NoError(t, err)
	_, err = ParseRememberToken(testKey, expired)
	assert.Error(t, err)
}

// serve runs fn inside the session middleware and returns the recorder.
func serve(mgr *session.Manager, req *http.Request, fn func(w http.ResponseWriter, r *http.Request)) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mgr.Middleware()(http.HandlerFunc(fn)).ServeHTTP(rec, req)
	return rec
}

func TestGuardLoginAndRemember(t *testing.T) {
	mgr := session.NewManager(cache.NewMemory(), session.DefaultOptions())
	guard := NewGuard(fakeProvider{1: {id: 1, role: "admin"}}, GuardOptions{Key: testKey})

	rec := serve(mgr, httptest.NewRequest(http.MethodPost, "/login", nil), func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, guard.Login(w, r, fakeUser{id: 1, role: "admin"}, true))
		assert.NotNil(t, guard.User(r))
	})

	var remember *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "ventas_remember" {
			remember = c
		}
	}
	require.NotNil(t, remember)

	// A new browser session with only the remember cookie is still signed in.
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(remember)
	serve(mgr, req, func(w http.ResponseWriter, r *http.Request) {
		u := guard.User(r)
		require.NotNil(t, u)
		assert.Equal(t, uint(1), u.AuthID())
		id, ok := session.FromCtx(r).GetUint(SessionKey)
		assert.True(t, ok)
		assert.Equal(t, uint(1), id)
	})
}

func TestGuardGuestAndLogout(t *testing.T) {
	mgr := session.NewManager(cache.NewMemory(), session.DefaultOptions())
	guard := NewGuard(fakeProvider{1: {id: 1}}, GuardOptions{Key: testKey})

	serve(mgr, httptest.NewRequest(http.MethodGet, "/", nil), func(w http.ResponseWriter, r *http.Request) {
		assert.Nil(t, guard.User(r))
	})

	id, err := mgr.Create(context.Background(), map[string]any{SessionKey: 1})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "ventas_session", Value: id})

	rec := serve(mgr, req, func(w http.ResponseWriter, r *http.Request) {
		require.NotNil(t, guard.User(r))
		require.NoError(t, guard.Logout(w, r))
		_, ok := session.FromCtx(r).GetUint(SessionKey)
		assert.False(t, ok)
	})

	for _, c := range rec.Result().Cookies() {
		if c.Name == "ventas_remember" {
			assert.Equal(t, -1, c.MaxAge)
		}
	}
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole(fakeUser{role: "admin"}, "admin"))
	assert.False(t, HasRole(fakeUser{role: "member"}, "admin"))
	assert.False(t, HasRole(nil, "admin"))
}
