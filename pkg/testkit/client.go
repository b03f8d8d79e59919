// Package testkit drives the full HTTP stack from feature tests: it keeps a
// cookie jar across requests, can log a user in directly and wraps responses
// with testify-backed assertions.
//
//	c := testkit.New(t, k.Handler(), k.Sessions)
//	c.ActingAs(admin).Get("/sales").AssertOK().AssertSee("Generar PDF")
package testkit

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ventas/pkg/auth"
	"github.com/shashiranjanraj/ventas/pkg/session"
)

// baseURL is the origin every request is addressed to.
const baseURL = "http://ventas.test"

// Client sends requests straight into an http.Handler.
type Client struct {
	t        testing.TB
	handler  http.Handler
	sessions *session.Manager
	jar      http.CookieJar
	base     *url.URL
	headers  http.Header
}

// New returns a client for handler. sessions may be nil when the test never
// inspects the session.
func New(t testing.TB, handler http.Handler, sessions *session.Manager) *Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	base, err := url.Parse(baseURL)
	require.NoError(t, err)
	return &Client{t: t, handler: handler, sessions: sessions, jar: jar, base: base, headers: http.Header{}}
}

// ActingAs starts an authenticated session for u without going through the
// login form.
func (c *Client) ActingAs(u auth.Authenticatable) *Client {
	c.t.Helper()
	require.NotNil(c.t, c.sessions, "testkit: ActingAs needs a session manager")

	id, err := c.sessions.Create(context.Background(), map[string]any{auth.SessionKey: u.AuthID()})
	require.NoError(c.t, err)
	c.jar.SetCookies(c.base, []*http.Cookie{{
		Name:  c.sessions.Options().CookieName,
		Value: id,
		Path:  "/",
	}})
	return c
}

// WithHeader adds a header to every following request.
func (c *Client) WithHeader(key, value string) *Client {
	c.headers.Set(key, value)
	return c
}

// Cookie returns the current value of a cookie in the jar.
func (c *Client) Cookie(name string) (string, bool) {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value, true
		}
	}
	return "", false
}

func (c *Client) Get(path string) *Response {
	return c.Do(http.MethodGet, path, nil)
}

func (c *Client) Post(path string, form url.Values) *Response {
	return c.Do(http.MethodPost, path, form)
}

func (c *Client) Delete(path string, form url.Values) *Response {
	return c.Do(http.MethodDelete, path, form)
}

// Do sends a request with an optional url-encoded form body. Redirects are
// not followed.
func (c *Client) Do(method, path string, form url.Values) *Response {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, baseURL+path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for _, ck := range c.jar.Cookies(req.URL) {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	res := rec.Result()
	c.jar.SetCookies(req.URL, res.Cookies())
	return &Response{t: c.t, client: c, Recorder: rec}
}
