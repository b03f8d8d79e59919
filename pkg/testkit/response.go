package testkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ventas/pkg/auth"
)

// flashPrefix mirrors how the session package stores flashed keys.
const flashPrefix = "_flash_"

// Response wraps a recorded response. Every assertion returns the response
// so calls can be chained.
type Response struct {
	t      testing.TB
	client *Client

	Recorder *httptest.ResponseRecorder
}

func (r *Response) Status() int         { return r.Recorder.Code }
func (r *Response) Body() string        { return r.Recorder.Body.String() }
func (r *Response) Header() http.Header { return r.Recorder.Header() }

func (r *Response) AssertStatus(code int) *Response {
	r.t.Helper()
	assert.Equal(r.t, code, r.Status(), "unexpected status; body:\n%s", r.Body())
	return r
}

func (r *Response) AssertOK() *Response {
	r.t.Helper()
	return r.AssertStatus(http.StatusOK)
}

func (r *Response) AssertForbidden() *Response {
	r.t.Helper()
	return r.AssertStatus(http.StatusForbidden)
}

func (r *Response) AssertNotFound() *Response {
	r.t.Helper()
	return r.AssertStatus(http.StatusNotFound)
}

// AssertRedirect checks for a 3xx response pointing at location.
func (r *Response) AssertRedirect(location string) *Response {
	r.t.Helper()
	assert.GreaterOrEqual(r.t, r.Status(), 300, "expected a redirect")
	assert.Less(r.t, r.Status(), 400, "expected a redirect")
	assert.Equal(r.t, location, r.Header().Get("Location"))
	return r
}

func (r *Response) AssertHeader(key, value string) *Response {
	r.t.Helper()
	assert.Equal(r.t, value, r.Header().Get(key))
	return r
}

// AssertSee checks that text occurs in the body, either raw or HTML-escaped.
func (r *Response) AssertSee(text string) *Response {
	r.t.Helper()
	body := r.Body()
	if !strings.Contains(body, text) && !strings.Contains(body, escape(text)) {
		assert.Fail(r.t, "text not found in response", "%q not in:\n%s", text, body)
	}
	return r
}

func (r *Response) AssertDontSee(text string) *Response {
	r.t.Helper()
	body := r.Body()
	assert.NotContains(r.t, body, text)
	if e := escape(text); e != text {
		assert.NotContains(r.t, body, e)
	}
	return r
}

// AssertSessionHas checks the client's current session for key, flashed or
// not. When value is given the stored value must equal it.
func (r *Response) AssertSessionHas(key string, value ...any) *Response {
	r.t.Helper()
	data := r.session()
	got, ok := data[key]
	if !ok {
		got, ok = data[flashPrefix+key]
	}
	if !assert.True(r.t, ok, "session has no %q: %v", key, data) {
		return r
	}
	if len(value) > 0 {
		assert.Equal(r.t, value[0], got, "session value for %q", key)
	}
	return r
}

// AssertAuthenticated checks that the session carries a logged-in user.
func (r *Response) AssertAuthenticated() *Response {
	r.t.Helper()
	_, ok := r.session()[auth.SessionKey]
	assert.True(r.t, ok, "expected an authenticated session")
	return r
}

// AssertGuest checks that no user is logged into the session.
func (r *Response) AssertGuest() *Response {
	r.t.Helper()
	_, ok := r.session()[auth.SessionKey]
	assert.False(r.t, ok, "expected a guest session")
	return r
}

func (r *Response) session() map[string]any {
	r.t.Helper()
	c := r.client
	require.NotNil(r.t, c.sessions, "testkit: session assertions need a session manager")

	id, ok := c.Cookie(c.sessions.Options().CookieName)
	if !ok {
		return map[string]any{}
	}
	data, err := c.sessions.Peek(context.Background(), id)
	if err != nil {
		return map[string]any{}
	}
	return data
}

var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`'`, "&#39;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&#34;",
)

func escape(s string) string { return htmlEscaper.Replace(s) }
