package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/ventas/pkg/auth"
)

type user struct{ role string }

func (u user) AuthID() uint     { return 1 }
func (u user) AuthRole() string { return u.role }

func TestHasRole(t *testing.T) {
	h := HasRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		user   auth.Authenticatable
		status int
	}{
		{"admin passes", user{role: "admin"}, http.StatusNoContent},
		{"member is forbidden", user{role: "member"}, http.StatusForbidden},
		{"no user is forbidden", nil, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/sales/1/pdf", nil)
			if tc.user != nil {
				req = req.WithContext(auth.WithUser(req.Context(), tc.user))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
