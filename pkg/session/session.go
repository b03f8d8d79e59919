// Package session provides cookie-identified HTTP sessions whose data lives
// in a cache.Store (Redis in production, memory in tests).
//
// Usage (middleware):
//
//	mgr := session.NewManager(store, session.DefaultOptions())
//	r.Use(mgr.Middleware())
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Set("user_id", 42)
//	id, _ := sess.GetUint("user_id")
//
// The middleware persists the session and writes the cookie just before the
// response headers go out, so handlers never call Save themselves.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/ventas/pkg/cache"
	"github.com/shashiranjanraj/ventas/pkg/logger"
)

const flashPrefix = "_flash_"

// ------------------- Options -------------------

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CookieName: "ventas_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		Secure:     false, // set true in production
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// ------------------- Manager -------------------

// Manager loads and persists sessions in a cache store.
type Manager struct {
	store cache.Store
	opts  Options
}

func NewManager(store cache.Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = DefaultOptions().CookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultOptions().TTL
	}
	if opts.Path == "" {
		opts.Path = "/"
	}
	return &Manager{store: store, opts: opts}
}

// Options returns the manager's cookie settings.
func (m *Manager) Options() Options { return m.opts }

func storeKey(id string) string { return "ventas:session:" + id }

// newID generates a cryptographically random 32-byte hex session ID.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Start loads the session named by the request cookie. Unknown or expired
// ids are replaced by a fresh id.
func (m *Manager) Start(r *http.Request) (*Session, error) {
	sess := &Session{mgr: m, data: map[string]any{}}

	if cookie, err := r.Cookie(m.opts.CookieName); err == nil && cookie.Value != "" {
		var data map[string]any
		err := m.store.Get(r.Context(), storeKey(cookie.Value), &data)
		switch {
		case err == nil:
			sess.id = cookie.Value
			if data != nil {
				sess.data = data
			}
			return sess, nil
		case !errors.Is(err, cache.ErrMiss):
			logger.WithCtx(r.Context()).Warn("session: load failed", "error", err)
		}
	}

	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("session: new id: %w", err)
	}
	sess.id = id
	return sess, nil
}

// Create persists a new session holding data and returns its id.
func (m *Manager) Create(ctx context.Context, data map[string]any) (string, error) {
	id, err := newID()
	if err != nil {
		return "", fmt.Errorf("session: new id: %w", err)
	}
	if err := m.store.Set(ctx, storeKey(id), data, m.opts.TTL); err != nil {
		return "", fmt.Errorf("session: save: %w", err)
	}
	return id, nil
}

// Peek returns the stored data for id without touching the cookie.
func (m *Manager) Peek(ctx context.Context, id string) (map[string]any, error) {
	var data map[string]any
	if err := m.store.Get(ctx, storeKey(id), &data); err != nil {
		return nil, err
	}
	return data, nil
}

// ------------------- Session -------------------

type ctxKey struct{}

// Session is an in-request session handle.
type Session struct {
	mgr     *Manager
	id      string
	staleID string
	data    map[string]any
	changed bool
}

// Set stores a value under key in the session.
func (s *Session) Set(key string, value any) {
	s.data[key] = value
	s.changed = true
}

// Get retrieves a value from the session.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString is a typed convenience getter.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// GetUint is a typed convenience getter for ids.
func (s *Session) GetUint(key string) (uint, bool) {
	v, ok := s.data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64: // JSON numbers unmarshal as float64
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case uint:
		return n, true
	}
	return 0, false
}

// Delete removes a key from the session.
func (s *Session) Delete(key string) {
	if _, ok := s.data[key]; !ok {
		return
	}
	delete(s.data, key)
	s.changed = true
}

// Flash stores a value that survives until it is read once.
func (s *Session) Flash(key string, value any) {
	s.Set(flashPrefix+key, value)
}

// GetFlash retrieves and removes a flash value.
func (s *Session) GetFlash(key string) (any, bool) {
	v, ok := s.Get(flashPrefix + key)
	if ok {
		s.Delete(flashPrefix + key)
	}
	return v, ok
}

// FlashString is GetFlash for string values.
func (s *Session) FlashString(key string) string {
	v, _ := s.GetFlash(key)
	str, _ := v.(string)
	return str
}

// Has reports whether key or its flash counterpart is present.
func (s *Session) Has(key string) bool {
	if _, ok := s.data[key]; ok {
		return true
	}
	_, ok := s.data[flashPrefix+key]
	return ok
}

// Regenerate moves the data to a new id. The old id is discarded on save.
func (s *Session) Regenerate() error {
	id, err := newID()
	if err != nil {
		return fmt.Errorf("session: new id: %w", err)
	}
	if s.staleID == "" {
		s.staleID = s.id
	}
	s.id = id
	s.changed = true
	return nil
}

// Invalidate drops all data and regenerates the id (logout).
func (s *Session) Invalidate() error {
	s.data = map[string]any{}
	return s.Regenerate()
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Save persists the session and writes the cookie to the response.
func (s *Session) Save(ctx context.Context, w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}

	opts := s.mgr.opts
	if s.staleID != "" {
		if err := s.mgr.store.Del(ctx, storeKey(s.staleID)); err != nil {
			return fmt.Errorf("session: drop old id: %w", err)
		}
		s.staleID = ""
	}
	if err := s.mgr.store.Set(ctx, storeKey(s.id), s.data, opts.TTL); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    s.id,
		Path:     opts.Path,
		MaxAge:   int(opts.TTL.Seconds()),
		HttpOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})

	s.changed = false
	return nil
}

// ------------------- Middleware -------------------

// savingWriter persists the session right before the headers are sent.
type savingWriter struct {
	http.ResponseWriter
	sess        *Session
	ctx         context.Context
	wroteHeader bool
}

func (w *savingWriter) save() {
	if err := w.sess.Save(w.ctx, w.ResponseWriter); err != nil {
		logger.WithCtx(w.ctx).Error("session: save failed", "error", err)
	}
}

func (w *savingWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.save()
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *savingWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *savingWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Middleware loads (or creates) the session for every request and injects it
// into the request context. Handlers call session.FromCtx(r) to access it.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := m.Start(r)
			if err != nil {
				logger.WithCtx(r.Context()).Error("session: start failed", "error", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			sw := &savingWriter{ResponseWriter: w, sess: sess, ctx: ctx}
			next.ServeHTTP(sw, r.WithContext(ctx))

			// Covers handlers that never wrote, and late changes made after
			// the headers went out (the cookie is lost but the data is kept).
			sw.save()
		})
	}
}

// FromCtx retrieves the session from the request context.
// Returns an empty, detached session if none is present.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	return &Session{mgr: NewManager(cache.NewMemory(), DefaultOptions()), data: map[string]any{}}
}
