package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dewode_server/lib"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
)

func newMiddlewareForTest(t *testing.T) *Middleware {
	t.Helper()
	return NewMiddleware(&structs.Config{}, gecho.NewDefaultLogger(), nil, nil)
}

func csrfProtected(t *testing.T) http.Handler {
	t.Helper()
	mw := newMiddlewareForTest(t)
	return mw.CSRFMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestCSRFMiddlewareAllowsMatchingToken(t *testing.T) {
	handler := csrfProtected(t)

	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.AddCookie(&http.Cookie{Name: lib.CSRFCookieName, Value: "token-123"})
	r.Header.Set("X-CSRF-Token", "token-123")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCSRFMiddlewareRejectsMismatch(t *testing.T) {
	handler := csrfProtected(t)

	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.AddCookie(&http.Cookie{Name: lib.CSRFCookieName, Value: "token-123"})
	r.Header.Set("X-CSRF-Token", "token-456")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFMiddlewareRejectsMissingCookie(t *testing.T) {
	handler := csrfProtected(t)

	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.Header.Set("X-CSRF-Token", "token-123")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRFMiddlewareSkipsReads(t *testing.T) {
	handler := csrfProtected(t)

	r := httptest.NewRequest(http.MethodGet, "/auth/csrf", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
