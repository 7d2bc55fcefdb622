package themecookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linemk/grouparena/internal/theme"
	"github.com/linemk/grouparena/internal/theme/themecookie"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_PutsThemeIntoContext(t *testing.T) {
	store, err := theme.NewCookieStore("testsecret", "", time.Hour)
	assert.NoError(t, err)

	token, err := store.NewToken(theme.Light)
	assert.NoError(t, err)

	var got theme.Theme
	handler := themecookie.NewMiddleware(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = themecookie.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: theme.CookieName, Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, theme.Light, got)
}

func TestMiddleware_InvalidCookieFallsBack(t *testing.T) {
	store, err := theme.NewCookieStore("testsecret", "", time.Hour)
	assert.NoError(t, err)

	var got theme.Theme
	handler := themecookie.NewMiddleware(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = themecookie.FromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: theme.CookieName, Value: "garbage"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, theme.Default, got)
}

func TestFromContext_WithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, theme.Default, themecookie.FromContext(req.Context()))
}
