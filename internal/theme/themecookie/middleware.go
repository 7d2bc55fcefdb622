package themecookie

import (
	"context"
	"net/http"

	"github.com/linemk/grouparena/internal/theme"
)

type contextKey string

const ThemeKey contextKey = "theme"

// Reader читает сохранённую тему из запроса
type Reader interface {
	Read(r *http.Request) theme.Theme
}

// NewMiddleware кладёт текущую тему в контекст запроса
func NewMiddleware(store Reader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ThemeKey, store.Read(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext извлекает тему из контекста, без middleware возвращает тему по умолчанию
func FromContext(ctx context.Context) theme.Theme {
	t, ok := ctx.Value(ThemeKey).(theme.Theme)
	if !ok {
		return theme.Default
	}
	return t
}
