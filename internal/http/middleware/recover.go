package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/kelvin100238453/gympro-backend/internal/http/apierrors"
	logctx "github.com/kelvin100238453/gympro-backend/internal/pkg/log"
)

// Recover перехватывает панику обработчика: пишет её в лог вместе со
// стеком и отвечает клиенту унифицированным 500. Детали паники наружу
// не отдаются.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("reason", rec),
					slog.String("stack", string(debug.Stack())),
				)
				apierrors.WriteError(w, r, errors.New("internal"))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
