package middleware

import (
	"log/slog"
	"net/http"
	"time"

	logctx "github.com/kelvin100238453/gympro-backend/internal/pkg/log"
)

// Logging кладёт request-scoped логгер в контекст и пишет access-запись
// на каждый запрос. Request id берётся из контекста (см. RequestID),
// поэтому Logging должен стоять в цепочке после него.
func Logging(l *slog.Logger) Middleware {
	if l == nil {
		l = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logctx.Into(r.Context(), l)
			if rid := RequestIDFrom(ctx); rid != "" {
				ctx, _ = logctx.With(ctx, slog.String("request_id", rid))
			}
			r = r.WithContext(ctx)

			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			// Обработчик мог не написать ни байта — тогда net/http отдаст 200.
			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}

			logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelInfo, "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", sw.count),
				slog.Duration("dur", time.Since(start)),
			)
		})
	}
}
