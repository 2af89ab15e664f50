package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout гарантирует дедлайн у контекста запроса: без него зависший
// запрос к БД держал бы соединение бесконечно. Уже установленный
// дедлайн не сужается; d <= 0 отключает мидлвар.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if _, ok := ctx.Deadline(); !ok {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
