package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kelvin100238453/gympro-backend/internal/http/apierrors"
	"github.com/kelvin100238453/gympro-backend/internal/models"
	"github.com/kelvin100238453/gympro-backend/internal/service"
)

type principalKey struct{}

// TokenValidator проверяет access-токен и возвращает принципала.
// Реализуется service.Service.
type TokenValidator interface {
	ValidateToken(ctx context.Context, accessToken string) (models.Principal, error)
}

// RequireAuth извлекает Bearer-токен из Authorization, валидирует его и
// кладёт принципала в контекст. Отсутствующий или невалидный токен — 401;
// код ошибки в теле различает просроченный токен (token_expired, клиент
// пойдёт на refresh) и битый (unauthenticated, клиенту остаётся logout).
func RequireAuth(v TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				// Отсутствие токена — фатальный отказ, не повод для refresh.
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			principal, err := v.ValidateToken(r.Context(), token)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom возвращает принципала из контекста.
func PrincipalFrom(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(models.Principal)
	return p, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) || len(auth) == len(prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
