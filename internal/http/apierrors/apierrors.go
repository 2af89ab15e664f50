// apierrors стандартизирует ответы об ошибках HTTP-слоя.
// На вход принимает доменную ошибку (сентинелы пакета service),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей;
//   - машиночитаемый code (его читает клиентский протокол сессии,
//     чтобы отличить восстановимый token_expired от фатального отказа).
package apierrors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kelvin100238453/gympro-backend/internal/service"
)

// APIError — единый формат ошибки для фронта.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Коды, на которые опирается клиентский протокол сессии.
const (
	CodeTokenExpired    = "token_expired"
	CodeUnauthenticated = "unauthenticated"
)

// ToHTTP конвертирует доменную ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - неизвестная ошибка — 500/internal (без утечки деталей).
func ToHTTP(err error) (int, APIError) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"}
	case errors.Is(err, service.ErrInvalidCredentials):
		// Неизвестный логин и неверный пароль неразличимы.
		return http.StatusUnauthorized, APIError{Code: "invalid_credentials", Message: "invalid credentials"}
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, APIError{Code: CodeTokenExpired, Message: "token expired"}
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenRevoked):
		return http.StatusUnauthorized, APIError{Code: CodeUnauthenticated, Message: "unauthenticated"}
	case errors.Is(err, service.ErrEmptyPassword):
		return http.StatusBadRequest, APIError{Code: "missing_password", Message: "password is required"}
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrNameTaken):
		return http.StatusBadRequest, APIError{Code: "duplicate", Message: "already registered"}
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, APIError{Code: "invalid_argument", Message: "invalid argument"}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "not found"}
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden, APIError{Code: "permission_denied", Message: "permission denied"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, APIError{Code: "deadline_exceeded", Message: "deadline exceeded"}
	default:
		return http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"}
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
