// middleware собирает HTTP-мидлвары сервиса: сквозной request id,
// структурное логирование, таймаут запроса, перехват паник и
// bearer-аутентификацию.
package middleware

import "net/http"

// Middleware оборачивает http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain применяет мидлвары так, что первый в списке оказывается внешним:
// Chain(h, A, B) == A(B(h)).
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// statusWriter перехватывает статус и число записанных байт для лога доступа.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}

func (w *statusWriter) WriteHeader(code int) {
	// запоминается первый статус: повторный WriteHeader лог не искажает.
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(p)
	w.count += n
	return n, err
}

// Unwrap отдаёт исходный writer — его использует http.ResponseController.
func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
