// errors переводит ошибки сервисного слоя в HTTP-ответы posts-сервиса.
// Тело ответа — короткий текст без конверта; детали наружу не уходят.
package errors

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/go-social-platform/internal/service"
)

// StatusClientClosedRequest — клиент закрыл соединение до ответа.
const StatusClientClosedRequest = 499

// ToHTTP возвращает HTTP-статус и безопасное сообщение для ошибки.
// Неизвестные ошибки (и nil) дают 500.
func ToHTTP(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal error"
	case stderrors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid argument"
	case stderrors.Is(err, service.ErrUnauthenticated):
		return http.StatusBadRequest, "unauthenticated"
	case stderrors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden, "permission denied"
	case stderrors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not found"
	case stderrors.Is(err, service.ErrConflict):
		return http.StatusConflict, "conflict"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "request canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// WriteError пишет ответ об ошибке как text/plain.
func WriteError(w http.ResponseWriter, _ *http.Request, err error) {
	code, msg := ToHTTP(err)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
