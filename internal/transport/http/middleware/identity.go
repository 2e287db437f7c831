package middleware

import (
	"errors"
	"net/http"

	"github.com/pribylovaa/go-social-platform/internal/auth"
	"github.com/pribylovaa/go-social-platform/pkg/log"
	"github.com/pribylovaa/go-social-platform/pkg/redact"
)

// Resolver — Identity Gate: сессия запроса -> member id.
type Resolver interface {
	// Credential — сырой токен запроса или "".
	Credential(r *http.Request) string
	Resolve(r *http.Request) (string, error)
}

// Identity кладёт member id вызывающего в контекст (auth.WithMemberID).
// Запрос без сессии или с невалидной сессией идёт дальше анонимно:
// отказ для мутирующих операций принимает сервисный слой.
func Identity(gate Resolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			memberID, err := gate.Resolve(r)
			switch {
			case err == nil:
				ctx := auth.WithMemberID(r.Context(), memberID)
				ctx = log.Into(ctx, log.From(ctx).With("member_id", memberID))
				r = r.WithContext(ctx)
			case errors.Is(err, auth.ErrNoCredential):
			default:
				log.From(r.Context()).Warn("invalid session credential",
					"credential", redact.Credential(gate.Credential(r)),
					"err", err,
				)
			}

			next.ServeHTTP(w, r)
		})
	}
}
