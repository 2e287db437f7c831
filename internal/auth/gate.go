// auth — Identity Gate: сессионный JWT (HS256) -> member id.
// Токены выпускает внешний провайдер, здесь только проверка.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pribylovaa/go-social-platform/internal/config"
)

var (
	// ErrNoCredential — в запросе нет ни Bearer-заголовка, ни cookie.
	ErrNoCredential = errors.New("no credential")
	// ErrInvalidToken — подпись/срок/issuer/audience не прошли проверку.
	ErrInvalidToken = errors.New("invalid token")
)

type sessionClaims struct {
	MemberID string `json:"uid"`
	jwt.RegisteredClaims
}

// Gate проверяет сессионный токен.
type Gate struct {
	secret   []byte
	issuer   string
	audience string
	cookie   string
}

// NewGate создаёт Gate из секции auth конфигурации.
func NewGate(cfg config.AuthConfig) *Gate {
	return &Gate{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		cookie:   cfg.CookieName,
	}
}

// Credential извлекает сырой токен: сначала Authorization: Bearer, затем cookie.
func (g *Gate) Credential(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if parts := strings.SplitN(h, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if g.cookie != "" {
		if c, err := r.Cookie(g.cookie); err == nil {
			return strings.TrimSpace(c.Value)
		}
	}

	return ""
}

// Resolve возвращает member id вызывающего.
func (g *Gate) Resolve(r *http.Request) (string, error) {
	raw := g.Credential(r)
	if raw == "" {
		return "", ErrNoCredential
	}

	return g.Validate(raw)
}

// Validate проверяет токен и возвращает member id (claim uid, иначе sub).
func (g *Gate) Validate(tokenStr string) (string, error) {
	const op = "auth/Validate"

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5 * time.Second),
		jwt.WithExpirationRequired(),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}
	if g.audience != "" {
		opts = append(opts, jwt.WithAudience(g.audience))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{},
		func(*jwt.Token) (interface{}, error) { return g.secret, nil },
		opts...,
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	id := claims.MemberID
	if id == "" {
		id = claims.Subject
	}

	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%s: %w: empty subject", op, ErrInvalidToken)
	}

	return id, nil
}

type ctxKey struct{}

// WithMemberID кладёт id вызывающего в контекст.
func WithMemberID(ctx context.Context, memberID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, memberID)
}

// MemberIDFrom возвращает id вызывающего; "" — аноним.
func MemberIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}
