package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pribylovaa/go-social-platform/internal/config"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

func newGate() *Gate {
	return NewGate(config.AuthConfig{
		JWTSecret:  testSecret,
		Issuer:     "auth",
		Audience:   "social",
		CookieName: "session",
	})
}

// sign выпускает токен так, как это делает внешний провайдер.
func sign(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"uid": "M1",
		"iss": "auth",
		"aud": "social",
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	g := newGate()

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	wrongAud := validClaims()
	wrongAud["aud"] = "other"

	noExp := validClaims()
	delete(noExp, "exp")

	subOnly := validClaims()
	delete(subOnly, "uid")
	subOnly["sub"] = "M9"

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{"ok", sign(t, jwt.SigningMethodHS256, testSecret, validClaims()), "M1", false},
		{"sub fallback", sign(t, jwt.SigningMethodHS256, testSecret, subOnly), "M9", false},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, "another-secret-0000", validClaims()), "", true},
		{"wrong alg", sign(t, jwt.SigningMethodHS512, testSecret, validClaims()), "", true},
		{"expired", sign(t, jwt.SigningMethodHS256, testSecret, expired), "", true},
		{"no exp", sign(t, jwt.SigningMethodHS256, testSecret, noExp), "", true},
		{"wrong audience", sign(t, jwt.SigningMethodHS256, testSecret, wrongAud), "", true},
		{"garbage", "not.a.jwt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := g.Validate(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, id)
		})
	}
}

func TestResolve_BearerAndCookie(t *testing.T) {
	t.Parallel()
	g := newGate()
	tok := sign(t, jwt.SigningMethodHS256, testSecret, validClaims())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := g.Resolve(r)
	require.ErrorIs(t, err, ErrNoCredential)

	r.Header.Set("Authorization", "Bearer "+tok)
	id, err := g.Resolve(r)
	require.NoError(t, err)
	require.Equal(t, "M1", id)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "session", Value: tok})
	id, err = g.Resolve(r)
	require.NoError(t, err)
	require.Equal(t, "M1", id)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic abc")
	_, err = g.Resolve(r)
	require.ErrorIs(t, err, ErrNoCredential)
}

func TestMemberIDContext(t *testing.T) {
	t.Parallel()

	require.Empty(t, MemberIDFrom(context.Background()))
	require.Equal(t, "M1", MemberIDFrom(WithMemberID(context.Background(), "M1")))
}
