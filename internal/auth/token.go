// Package auth resolves an opaque account identifier from inbound
// requests. The rest of the server consumes only that single
// capability; credentials never travel past this package.
package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// SessionCookie is the cookie the login handler sets.
const SessionCookie = "pixelart_session"

const tokenTTL = 7 * 24 * time.Hour

// TokenManager mints and verifies the JWTs that carry the account id.
type TokenManager struct {
	secret []byte
}

// NewTokenManager creates a manager signing with the given secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue mints a signed token whose subject is the account id.
func (m *TokenManager) Issue(accountID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the account id it carries.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

type contextKey struct{}

// AccountID returns the authenticated account id stored by Middleware.
func AccountID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok
}

// Middleware rejects requests that carry no valid token and stores the
// resolved account id in the request context. Tokens are accepted from
// an Authorization bearer header or the session cookie.
func (m *TokenManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		accountID, err := m.Verify(token)
		if err != nil {
			log.Printf("[Auth] rejected token: %v", err)
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), contextKey{}, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
