// Package auth guards the editorial endpoints. Identity lives in the
// external auth provider; this package only verifies credentials, it never
// issues them. Two credentials are accepted: the shared service API key
// (X-API-Key header, constant-time comparison) and a Bearer JWT signed with
// HS256 by the auth provider (issuer and audience checked).
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"not-project-backend/internal/handler/http/respond"
)

type ctxKey string

const ctxSubject ctxKey = "subject"

// SubjectAPIKey is the context subject recorded for API-key callers.
const SubjectAPIKey = "service"

// Config holds the credential material for the middleware.
type Config struct {
	APIKey    string
	JWTSecret []byte
	Issuer    string
	Audience  string
}

// ConfigFromEnv reads API_KEY, JWT_SECRET, JWT_ISSUER, and JWT_AUDIENCE.
func ConfigFromEnv() Config {
	return Config{
		APIKey:    os.Getenv("API_KEY"),
		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		Issuer:    os.Getenv("JWT_ISSUER"),
		Audience:  os.Getenv("JWT_AUDIENCE"),
	}
}

// Authz wraps a protected handler using environment configuration. The
// environment is read once at wrap time, not per request.
func Authz(next http.Handler) http.Handler {
	return AuthzWith(ConfigFromEnv(), next)
}

// AuthzWith wraps a protected handler with explicit configuration. Either
// credential grants access; requests carrying neither get 401.
func AuthzWith(cfg Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get("X-API-Key"); key != "" {
			if apiKeyValid(cfg.APIKey, key) {
				ctx := context.WithValue(r.Context(), ctxSubject, SubjectAPIKey)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized: invalid api key"))
			return
		}

		subject, err := validateJWT(r.Header.Get("Authorization"), cfg)
		if err != nil {
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}
		ctx := context.WithValue(r.Context(), ctxSubject, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Subject returns the authenticated caller identity, or "" for
// unauthenticated requests.
func Subject(ctx context.Context) string {
	subject, _ := ctx.Value(ctxSubject).(string)
	return subject
}

func apiKeyValid(configured, presented string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(presented)) == 1
}

func validateJWT(authz string, cfg Config) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", errors.New("missing bearer token")
	}
	if len(cfg.JWTSecret) == 0 {
		return "", errors.New("jwt verification not configured")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	tok, err := parser.Parse(strings.TrimPrefix(authz, prefix), func(t *jwt.Token) (interface{}, error) {
		return cfg.JWTSecret, nil
	})
	if err != nil || !tok.Valid {
		return "", errors.New("invalid token")
	}

	subject, err := tok.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("invalid sub claim")
	}
	return subject, nil
}
