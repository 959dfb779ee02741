package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"Pressfeed/internal/core/users"
)

const tokenIssuer = "pressfeed"

// TokenLifetime is how long a minted API token stays valid.
const TokenLifetime = 24 * time.Hour

// APITokens mints and verifies HS256 bearer tokens for non-browser
// clients. The subject claim is the username.
type APITokens struct {
	secret []byte
	users  users.Service
}

// NewAPITokens creates the token authority for the API surface
func NewAPITokens(secret []byte, userService users.Service) *APITokens {
	return &APITokens{secret: secret, users: userService}
}

// Mint builds and signs a token for the given username
func (t *APITokens) Mint(username string) (string, error) {
	now := time.Now()
	token, err := jwt.NewBuilder().
		Issuer(tokenIssuer).
		Subject(username).
		IssuedAt(now).
		Expiration(now.Add(TokenLifetime)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, t.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// Verify checks the signature and standard claims and returns the subject
func (t *APITokens) Verify(raw string) (string, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, t.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if token.Subject() == "" {
		return "", fmt.Errorf("token missing subject")
	}
	return token.Subject(), nil
}

// RequireUser authenticates API requests. A user already loaded from the
// session cookie is accepted as-is; otherwise a Bearer token is required.
// Failures are JSON 401s, never redirects.
func (t *APITokens) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) != nil {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeAuthError(w, "authentication required")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		username, err := t.Verify(raw)
		if err != nil {
			slog.Warn("api token rejected", "path", r.URL.Path, "error", err)
			writeAuthError(w, "invalid or expired token")
			return
		}

		user, err := t.users.GetByUsername(r.Context(), username)
		if err != nil {
			writeAuthError(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, withUser(r, user))
	})
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"AuthRequired","message":"` + message + `"}`))
}
