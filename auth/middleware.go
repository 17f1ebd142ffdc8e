// HTTP middleware gating authenticated endpoints. The middleware verifies
// the bearer access token, consults the blacklist, and injects the caller's
// identity into the request context for downstream ownership checks.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/config"
)

// ContextKey is a dedicated type for context keys to avoid collisions.
type ContextKey string

const (
	// UserIDKey stores the authenticated caller's user ID in the request context.
	UserIDKey ContextKey = "userID"
	// UsernameKey stores the authenticated caller's username in the request context.
	UsernameKey ContextKey = "username"
)

// JWTMiddleware authenticates requests. The access token must parse, carry a
// valid signature, be of type "access", and not be on the blacklist. When the
// blacklist cannot be consulted the request is rejected: a token whose
// revocation state is unknown is treated as unusable.
func JWTMiddleware(cfg *config.AuthConfig, blacklist TokenBlacklist) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			tokenString := parts[1]
			claims := &CustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				WriteError(w, r, apperror.NewAuthError("Invalid token", err))
				return
			}

			// Only access tokens prove identity on API calls. A refresh token,
			// however valid, must not pass the gate.
			if claims.TokenType != tokenTypeAccess {
				WriteError(w, r, apperror.NewAuthError("Invalid token type", nil))
				return
			}
			if claims.UserID == 0 {
				WriteError(w, r, apperror.NewAuthError("Invalid token: user_id claim is missing", nil))
				return
			}

			revoked, err := blacklist.IsRevoked(r.Context(), tokenString)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("could not verify token revocation state", err))
				return
			}
			if revoked {
				WriteError(w, r, apperror.NewAuthError("token has been revoked", nil))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext retrieves the caller's user ID set by JWTMiddleware.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetUsernameFromContext retrieves the caller's username set by JWTMiddleware.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}
