package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/pkg/jwt"
)

// AuthHeader carries the raw access token
const AuthHeader = "x-auth-token"

// TokenValidator defines the interface for token validation
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// Auth rejects requests without a valid token in the x-auth-token header and
// stores the token claims in the request context
func Auth(tokens TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(AuthHeader))
			if token == "" {
				model.NewUnauthorizedError("missing " + AuthHeader + " header").WriteJSON(w)
				return
			}

			claims, err := tokens.ValidateAccessToken(token)
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					model.NewUnauthorizedError("token expired").WriteJSON(w)
				case errors.Is(err, jwt.ErrInvalidSignature):
					model.NewUnauthorizedError("invalid token signature").WriteJSON(w)
				default:
					model.NewUnauthorizedError("invalid token").WriteJSON(w)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth is like Auth but lets requests without a usable token through
func OptionalAuth(tokens TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(AuthHeader))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := tokens.ValidateAccessToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims returns ctx carrying claims
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims extracts the JWT claims from context
func GetClaims(ctx context.Context) *jwt.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}

// GetUserID returns the authenticated user ID, or 0
func GetUserID(ctx context.Context) int64 {
	if claims := GetClaims(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

// GetNickName returns the authenticated user's nickname, or ""
func GetNickName(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.NickName
	}
	return ""
}
