// Package auth guards the API with the access tokens issued by the hosted
// auth service and carries the authenticated principal through the request
// context.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	EmailKey    contextKey = "email"
	TokenKey    contextKey = "token"
	DoctorIDKey contextKey = "doctor_id"
)

// Claims are the subset of the hosted auth service's token claims the
// server relies on. Tokens are HS256-signed with the shared secret.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// ProfileResolver reports the professional profile for a principal, if one
// exists.
type ProfileResolver interface {
	DoctorIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
}

// Required verifies the bearer token and places the principal on the
// request context. Unauthenticated requests get a 401 carrying the path
// they were headed to, so clients can return there after login.
func Required(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized("missing authorization header", path)
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized("invalid authorization format", path)
			}
			tokenStr := parts[1]

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				return unauthorized("invalid token", path)
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return unauthorized("invalid token subject", path)
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, UserIDKey, userID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			ctx = context.WithValue(ctx, TokenKey, tokenStr)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireProfile gates routes that need a resolved professional profile.
// Principals without one get 403 profile_required and should be sent to
// registration.
func RequireProfile(resolver ProfileResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID := UserIDFromContext(ctx)
			if userID == uuid.Nil {
				return unauthorized("missing authorization header", c.Request().URL.Path)
			}

			doctorID, ok, err := resolver.DoctorIDForUser(ctx, userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "profile lookup failed")
			}
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, map[string]string{
					"error": "profile_required",
				})
			}

			ctx = context.WithValue(ctx, DoctorIDKey, doctorID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func unauthorized(msg, path string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{
		"message": msg,
		"path":    path,
	})
}

func UserIDFromContext(ctx context.Context) uuid.UUID {
	uid, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return uid
}

func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// WithToken returns a context carrying an access token for backend calls
// made outside a guarded request, such as right after sign-up.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

// TokenFromContext returns the caller's access token for forwarding to the
// hosted backend. Empty outside authenticated requests; the backend client
// falls back to the anon key.
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(TokenKey).(string)
	return tok
}

func DoctorIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(DoctorIDKey).(uuid.UUID)
	return id
}
