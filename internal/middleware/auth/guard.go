package auth

import (
	"context"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/logging"
	"github.com/Skotchmaster/shop_catalog/internal/tokens"
)

const (
	UserIDKey = "userID"
	claimsKey = "session"
)

type ctxKey struct{}

type Verifier interface {
	Verify(raw string) (*tokens.SessionClaims, error)
}

// Guard rejects any request without a valid bearer token with 401. The
// reason is logged but never returned to the client.
func Guard(v Verifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(_ echo.Context, raw string) (interface{}, error) {
			return v.Verify(raw)
		},
		SuccessHandler: func(c echo.Context) {
			if claims, ok := c.Get(claimsKey).(*tokens.SessionClaims); ok {
				bind(c, claims.UserID)
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "auth.guard")
			l.Warn("auth_rejected", "status", 401, "error", err)
			return apperr.ErrUnauthorized
		},
	})
}

func bind(c echo.Context, userID uint) {
	c.Set(UserIDKey, userID)
	ctx := context.WithValue(c.Request().Context(), ctxKey{}, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}

// UserID returns the id bound by Guard for this request.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(UserIDKey).(uint)
	return id, ok
}

func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(ctxKey{}).(uint)
	return id, ok
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(c echo.Context) (string, error) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", apperr.ErrUnauthorized
	}
	return strings.TrimSpace(h[len(prefix):]), nil
}
