package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_catalog/internal/logging"
	authmw "github.com/Skotchmaster/shop_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/shop_catalog/internal/service"
	"github.com/Skotchmaster/shop_catalog/internal/transport"
)

type AuthHTTP struct {
	Svc    *service.AuthService
	Tokens authmw.Verifier
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "register", err)
	}

	u, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return fail(l, "register", err)
	}

	l.Info("register_success", "user_id", u.ID)
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "Register success!",
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "login", err)
	}

	s, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(l, "login", err)
	}

	l.Info("login_success", "user_id", s.User.ID)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"token":   s.Token,
		"message": "Login success!",
	})
}

// Persistent verifies the bearer token itself so expired, malformed and
// forged tokens are reported apart.
func (h *AuthHTTP) Persistent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.persistent")

	raw, err := authmw.BearerToken(c)
	if err != nil {
		return fail(l, "persistent_login", err)
	}
	claims, err := h.Tokens.Verify(raw)
	if err != nil {
		return fail(l, "persistent_login", err)
	}

	s, err := h.Svc.Persistent(ctx, claims.UserID)
	if err != nil {
		return fail(l, "persistent_login", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"token":   s.Token,
		"data": transport.UserData{
			ID:       s.User.ID,
			Username: s.User.Username,
			Email:    s.User.Email,
		},
	})
}
