package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/logging"
)

type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return apperr.KindOf(err).Status()
}

func messageOf(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return apperr.PublicMessage(err)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return "Internal server error"
		}
		if s, ok := he.Message.(string); ok {
			return s
		}
		return fmt.Sprint(he.Message)
	}
	return apperr.PublicMessage(err)
}

// ErrorHandler renders every failure as {success: false, message}. Causes of
// internal failures stay in the logs.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("request_failed", "status", status, "error", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, failure{Success: false, Message: messageOf(err)})
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("error_response_failed", "error", werr)
	}
}

// fail logs a handler failure at a level matching its status and hands the
// error on to ErrorHandler.
func fail(l *slog.Logger, op string, err error) error {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		l.Error(op+"_failed", "status", status, "error", err)
	} else {
		l.Warn(op+"_failed", "status", status, "error", err)
	}
	return err
}
