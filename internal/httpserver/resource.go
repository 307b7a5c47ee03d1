package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_catalog/internal/catalog"
	"github.com/Skotchmaster/shop_catalog/internal/logging"
	"github.com/Skotchmaster/shop_catalog/internal/transport"
)

type lifecycle[T any] interface {
	List(ctx context.Context, p catalog.ListParams) (catalog.Page[T], error)
	SoftDelete(ctx context.Context, id uint) (T, error)
	Restore(ctx context.Context, id uint) (T, error)
}

// ResourceHTTP serves find, delete and restore for one catalog resource.
// Create is only routed for resources built from a bare name.
type ResourceHTTP[T any] struct {
	Svc   lifecycle[T]
	Label string
	Named func(ctx context.Context, name string) (T, error)
}

func (h *ResourceHTTP[T]) op(verb string) string {
	return verb + "_" + h.Label
}

func (h *ResourceHTTP[T]) Find(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Label+".find")

	p, err := listParams(c)
	if err != nil {
		return fail(l, h.op("find"), err)
	}
	page, err := h.Svc.List(ctx, p)
	if err != nil {
		return fail(l, h.op("find"), err)
	}
	return c.JSON(http.StatusOK, listBody(page.Items, page.TotalItems, page.TotalPages))
}

func (h *ResourceHTTP[T]) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Label+".create")

	var req transport.NameRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, h.op("create"), err)
	}
	rec, err := h.Named(ctx, req.Name)
	if err != nil {
		return fail(l, h.op("create"), err)
	}

	l.Info(h.op("create") + "_success")
	return c.JSON(http.StatusCreated, okBody(titled(h.Label)+" created successfully!", rec))
}

func (h *ResourceHTTP[T]) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Label+".delete")

	id, err := pathID(c)
	if err != nil {
		return fail(l, h.op("delete"), err)
	}
	rec, err := h.Svc.SoftDelete(ctx, id)
	if err != nil {
		return fail(l, h.op("delete"), err)
	}

	l.Info(h.op("delete")+"_success", "id", id)
	return c.JSON(http.StatusOK, okBody(titled(h.Label)+" deleted successfully!", rec))
}

func (h *ResourceHTTP[T]) Restore(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Label+".restore")

	id, err := pathID(c)
	if err != nil {
		return fail(l, h.op("restore"), err)
	}
	rec, err := h.Svc.Restore(ctx, id)
	if err != nil {
		return fail(l, h.op("restore"), err)
	}

	l.Info(h.op("restore")+"_success", "id", id)
	return c.JSON(http.StatusOK, okBody(titled(h.Label)+" restored successfully!", rec))
}

func okBody(msg string, data any) map[string]any {
	return map[string]any{"success": true, "message": msg, "data": data}
}

func listBody[T any](items []T, totalItems, totalPages int64) map[string]any {
	if items == nil {
		items = []T{}
	}
	return map[string]any{
		"success":     true,
		"total_items": totalItems,
		"total_page":  totalPages,
		"data":        items,
	}
}

func titled(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
