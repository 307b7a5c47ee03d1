package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/cart"
	"github.com/Skotchmaster/shop_catalog/internal/logging"
	authmw "github.com/Skotchmaster/shop_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/shop_catalog/internal/service"
	"github.com/Skotchmaster/shop_catalog/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

// cartLine is the wire form of cart.Line. The *_deleted_at fields are null
// for active rows.
type cartLine struct {
	ID                uint       `json:"id"`
	ProductID         uint       `json:"product_id"`
	ProductName       string     `json:"product_name"`
	Price             int64      `json:"price"`
	Stock             int64      `json:"stock"`
	Quantity          int64      `json:"quantity"`
	Subtotal          int64      `json:"subtotal"`
	CategoryID        uint       `json:"category_id"`
	CategoryName      string     `json:"category_name"`
	BrandID           uint       `json:"brand_id"`
	BrandName         string     `json:"brand_name"`
	ProductDeletedAt  *time.Time `json:"product_deleted_at"`
	CategoryDeletedAt *time.Time `json:"category_deleted_at"`
	BrandDeletedAt    *time.Time `json:"brand_deleted_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func toCartLine(l cart.Line) cartLine {
	return cartLine{
		ID:                l.ID,
		ProductID:         l.ProductID,
		ProductName:       l.ProductName,
		Price:             l.Price,
		Stock:             l.Stock,
		Quantity:          l.Quantity,
		Subtotal:          l.Subtotal,
		CategoryID:        l.CategoryID,
		CategoryName:      l.CategoryName,
		BrandID:           l.BrandID,
		BrandName:         l.BrandName,
		ProductDeletedAt:  l.ProductState.Nullable(),
		CategoryDeletedAt: l.CategoryState.Nullable(),
		BrandDeletedAt:    l.BrandState.Nullable(),
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func currentUser(c echo.Context) (uint, error) {
	id, ok := authmw.UserID(c)
	if !ok {
		return 0, apperr.ErrUnauthorized
	}
	return id, nil
}

func (h *CartHTTP) CreateOrUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.create_or_update")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "upsert_cart", err)
	}
	var req transport.CartRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "upsert_cart", err)
	}

	line, out, err := h.Svc.UpsertLine(ctx, userID, req.ProductID, *req.Quantity)
	if err != nil {
		return fail(l, "upsert_cart", err)
	}

	msg := "Cart updated successfully!"
	if out == cart.Created {
		msg = "Cart created successfully!"
	}
	l.Info("upsert_cart_success", "user_id", userID, "product_id", req.ProductID, "outcome", out.String())
	return c.JSON(http.StatusCreated, okBody(msg, line))
}

func (h *CartHTTP) Find(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.find")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "find_cart", err)
	}
	page, size, err := pageParams(c)
	if err != nil {
		return fail(l, "find_cart", err)
	}

	res, err := h.Svc.ListForUser(ctx, userID, page, size)
	if err != nil {
		return fail(l, "find_cart", err)
	}

	lines := make([]cartLine, 0, len(res.Lines))
	for _, ln := range res.Lines {
		lines = append(lines, toCartLine(ln))
	}
	return c.JSON(http.StatusOK, listBody(lines, res.TotalItems, res.TotalPages))
}
