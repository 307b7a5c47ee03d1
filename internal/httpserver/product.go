package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_catalog/internal/logging"
	"github.com/Skotchmaster/shop_catalog/internal/models"
	"github.com/Skotchmaster/shop_catalog/internal/service"
	"github.com/Skotchmaster/shop_catalog/internal/transport"
)

type ProductHTTP struct {
	ResourceHTTP[*models.Product]
	Svc *service.ProductService
}

func NewProductHTTP(svc *service.ProductService) *ProductHTTP {
	return &ProductHTTP{
		ResourceHTTP: ResourceHTTP[*models.Product]{Svc: svc, Label: "product"},
		Svc:          svc,
	}
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "create_product", err)
	}

	p, err := h.Svc.Create(ctx, service.ProductInput{
		Name:        *req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		CategoryID:  *req.CategoryID,
		BrandID:     *req.BrandID,
	})
	if err != nil {
		return fail(l, "create_product", err)
	}

	l.Info("create_product_success", "id", p.ID)
	return c.JSON(http.StatusCreated, okBody("Product created successfully!", p))
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := pathID(c)
	if err != nil {
		return fail(l, "update_product", err)
	}
	var req transport.PatchProductRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "update_product", err)
	}

	p, err := h.Svc.Update(ctx, id, service.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
	})
	if err != nil {
		return fail(l, "update_product", err)
	}

	l.Info("update_product_success", "id", id)
	return c.JSON(http.StatusOK, okBody("Product updated successfully!", p))
}

func (h *ProductHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page, size, err := pageParams(c)
	if err != nil {
		return fail(l, "search_products", err)
	}
	res, err := h.Svc.Search(ctx, c.QueryParam("keyword"), page, size)
	if err != nil {
		return fail(l, "search_products", err)
	}
	return c.JSON(http.StatusOK, listBody(res.Items, res.TotalItems, res.TotalPages))
}
