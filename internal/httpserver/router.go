package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shop_catalog/internal/app"
	"github.com/Skotchmaster/shop_catalog/internal/models"
	authmw "github.com/Skotchmaster/shop_catalog/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/shop_catalog/internal/middleware/logging"
	"github.com/Skotchmaster/shop_catalog/internal/transport"
)

type Deps struct {
	App       *app.App
	Validator *transport.Validator
	Logger    *slog.Logger
	// Ready reports whether the service can take traffic; nil means always.
	Ready func(ctx context.Context) error
	// SearchEnabled routes GET /products/search.
	SearchEnabled bool
}

// New builds the echo instance with the common middleware chain and every
// route registered.
func New(d *Deps) *echo.Echo {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = d.Validator

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		loggingmw.RequestLogger(logger),
		middleware.CORS(),
	)

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, failure{Success: false, Message: "not ready"})
			}
		}
		return c.NoContent(http.StatusOK)
	})

	guard := authmw.Guard(d.App.Tokens)

	authH := &AuthHTTP{Svc: d.App.Auth, Tokens: d.App.Tokens}
	auth := e.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.GET("/persistent", authH.Persistent)

	categories := &ResourceHTTP[*models.Category]{
		Svc:   d.App.Categories,
		Label: "category",
		Named: func(ctx context.Context, name string) (*models.Category, error) {
			return d.App.Categories.Create(ctx, &models.Category{Name: name})
		},
	}
	cg := e.Group("/categories")
	cg.GET("/find", categories.Find)
	cg.POST("/create", categories.Create, guard)
	cg.DELETE("/delete/:id", categories.Delete, guard)
	cg.PATCH("/restore/:id", categories.Restore, guard)

	brands := &ResourceHTTP[*models.Brand]{
		Svc:   d.App.Brands,
		Label: "brand",
		Named: func(ctx context.Context, name string) (*models.Brand, error) {
			return d.App.Brands.Create(ctx, &models.Brand{Name: name})
		},
	}
	bg := e.Group("/brands")
	bg.GET("/find", brands.Find)
	bg.POST("/create", brands.Create, guard)
	bg.DELETE("/delete/:id", brands.Delete, guard)
	bg.PATCH("/restore/:id", brands.Restore, guard)

	products := NewProductHTTP(d.App.Products)
	pg := e.Group("/products")
	pg.GET("/find", products.Find)
	if d.SearchEnabled {
		pg.GET("/search", products.Search)
	}
	pg.POST("/create", products.Create, guard)
	pg.PATCH("/update/:id", products.Update, guard)
	pg.DELETE("/delete/:id", products.Delete, guard)
	pg.PATCH("/restore/:id", products.Restore, guard)

	carts := &CartHTTP{Svc: d.App.Carts}
	crt := e.Group("/carts", guard)
	crt.POST("/create-or-update", carts.CreateOrUpdate)
	crt.GET("/find", carts.Find)
}
