// Package app wires stores, engines and services over one database.
package app

import (
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/cart"
	"github.com/Skotchmaster/shop_catalog/internal/catalog"
	"github.com/Skotchmaster/shop_catalog/internal/events"
	"github.com/Skotchmaster/shop_catalog/internal/hash"
	"github.com/Skotchmaster/shop_catalog/internal/models"
	"github.com/Skotchmaster/shop_catalog/internal/refcheck"
	"github.com/Skotchmaster/shop_catalog/internal/repo"
	"github.com/Skotchmaster/shop_catalog/internal/service"
	"github.com/Skotchmaster/shop_catalog/internal/tokens"
	"github.com/Skotchmaster/shop_catalog/internal/workerpool"
)

type Options struct {
	JWTSecret   []byte
	TokenTTL    time.Duration
	HashCost    int
	HashWorkers int
	HashQueue   int
	Events      events.Publisher
	// Index is optional; leave nil to disable product search.
	Index service.ProductIndex
}

type App struct {
	DB         *gorm.DB
	Pool       *workerpool.Pool
	Tokens     *tokens.Service
	Auth       *service.AuthService
	Categories *service.Resource[*models.Category]
	Brands     *service.Resource[*models.Brand]
	Products   *service.ProductService
	Carts      *service.CartService
	Events     events.Publisher
}

func New(db *gorm.DB, opts Options) *App {
	pub := opts.Events
	if pub == nil {
		pub = events.Noop{}
	}

	pool := workerpool.New(opts.HashWorkers, opts.HashQueue)
	tokenSvc := tokens.NewService(opts.JWTSecret, opts.TokenTTL)
	users := &repo.UserRepo{DB: db}

	categories := service.NewResource(
		catalog.NewEngine[*models.Category](repo.NewGormStore[models.Category](db), catalog.Errors{
			NotFound:       apperr.ErrCategoryNotFound,
			AlreadyDeleted: apperr.ErrCategoryAlreadyDeleted,
			CannotRestore:  apperr.ErrCannotRestoreCategory,
			Duplicate:      apperr.ErrDuplicateCategory,
		}), pub, "category")

	brands := service.NewResource(
		catalog.NewEngine[*models.Brand](repo.NewGormStore[models.Brand](db), catalog.Errors{
			NotFound:       apperr.ErrBrandNotFound,
			AlreadyDeleted: apperr.ErrBrandAlreadyDeleted,
			CannotRestore:  apperr.ErrCannotRestoreBrand,
			Duplicate:      apperr.ErrDuplicateBrand,
		}), pub, "brand")

	productEngine := catalog.NewEngine[*models.Product](repo.NewGormStore[models.Product](db, "Category", "Brand"), catalog.Errors{
		NotFound:       apperr.ErrProductNotFound,
		AlreadyDeleted: apperr.ErrProductAlreadyDeleted,
		CannotRestore:  apperr.ErrCannotRestoreProduct,
		Duplicate:      apperr.ErrDuplicateProduct,
	})
	products := &service.ProductService{
		Resource: service.NewResource(productEngine, pub, "product"),
		Refs:     &refcheck.Validator{Categories: categories, Brands: brands},
		Index:    opts.Index,
	}

	return &App{
		DB:         db,
		Pool:       pool,
		Tokens:     tokenSvc,
		Auth:       &service.AuthService{Users: users, Hasher: hash.NewHasher(pool, opts.HashCost), Tokens: tokenSvc, Events: pub},
		Categories: categories,
		Brands:     brands,
		Products:   products,
		Carts: &service.CartService{
			Agg:    cart.NewAggregator(&repo.CartRepo{DB: db}, productEngine, users),
			Events: pub,
		},
		Events: pub,
	}
}

// Close stops the hashing workers and flushes the event publisher.
func (a *App) Close() error {
	a.Pool.Close()
	return a.Events.Close()
}
