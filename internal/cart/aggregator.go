// Package cart implements the per-user cart: upsert of a line and a joined,
// paginated listing with derived subtotals.
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/models"
	"github.com/Skotchmaster/shop_catalog/internal/refcheck"
	"github.com/Skotchmaster/shop_catalog/internal/softdelete"
	"github.com/Skotchmaster/shop_catalog/internal/storage"
	"github.com/Skotchmaster/shop_catalog/internal/util"
)

type Outcome int

const (
	Created Outcome = iota + 1
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

// LineStore persists cart lines. ListLines must load each line's product
// with its category and brand.
type LineStore interface {
	FindLine(ctx context.Context, userID, productID uint) (*models.CartLine, error)
	InsertLine(ctx context.Context, line *models.CartLine) error
	UpdateLine(ctx context.Context, line *models.CartLine) error
	ListLines(ctx context.Context, userID uint, offset, limit int) ([]models.CartLine, int64, error)
}

// ProductLookup returns a product in any state.
type ProductLookup interface {
	Get(ctx context.Context, id uint) (*models.Product, error)
}

type UserLookup interface {
	UserExists(ctx context.Context, id uint) (bool, error)
}

type Aggregator struct {
	Lines    LineStore
	Products ProductLookup
	Users    UserLookup
	Now      func() time.Time
}

func NewAggregator(lines LineStore, products ProductLookup, users UserLookup) *Aggregator {
	return &Aggregator{Lines: lines, Products: products, Users: users, Now: time.Now}
}

// Line is one cart row joined to its product, category and brand.
type Line struct {
	ID        uint
	UserID    uint
	Quantity  int64
	Subtotal  int64
	CreatedAt time.Time
	UpdatedAt time.Time

	ProductID    uint
	ProductName  string
	Price        int64
	Stock        int64
	ProductState softdelete.State

	CategoryID    uint
	CategoryName  string
	CategoryState softdelete.State

	BrandID    uint
	BrandName  string
	BrandState softdelete.State
}

type Page struct {
	Lines      []Line
	TotalItems int64
	TotalPages int64
}

// UpsertLine sets the quantity of (userID, productID), inserting the line if
// it does not exist. The product may be soft-deleted; callers read that back
// from ListForUser.
func (a *Aggregator) UpsertLine(ctx context.Context, userID, productID uint, quantity int64) (*models.CartLine, Outcome, error) {
	product, err := a.Products.Get(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	if err := refcheck.ValidateCartQuantity(quantity, product.Stock); err != nil {
		return nil, 0, err
	}
	ok, err := a.Users.UserExists(ctx, userID)
	if err != nil {
		return nil, 0, storeErr(err)
	}
	if !ok {
		return nil, 0, apperr.ErrUserNotFound
	}

	now := a.Now()
	line, err := a.Lines.FindLine(ctx, userID, productID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		line = &models.CartLine{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := a.Lines.InsertLine(ctx, line); err != nil {
			return nil, 0, storeErr(err)
		}
		return line, Created, nil
	case err != nil:
		return nil, 0, storeErr(err)
	}

	line.Quantity = quantity
	line.UpdatedAt = now
	if err := a.Lines.UpdateLine(ctx, line); err != nil {
		return nil, 0, storeErr(err)
	}
	return line, Updated, nil
}

func (a *Aggregator) ListForUser(ctx context.Context, userID uint, page, size *int) (Page, error) {
	w, err := util.Calculate(page, size)
	if err != nil {
		return Page{}, err
	}
	rows, total, err := a.Lines.ListLines(ctx, userID, w.Offset, w.Size)
	if err != nil {
		return Page{}, storeErr(err)
	}

	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, join(row))
	}
	return Page{
		Lines:      lines,
		TotalItems: total,
		TotalPages: util.TotalPages(total, w.Size),
	}, nil
}

func join(row models.CartLine) Line {
	l := Line{
		ID:        row.ID,
		UserID:    row.UserID,
		ProductID: row.ProductID,
		Quantity:  row.Quantity,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	p := row.Product
	if p == nil {
		return l
	}
	l.ProductName = p.Name
	l.Price = p.Price
	l.Stock = p.Stock
	l.ProductState = p.State()
	l.Subtotal = row.Quantity * p.Price
	l.CategoryID = p.CategoryID
	l.BrandID = p.BrandID
	if p.Category != nil {
		l.CategoryName = p.Category.Name
		l.CategoryState = p.Category.State()
	}
	if p.Brand != nil {
		l.BrandName = p.Brand.Name
		l.BrandState = p.Brand.State()
	}
	return l
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %w", apperr.ErrStore, err)
}
