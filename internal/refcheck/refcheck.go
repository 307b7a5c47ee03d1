// Package refcheck holds the pre-mutation checks for products and cart
// lines. None of them write anything.
package refcheck

import (
	"context"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
)

// ActiveLookup fails with the entity's NotFound error unless the row exists
// and is not soft-deleted.
type ActiveLookup interface {
	RequireActiveRef(ctx context.Context, id uint) error
}

type ActiveLookupFunc func(ctx context.Context, id uint) error

func (f ActiveLookupFunc) RequireActiveRef(ctx context.Context, id uint) error { return f(ctx, id) }

type Validator struct {
	Categories ActiveLookup
	Brands     ActiveLookup
}

func (v *Validator) ValidateProductRefs(ctx context.Context, categoryID, brandID uint) error {
	if err := v.Categories.RequireActiveRef(ctx, categoryID); err != nil {
		return err
	}
	return v.Brands.RequireActiveRef(ctx, brandID)
}

func ValidateStockAndPrice(stock, price int64) error {
	if stock < 1 {
		return apperr.ErrInvalidStockAmount
	}
	if price < 1 {
		return apperr.ErrInvalidPrice
	}
	return nil
}

func ValidateCartQuantity(quantity, stock int64) error {
	if quantity < 1 {
		return apperr.ErrInvalidQuantity
	}
	if quantity > stock {
		return apperr.ErrInsufficientStock
	}
	return nil
}
