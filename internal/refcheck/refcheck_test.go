package refcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
)

func TestValidateCartQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		quantity int64
		stock    int64
		want     error
	}{
		{"zero", 0, 5, apperr.ErrInvalidQuantity},
		{"negative", -1, 5, apperr.ErrInvalidQuantity},
		{"over stock", 6, 5, apperr.ErrInsufficientStock},
		{"exactly stock", 5, 5, nil},
		{"one", 1, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCartQuantity(tt.quantity, tt.stock)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateStockAndPrice(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateStockAndPrice(1, 1))
	require.ErrorIs(t, ValidateStockAndPrice(0, 10), apperr.ErrInvalidStockAmount)
	require.ErrorIs(t, ValidateStockAndPrice(3, 0), apperr.ErrInvalidPrice)
	// stock is checked first
	require.ErrorIs(t, ValidateStockAndPrice(0, 0), apperr.ErrInvalidStockAmount)
}

func activeSet(notFound error, ids ...uint) ActiveLookup {
	set := map[uint]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return ActiveLookupFunc(func(_ context.Context, id uint) error {
		if set[id] {
			return nil
		}
		return notFound
	})
}

func TestValidateProductRefs(t *testing.T) {
	t.Parallel()

	v := &Validator{
		Categories: activeSet(apperr.ErrCategoryNotFound, 1),
		Brands:     activeSet(apperr.ErrBrandNotFound, 2),
	}
	ctx := context.Background()

	require.NoError(t, v.ValidateProductRefs(ctx, 1, 2))
	require.ErrorIs(t, v.ValidateProductRefs(ctx, 9, 2), apperr.ErrCategoryNotFound)
	require.ErrorIs(t, v.ValidateProductRefs(ctx, 1, 9), apperr.ErrBrandNotFound)

	err := v.ValidateProductRefs(ctx, 1, 9)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
