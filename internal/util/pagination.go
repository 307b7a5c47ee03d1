package util

import (
	"math"
	"strconv"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type Window struct {
	Page   int
	Size   int
	Offset int
}

// Calculate resolves optional page/size into a window. Non-positive values
// are rejected rather than clamped.
func Calculate(page, size *int) (Window, error) {
	w := Window{Page: DefaultPage, Size: DefaultPageSize}
	if page != nil {
		if *page <= 0 {
			return Window{}, apperr.ErrInvalidPage
		}
		w.Page = *page
	}
	if size != nil {
		if *size <= 0 {
			return Window{}, apperr.ErrInvalidSize
		}
		w.Size = *size
	}
	// the offset must stay representable
	if w.Page-1 > math.MaxInt/w.Size {
		return Window{}, apperr.ErrInvalidPage
	}
	w.Offset = (w.Page - 1) * w.Size
	return w, nil
}

func TotalPages(total int64, size int) int64 {
	if size <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return pages
}

// ParseOptionalInt returns nil for an empty query value.
func ParseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
