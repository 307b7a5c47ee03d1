// Package catalog is the query and lifecycle engine shared by every
// soft-deletable resource: keyword filter, pagination, create, soft delete
// and restore.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/softdelete"
	"github.com/Skotchmaster/shop_catalog/internal/storage"
	"github.com/Skotchmaster/shop_catalog/internal/util"
)

type Record interface {
	GetID() uint
	GetName() string
	State() softdelete.State
	SetState(softdelete.State)
	Touch(at time.Time)
}

type Filter struct {
	Keyword        string
	IncludeDeleted bool
	Offset         int
	Limit          int
}

// Store is the persistence contract. Lookups return storage.ErrNotFound and
// writes return storage.ErrDuplicate on a unique violation.
type Store[T Record] interface {
	FindByID(ctx context.Context, id uint) (T, error)
	FindByName(ctx context.Context, name string) (T, error)
	Insert(ctx context.Context, rec T) error
	Update(ctx context.Context, rec T) error
	List(ctx context.Context, f Filter) ([]T, int64, error)
}

// Errors are the entity-specific failures the engine reports.
type Errors struct {
	NotFound       error
	AlreadyDeleted error
	CannotRestore  error
	Duplicate      error
}

type ListParams struct {
	Keyword        string
	Page           *int
	Size           *int
	IncludeDeleted bool
}

type Page[T any] struct {
	Items      []T
	TotalItems int64
	TotalPages int64
}

type Engine[T Record] struct {
	store Store[T]
	errs  Errors
	Now   func() time.Time
}

func NewEngine[T Record](store Store[T], errs Errors) *Engine[T] {
	return &Engine[T]{store: store, errs: errs, Now: time.Now}
}

func (e *Engine[T]) List(ctx context.Context, p ListParams) (Page[T], error) {
	w, err := util.Calculate(p.Page, p.Size)
	if err != nil {
		return Page[T]{}, err
	}
	items, total, err := e.store.List(ctx, Filter{
		Keyword:        p.Keyword,
		IncludeDeleted: p.IncludeDeleted,
		Offset:         w.Offset,
		Limit:          w.Size,
	})
	if err != nil {
		return Page[T]{}, storeErr(err)
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalItems: total,
		TotalPages: util.TotalPages(total, w.Size),
	}, nil
}

// Get returns the row in any state.
func (e *Engine[T]) Get(ctx context.Context, id uint) (T, error) {
	rec, err := e.store.FindByID(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, storage.ErrNotFound) {
			return zero, e.errs.NotFound
		}
		return zero, storeErr(err)
	}
	return rec, nil
}

// RequireActive returns the row only if it is not soft-deleted.
func (e *Engine[T]) RequireActive(ctx context.Context, id uint) (T, error) {
	rec, err := e.Get(ctx, id)
	if err != nil {
		return rec, err
	}
	if rec.State().IsDeleted() {
		var zero T
		return zero, e.errs.NotFound
	}
	return rec, nil
}

// Create rejects a name already used by any row, deleted ones included.
func (e *Engine[T]) Create(ctx context.Context, rec T) (T, error) {
	if err := e.ensureNameFree(ctx, rec.GetName(), 0); err != nil {
		var zero T
		return zero, err
	}

	rec.SetState(softdelete.Active())
	rec.Touch(e.Now())
	if err := e.store.Insert(ctx, rec); err != nil {
		var zero T
		return zero, e.writeErr(err)
	}
	return rec, nil
}

// Save persists field changes to an existing row and bumps updated_at.
func (e *Engine[T]) Save(ctx context.Context, rec T) (T, error) {
	if err := e.ensureNameFree(ctx, rec.GetName(), rec.GetID()); err != nil {
		var zero T
		return zero, err
	}
	rec.Touch(e.Now())
	if err := e.store.Update(ctx, rec); err != nil {
		var zero T
		return zero, e.writeErr(err)
	}
	return rec, nil
}

func (e *Engine[T]) SoftDelete(ctx context.Context, id uint) (T, error) {
	var zero T
	rec, err := e.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	now := e.Now()
	next, err := rec.State().Delete(now)
	if err != nil {
		return zero, e.errs.AlreadyDeleted
	}
	rec.SetState(next)
	rec.Touch(now)
	if err := e.store.Update(ctx, rec); err != nil {
		return zero, e.writeErr(err)
	}
	return rec, nil
}

func (e *Engine[T]) Restore(ctx context.Context, id uint) (T, error) {
	var zero T
	rec, err := e.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	next, err := rec.State().Restore()
	if err != nil {
		return zero, e.errs.CannotRestore
	}
	rec.SetState(next)
	rec.Touch(e.Now())
	if err := e.store.Update(ctx, rec); err != nil {
		return zero, e.writeErr(err)
	}
	return rec, nil
}

// ensureNameFree fails with Duplicate if another row (id != self) holds name.
func (e *Engine[T]) ensureNameFree(ctx context.Context, name string, self uint) error {
	existing, err := e.store.FindByName(ctx, name)
	switch {
	case err == nil:
		if self != 0 && existing.GetID() == self {
			return nil
		}
		return e.errs.Duplicate
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return storeErr(err)
	}
}

func (e *Engine[T]) writeErr(err error) error {
	if errors.Is(err, storage.ErrDuplicate) {
		return e.errs.Duplicate
	}
	return storeErr(err)
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %w", apperr.ErrStore, err)
}
