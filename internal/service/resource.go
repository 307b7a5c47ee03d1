package service

import (
	"context"
	"strconv"

	"github.com/Skotchmaster/shop_catalog/internal/catalog"
	"github.com/Skotchmaster/shop_catalog/internal/events"
	"github.com/Skotchmaster/shop_catalog/internal/logging"
)

// Resource is a catalog engine for one entity plus event publication on
// every state change.
type Resource[T catalog.Record] struct {
	Engine *catalog.Engine[T]
	Events events.Publisher
	Kind   string
}

func NewResource[T catalog.Record](engine *catalog.Engine[T], pub events.Publisher, kind string) *Resource[T] {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Resource[T]{Engine: engine, Events: pub, Kind: kind}
}

func (r *Resource[T]) List(ctx context.Context, p catalog.ListParams) (catalog.Page[T], error) {
	return r.Engine.List(ctx, p)
}

func (r *Resource[T]) Get(ctx context.Context, id uint) (T, error) {
	return r.Engine.Get(ctx, id)
}

// RequireActiveRef lets a Resource serve as a reference lookup.
func (r *Resource[T]) RequireActiveRef(ctx context.Context, id uint) error {
	_, err := r.Engine.RequireActive(ctx, id)
	return err
}

func (r *Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	created, err := r.Engine.Create(ctx, rec)
	if err != nil {
		return created, err
	}
	r.publish(ctx, "created", created)
	return created, nil
}

func (r *Resource[T]) SoftDelete(ctx context.Context, id uint) (T, error) {
	rec, err := r.Engine.SoftDelete(ctx, id)
	if err != nil {
		return rec, err
	}
	r.publish(ctx, "deleted", rec)
	return rec, nil
}

func (r *Resource[T]) Restore(ctx context.Context, id uint) (T, error) {
	rec, err := r.Engine.Restore(ctx, id)
	if err != nil {
		return rec, err
	}
	r.publish(ctx, "restored", rec)
	return rec, nil
}

// publish never fails the request; a lost event is only logged.
func (r *Resource[T]) publish(ctx context.Context, action string, rec T) {
	typ := r.Kind + "_" + action
	ev := events.New(typ, map[string]any{"id": rec.GetID(), "name": rec.GetName()})
	if err := r.Events.Publish(ctx, events.TopicCatalog, strconv.FormatUint(uint64(rec.GetID()), 10), ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "event", typ, "id", rec.GetID(), "error", err)
	}
}
