package service

import (
	"context"
	"strconv"

	"github.com/Skotchmaster/shop_catalog/internal/cart"
	"github.com/Skotchmaster/shop_catalog/internal/events"
	"github.com/Skotchmaster/shop_catalog/internal/logging"
	"github.com/Skotchmaster/shop_catalog/internal/models"
)

type CartService struct {
	Agg    *cart.Aggregator
	Events events.Publisher
}

func (s *CartService) UpsertLine(ctx context.Context, userID, productID uint, quantity int64) (*models.CartLine, cart.Outcome, error) {
	line, out, err := s.Agg.UpsertLine(ctx, userID, productID, quantity)
	if err != nil {
		return nil, 0, err
	}

	if s.Events != nil {
		ev := events.New("cart_line_"+out.String(), map[string]any{
			"user_id":    userID,
			"product_id": productID,
			"quantity":   quantity,
		})
		if err := s.Events.Publish(ctx, events.TopicCarts, strconv.FormatUint(uint64(userID), 10), ev); err != nil {
			logging.FromContext(ctx).Warn("event_publish_failed", "event", ev.Type, "error", err)
		}
	}
	return line, out, nil
}

func (s *CartService) ListForUser(ctx context.Context, userID uint, page, size *int) (cart.Page, error) {
	return s.Agg.ListForUser(ctx, userID, page, size)
}
