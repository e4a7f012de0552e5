package subscriptionrepo

import (
	"context"

	"tracker/internal/adapters/out/tabular"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/model/subscription"
	"tracker/internal/core/ports"
)

var _ ports.SubscriptionRepository = (*Repository)(nil)

type mutation func(subs []*subscription.Subscription) ([]*subscription.Subscription, bool, error)

// Repository implements ports.SubscriptionRepository on the subscriptions table.
// It reads the orders table to initialize last_sent_status on subscribe.
type Repository struct {
	store *tabular.Store
}

func NewRepository(store *tabular.Store) *Repository {
	return &Repository{store: store}
}

// Subscribe upserts the (userID, orderID) row. Subscribing to an absent order
// stores an empty last_sent_status, so its first status notifies.
func (r *Repository) Subscribe(ctx context.Context, userID int64, orderID string) error {
	now := r.store.Now()

	return r.mutate(ctx, func(subs []*subscription.Subscription) ([]*subscription.Subscription, bool, error) {
		current, err := r.currentStatus(ctx, orderID)
		if err != nil {
			return nil, false, err
		}

		for _, s := range subs {
			if s.Matches(userID, orderID) {
				s.MarkSent(current, now)
				return subs, true, nil
			}
		}

		s, err := subscription.NewSubscription(userID, orderID, current, now)
		if err != nil {
			return nil, false, err
		}
		return append(subs, s), true, nil
	})
}

func (r *Repository) Unsubscribe(ctx context.Context, userID int64, orderID string) (bool, error) {
	removed := false
	err := r.mutate(ctx, func(subs []*subscription.Subscription) ([]*subscription.Subscription, bool, error) {
		kept := subs[:0]
		for _, s := range subs {
			if s.Matches(userID, orderID) {
				removed = true
				continue
			}
			kept = append(kept, s)
		}
		return kept, removed, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (r *Repository) IsSubscribed(ctx context.Context, userID int64, orderID string) (bool, error) {
	subs, err := r.list(ctx, func(s *subscription.Subscription) bool {
		return s.Matches(userID, orderID)
	})
	if err != nil {
		return false, err
	}
	return len(subs) > 0, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*subscription.Subscription, error) {
	return r.list(ctx, func(s *subscription.Subscription) bool {
		return s.UserID() == userID
	})
}

func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]*subscription.Subscription, error) {
	return r.list(ctx, func(s *subscription.Subscription) bool {
		return s.ForOrder(orderID)
	})
}

// Mutate hands every subscription to fn under the table lock and stores the
// table once when fn reports a change.
func (r *Repository) Mutate(ctx context.Context, fn ports.SubscriptionMutation) error {
	return r.mutate(ctx, func(subs []*subscription.Subscription) ([]*subscription.Subscription, bool, error) {
		changed, err := fn(subs)
		return subs, changed, err
	})
}

func (r *Repository) mutate(ctx context.Context, fn mutation) error {
	return r.store.Mutate(ctx, tabular.SubscriptionsTable, func(rows []ports.Row) ([]ports.Row, bool, error) {
		subs, changed, err := fn(decodeAll(rows))
		if err != nil || !changed {
			return nil, false, err
		}
		return encodeAll(subs), true, nil
	})
}

func (r *Repository) list(ctx context.Context, match func(*subscription.Subscription) bool) ([]*subscription.Subscription, error) {
	rows, err := r.store.Read(ctx, tabular.SubscriptionsTable)
	if err != nil {
		return nil, err
	}

	var out []*subscription.Subscription
	for _, s := range decodeAll(rows) {
		if match(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *Repository) currentStatus(ctx context.Context, orderID string) (order.Status, error) {
	rows, err := r.store.Read(ctx, tabular.OrdersTable)
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if kernel.SameKey(row[tabular.ColOrderID], orderID) {
			return order.Status(tabular.Cell(row, tabular.ColStatus)), nil
		}
	}
	return "", nil
}
