package ports

import (
	"context"

	"tracker/internal/core/domain/model/subscription"
)

// SubscriptionMutation receives every subscription of the table and reports
// whether any of them changed. Returning an error aborts the write-back.
type SubscriptionMutation func(subs []*subscription.Subscription) (changed bool, err error)

// SubscriptionRepository defines the persistence contract for subscriptions.
// There is at most one row per (user_id, order_id).
type SubscriptionRepository interface {
	// Subscribe upserts (userID, orderID) and (re)initializes last_sent_status
	// to the order's current status, so a just-subscribed user is not notified
	// of a change that predates the subscription.
	Subscribe(ctx context.Context, userID int64, orderID string) error

	// Unsubscribe removes the row and reports whether one existed.
	Unsubscribe(ctx context.Context, userID int64, orderID string) (bool, error)

	IsSubscribed(ctx context.Context, userID int64, orderID string) (bool, error)

	// ListByUser returns the subscriptions of userID in table order.
	ListByUser(ctx context.Context, userID int64) ([]*subscription.Subscription, error)

	// ListByOrder returns the subscriptions to orderID in table order.
	ListByOrder(ctx context.Context, orderID string) ([]*subscription.Subscription, error)

	// Mutate runs fn over the whole table while holding the table lock and
	// writes the table back once when fn reports a change.
	Mutate(ctx context.Context, fn SubscriptionMutation) error
}
