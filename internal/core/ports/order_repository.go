package ports

import (
	"context"

	"tracker/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for orders.
// Lookups by id are exact matches compared case-insensitively.
type OrderRepository interface {
	// Get returns the order with orderID; ok is false when it does not exist.
	Get(ctx context.Context, orderID string) (o *order.Order, ok bool, err error)

	// Add appends a new order with updated_at set to now.
	// Returns errs.DuplicateKeyError when the id is already present in any case.
	Add(ctx context.Context, o *order.Order) error

	// UpdateStatus sets the status of an existing order and refreshes updated_at.
	// Any string is accepted. Returns false when the order does not exist.
	UpdateStatus(ctx context.Context, orderID string, status order.Status) (bool, error)

	// FindByUsername returns the ids of orders whose client name or note mention
	// username, plus the orders username takes part in, in table order.
	//
	// Example:
	//   ids, err := repo.FindByUsername(ctx, "@alice_k")
	//   // ids == []string{"CN-12345", "KR-00077"}
	FindByUsername(ctx context.Context, username string) ([]string, error)

	// All returns every order in table order.
	All(ctx context.Context) ([]*order.Order, error)
}
