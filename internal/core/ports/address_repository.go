package ports

import (
	"context"

	"tracker/internal/core/domain/model/address"
)

// AddressRepository defines the persistence contract for delivery addresses.
// There is at most one address per user id.
type AddressRepository interface {
	// Upsert replaces the address of a.UserID() or appends it. The created_at
	// of a replaced row is kept.
	Upsert(ctx context.Context, a *address.Address) error

	// Get returns the address of userID; ok is false when none is stored.
	Get(ctx context.Context, userID int64) (a *address.Address, ok bool, err error)

	// GetByUsername returns the first address registered under username.
	GetByUsername(ctx context.Context, username string) (a *address.Address, ok bool, err error)

	// GetByUsernames returns the addresses whose username is among names
	// (lower-cased, '@' stripped), in table order.
	GetByUsernames(ctx context.Context, names []string) ([]*address.Address, error)

	// Delete removes the address of userID and reports whether a row was removed.
	Delete(ctx context.Context, userID int64) (bool, error)
}
