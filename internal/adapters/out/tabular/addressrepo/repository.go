package addressrepo

import (
	"context"
	"slices"

	"tracker/internal/adapters/out/tabular"
	"tracker/internal/core/domain/model/address"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"
)

var _ ports.AddressRepository = (*Repository)(nil)

// Repository implements ports.AddressRepository on the addresses table.
type Repository struct {
	store *tabular.Store
}

func NewRepository(store *tabular.Store) *Repository {
	return &Repository{store: store}
}

// Upsert replaces the row of the same user id or appends a new one.
func (r *Repository) Upsert(ctx context.Context, a *address.Address) error {
	if err := a.Validate(); err != nil {
		return err
	}

	return r.store.Mutate(ctx, tabular.AddressesTable, func(rows []ports.Row) ([]ports.Row, bool, error) {
		for i, row := range rows {
			if rowUserID(row) != a.UserID() {
				continue
			}
			if previous, err := toDomain(row); err == nil {
				a.ReplaceOf(previous)
			}
			rows[i] = fromDomain(a)
			return rows, true, nil
		}
		return append(rows, fromDomain(a)), true, nil
	})
}

func (r *Repository) Get(ctx context.Context, userID int64) (*address.Address, bool, error) {
	return r.find(ctx, func(row ports.Row) bool {
		return rowUserID(row) == userID
	})
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*address.Address, bool, error) {
	name := kernel.NormalizeUsername(username)
	if name == "" {
		return nil, false, nil
	}
	return r.find(ctx, func(row ports.Row) bool {
		return kernel.NormalizeUsername(row[tabular.ColUsername]) == name
	})
}

// GetByUsernames returns addresses in table order, whatever the order of names.
func (r *Repository) GetByUsernames(ctx context.Context, names []string) ([]*address.Address, error) {
	wanted := kernel.NormalizeUsernames(names)
	if len(wanted) == 0 {
		return nil, nil
	}

	rows, err := r.store.Read(ctx, tabular.AddressesTable)
	if err != nil {
		return nil, err
	}

	var out []*address.Address
	for _, row := range rows {
		if !slices.Contains(wanted, kernel.NormalizeUsername(row[tabular.ColUsername])) {
			continue
		}
		a, err := toDomain(row)
		if err != nil {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, userID int64) (bool, error) {
	removed := false
	err := r.store.Mutate(ctx, tabular.AddressesTable, func(rows []ports.Row) ([]ports.Row, bool, error) {
		kept := rows[:0]
		for _, row := range rows {
			if rowUserID(row) == userID {
				removed = true
				continue
			}
			kept = append(kept, row)
		}
		return kept, removed, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (r *Repository) find(ctx context.Context, match func(ports.Row) bool) (*address.Address, bool, error) {
	rows, err := r.store.Read(ctx, tabular.AddressesTable)
	if err != nil {
		return nil, false, err
	}

	for _, row := range rows {
		if !match(row) {
			continue
		}
		a, err := toDomain(row)
		if err != nil {
			continue
		}
		return a, true, nil
	}
	return nil, false, nil
}
