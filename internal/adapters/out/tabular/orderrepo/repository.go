package orderrepo

import (
	"context"

	"tracker/internal/adapters/out/tabular"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

var _ ports.OrderRepository = (*Repository)(nil)

// Repository implements ports.OrderRepository on the orders table.
type Repository struct {
	store *tabular.Store
}

func NewRepository(store *tabular.Store) *Repository {
	return &Repository{store: store}
}

// Get returns the order whose id equals orderID case-insensitively.
func (r *Repository) Get(ctx context.Context, orderID string) (*order.Order, bool, error) {
	rows, err := r.store.Read(ctx, tabular.OrdersTable)
	if err != nil {
		return nil, false, err
	}

	for _, row := range rows {
		if !kernel.SameKey(row[tabular.ColOrderID], orderID) {
			continue
		}
		o, err := toDomain(row)
		if err != nil {
			continue
		}
		return o, true, nil
	}
	return nil, false, nil
}

// Add appends the order with updated_at set to the store clock.
func (r *Repository) Add(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	return r.store.Mutate(ctx, tabular.OrdersTable, func(rows []ports.Row) ([]ports.Row, bool, error) {
		for _, row := range rows {
			if kernel.SameKey(row[tabular.ColOrderID], o.ID()) {
				return nil, false, errs.NewDuplicateKeyError(tabular.OrdersTable.Name, o.ID())
			}
		}

		row := fromDomain(o)
		row[tabular.ColUpdatedAt] = tabular.FormatTime(r.store.Now())
		return append(rows, row), true, nil
	})
}

// UpdateStatus rewrites the status cell of the first matching row.
func (r *Repository) UpdateStatus(ctx context.Context, orderID string, status order.Status) (bool, error) {
	found := false
	err := r.store.Mutate(ctx, tabular.OrdersTable, func(rows []ports.Row) ([]ports.Row, bool, error) {
		for _, row := range rows {
			if !kernel.SameKey(row[tabular.ColOrderID], orderID) {
				continue
			}
			o, err := toDomain(row)
			if err != nil {
				continue
			}
			o.SetStatus(status, r.store.Now())
			row[tabular.ColStatus] = o.Status().String()
			row[tabular.ColUpdatedAt] = tabular.FormatTime(o.UpdatedAt())
			found = true
			return rows, true, nil
		}
		return rows, false, nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// FindByUsername collects orders mentioning username first, then the orders
// username takes part in, without duplicates.
func (r *Repository) FindByUsername(ctx context.Context, username string) ([]string, error) {
	name := kernel.NormalizeUsername(username)
	if name == "" {
		return nil, nil
	}

	orders, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	participants, err := r.store.Read(ctx, tabular.ParticipantsTable)
	if err != nil {
		return nil, err
	}

	var ids []string
	seen := make(map[string]struct{})
	add := func(id string) {
		key := kernel.FoldKey(id)
		if _, ok := seen[key]; ok || key == "" {
			return
		}
		seen[key] = struct{}{}
		ids = append(ids, id)
	}

	for _, o := range orders {
		if o.MentionsUsername(name) {
			add(o.ID())
		}
	}
	for _, row := range participants {
		if kernel.NormalizeUsername(row[tabular.ColUsername]) == name {
			add(tabular.Cell(row, tabular.ColOrderID))
		}
	}
	return ids, nil
}

// All returns every decodable order in table order.
func (r *Repository) All(ctx context.Context) ([]*order.Order, error) {
	rows, err := r.store.Read(ctx, tabular.OrdersTable)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := toDomain(row)
		if err != nil {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}
