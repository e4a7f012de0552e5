package participantrepo

import (
	"context"

	"tracker/internal/adapters/out/tabular"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/participant"
	"tracker/internal/core/ports"
)

var _ ports.ParticipantRepository = (*Repository)(nil)

// Repository implements ports.ParticipantRepository on the participants table.
type Repository struct {
	store *tabular.Store
}

func NewRepository(store *tabular.Store) *Repository {
	return &Repository{store: store}
}

// Ensure appends unpaid rows for the usernames missing from orderID.
func (r *Repository) Ensure(ctx context.Context, orderID string, usernames []string) (int, error) {
	names := kernel.NormalizeUsernames(usernames)
	if len(names) == 0 {
		return 0, nil
	}

	added := 0
	err := r.store.Mutate(ctx, tabular.ParticipantsTable, func(rows []ports.Row) ([]ports.Row, bool, error) {
		present := make(map[string]struct{})
		for _, row := range rows {
			if kernel.SameKey(row[tabular.ColOrderID], orderID) {
				present[kernel.NormalizeUsername(row[tabular.ColUsername])] = struct{}{}
			}
		}

		for _, name := range names {
			if _, ok := present[name]; ok {
				continue
			}
			p, err := participant.NewParticipant(orderID, name, r.store.Now())
			if err != nil {
				return nil, false, err
			}
			rows = append(rows, fromDomain(p))
			present[name] = struct{}{}
			added++
		}
		return rows, added > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// TogglePaid flips the paid flag of the first matching row.
func (r *Repository) TogglePaid(ctx context.Context, orderID, username string) (bool, bool, error) {
	var paid, found bool
	err := r.store.Mutate(ctx, tabular.ParticipantsTable, func(rows []ports.Row) ([]ports.Row, bool, error) {
		for i, row := range rows {
			p, err := toDomain(row)
			if err != nil || !p.Matches(orderID, username) {
				continue
			}
			paid = p.TogglePaid(r.store.Now())
			found = true
			rows[i] = fromDomain(p)
			return rows, true, nil
		}
		return rows, false, nil
	})
	if err != nil {
		return false, false, err
	}
	return paid, found, nil
}

func (r *Repository) UnpaidUsernames(ctx context.Context, orderID string) ([]string, error) {
	ps, err := r.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, p := range ps {
		if !p.Paid() {
			out = append(out, p.Username())
		}
	}
	return out, nil
}

// AllUnpaidGrouped groups unpaid usernames by order id, keeping the id
// spelling of the first row of each group.
func (r *Repository) AllUnpaidGrouped(ctx context.Context) ([]ports.UnpaidGroup, error) {
	all, err := r.all(ctx)
	if err != nil {
		return nil, err
	}

	var groups []ports.UnpaidGroup
	index := make(map[string]int)
	for _, p := range all {
		if p.Paid() {
			continue
		}
		key := kernel.FoldKey(p.OrderID())
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ports.UnpaidGroup{OrderID: p.OrderID()})
		}
		groups[i].Usernames = append(groups[i].Usernames, p.Username())
	}
	return groups, nil
}

func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]*participant.Participant, error) {
	all, err := r.all(ctx)
	if err != nil {
		return nil, err
	}

	var out []*participant.Participant
	for _, p := range all {
		if kernel.SameKey(p.OrderID(), orderID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Repository) all(ctx context.Context) ([]*participant.Participant, error) {
	rows, err := r.store.Read(ctx, tabular.ParticipantsTable)
	if err != nil {
		return nil, err
	}
	return decodeAll(rows), nil
}
