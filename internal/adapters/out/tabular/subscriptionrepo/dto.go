// Package subscriptionrepo stores status subscriptions in the subscriptions table.
package subscriptionrepo

import (
	"tracker/internal/adapters/out/tabular"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/model/subscription"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

func fromDomain(s *subscription.Subscription) ports.Row {
	snap := s.Snapshot()
	return ports.Row{
		tabular.ColUserID:    tabular.FormatInt64(snap.UserID),
		tabular.ColOrderID:   snap.OrderID,
		"last_sent_status":   snap.LastSentStatus.String(),
		tabular.ColCreatedAt: tabular.FormatTime(snap.CreatedAt),
		tabular.ColUpdatedAt: tabular.FormatTime(snap.UpdatedAt),
	}
}

func toDomain(r ports.Row) (*subscription.Subscription, error) {
	userID, ok := tabular.ParseInt64(r[tabular.ColUserID])
	if !ok {
		return nil, errs.NewValueIsInvalidError(tabular.ColUserID)
	}

	return subscription.RestoreSubscription(subscription.Snapshot{
		UserID:         userID,
		OrderID:        tabular.Cell(r, tabular.ColOrderID),
		LastSentStatus: order.Status(tabular.Cell(r, "last_sent_status")),
		CreatedAt:      tabular.ParseTime(r[tabular.ColCreatedAt]),
		UpdatedAt:      tabular.ParseTime(r[tabular.ColUpdatedAt]),
	})
}

// decodeAll decodes every row; rows without a user id or order id are dropped.
func decodeAll(rows []ports.Row) []*subscription.Subscription {
	subs := make([]*subscription.Subscription, 0, len(rows))
	for _, r := range rows {
		s, err := toDomain(r)
		if err != nil {
			continue
		}
		subs = append(subs, s)
	}
	return subs
}

func encodeAll(subs []*subscription.Subscription) []ports.Row {
	rows := make([]ports.Row, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, fromDomain(s))
	}
	return rows
}
