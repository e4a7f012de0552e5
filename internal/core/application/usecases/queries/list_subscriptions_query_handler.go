package queries

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"
)

type ListSubscriptionsQueryHandler struct {
	subscriptions ports.SubscriptionRepository
	orders        ports.OrderRepository
}

func NewListSubscriptionsQueryHandler(
	subscriptions ports.SubscriptionRepository,
	orders ports.OrderRepository,
) ListSubscriptionsQueryHandler {
	return ListSubscriptionsQueryHandler{subscriptions: subscriptions, orders: orders}
}

// Handle returns the subscriptions in table order.
func (h ListSubscriptionsQueryHandler) Handle(ctx context.Context, query ListSubscriptionsQuery) ([]SubscriptionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	subs, err := h.subscriptions.ListByUser(ctx, query.UserID())
	if err != nil {
		return nil, err
	}
	views := make([]SubscriptionView, 0, len(subs))
	if len(subs) == 0 {
		return views, nil
	}

	all, err := h.orders.All(ctx)
	if err != nil {
		return nil, err
	}
	current := make(map[string]order.Status, len(all))
	for _, o := range all {
		current[kernel.FoldKey(o.ID())] = o.Status()
	}

	for _, s := range subs {
		views = append(views, SubscriptionView{
			OrderID:        s.OrderID(),
			LastSentStatus: s.LastSentStatus(),
			CurrentStatus:  current[kernel.FoldKey(s.OrderID())],
		})
	}
	return views, nil
}
