package queries

import (
	"context"

	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

// GetOrderQueryHandler joins an order with its participants and the viewer's
// subscription.
type GetOrderQueryHandler struct {
	orders        ports.OrderRepository
	participants  ports.ParticipantRepository
	subscriptions ports.SubscriptionRepository
}

func NewGetOrderQueryHandler(
	orders ports.OrderRepository,
	participants ports.ParticipantRepository,
	subscriptions ports.SubscriptionRepository,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orders:        orders,
		participants:  participants,
		subscriptions: subscriptions,
	}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, ok, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if !ok {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
	}

	s := o.Snapshot()
	resp := GetOrderQueryResponse{
		ID:         s.ID,
		ClientName: s.ClientName,
		Phone:      s.Phone,
		Origin:     s.Origin,
		Country:    s.Country,
		Source:     o.Source(),
		Status:     s.Status,
		Note:       s.Note,
		UpdatedAt:  s.UpdatedAt,
	}

	ps, err := h.participants.ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Participants = make([]ParticipantView, 0, len(ps))
	for _, p := range ps {
		resp.Participants = append(resp.Participants, ParticipantView{Username: p.Username(), Paid: p.Paid()})
	}

	if query.ViewerID() != 0 {
		resp.Subscribed, err = h.subscriptions.IsSubscribed(ctx, query.ViewerID(), o.ID())
		if err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	return resp, nil
}
