package commands

import (
	"context"
	"fmt"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"
)

// AddOrderCommandHandler creates an order and registers the participants
// mentioned in its client name.
type AddOrderCommandHandler struct {
	orders       ports.OrderRepository
	participants ports.ParticipantRepository
	now          Clock
}

func NewAddOrderCommandHandler(orders ports.OrderRepository, participants ports.ParticipantRepository) AddOrderCommandHandler {
	return AddOrderCommandHandler{
		orders:       orders,
		participants: participants,
		now:          defaultClock,
	}
}

// Handle appends the order, then ensures a participant row per @mention in the
// client name. A duplicate id is returned as errs.DuplicateKeyError and nothing
// else is written.
func (h AddOrderCommandHandler) Handle(ctx context.Context, cmd AddOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.ClientName(), cmd.Country(), cmd.Status(), cmd.Note(), h.now())
	if err != nil {
		return nil, err
	}

	if err := h.orders.Add(ctx, o); err != nil {
		return nil, err
	}

	if mentions := kernel.ExtractMentions(cmd.ClientName()); len(mentions) > 0 {
		if _, err := h.participants.Ensure(ctx, o.ID(), mentions); err != nil {
			return o, fmt.Errorf("order %s added, participants not saved: %w", o.ID(), err)
		}
	}

	return o, nil
}
