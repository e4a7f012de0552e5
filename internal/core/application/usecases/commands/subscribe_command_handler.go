package commands

import (
	"context"

	"tracker/internal/core/ports"
)

// SubscribeCommandHandler subscribes a user to an order.
type SubscribeCommandHandler struct {
	subscriptions ports.SubscriptionRepository
}

func NewSubscribeCommandHandler(subscriptions ports.SubscriptionRepository) SubscribeCommandHandler {
	return SubscribeCommandHandler{subscriptions: subscriptions}
}

func (h SubscribeCommandHandler) Handle(ctx context.Context, cmd SubscribeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.subscriptions.Subscribe(ctx, cmd.UserID(), cmd.OrderID())
}

// UnsubscribeCommandHandler removes a subscription.
type UnsubscribeCommandHandler struct {
	subscriptions ports.SubscriptionRepository
}

func NewUnsubscribeCommandHandler(subscriptions ports.SubscriptionRepository) UnsubscribeCommandHandler {
	return UnsubscribeCommandHandler{subscriptions: subscriptions}
}

// Handle reports whether a subscription existed.
func (h UnsubscribeCommandHandler) Handle(ctx context.Context, cmd SubscribeCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}
	return h.subscriptions.Unsubscribe(ctx, cmd.UserID(), cmd.OrderID())
}
