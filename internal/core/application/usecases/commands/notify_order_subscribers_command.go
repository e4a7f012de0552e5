package commands

import (
	"errors"
	"strings"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrNotifyOrderSubscribersCommandIsNotConstructed = errors.New(
		"NotifyOrderSubscribersCommand must be created via NewNotifyOrderSubscribersCommand constructor",
	)
)

// NotifyOrderSubscribersCommand asks for an immediate status notification to
// the subscribers of one order.
type NotifyOrderSubscribersCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

func NewNotifyOrderSubscribersCommand(orderID string) (NotifyOrderSubscribersCommand, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return NotifyOrderSubscribersCommand{}, errs.NewValueIsRequiredError("order_id")
	}

	return NotifyOrderSubscribersCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c NotifyOrderSubscribersCommand) Validate() error {
	return c.guard.Validate(ErrNotifyOrderSubscribersCommandIsNotConstructed)
}

func (c NotifyOrderSubscribersCommand) OrderID() string {
	return c.orderID
}
