package commands

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrRemindUnpaidForOrderCommandIsNotConstructed = errors.New(
		"RemindUnpaidForOrderCommand must be created via NewRemindUnpaidForOrderCommand constructor",
	)
)

// RemindUnpaidForOrderCommand sends the payment reminder to the unpaid
// participants of one order.
type RemindUnpaidForOrderCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

func NewRemindUnpaidForOrderCommand(rawOrderID string) (RemindUnpaidForOrderCommand, error) {
	orderID := kernel.NormalizeOrderID(rawOrderID)
	if strings.TrimSpace(orderID) == "" {
		return RemindUnpaidForOrderCommand{}, errs.NewValueIsRequiredError("order_id")
	}

	return RemindUnpaidForOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RemindUnpaidForOrderCommand) Validate() error {
	return c.guard.Validate(ErrRemindUnpaidForOrderCommandIsNotConstructed)
}

func (c RemindUnpaidForOrderCommand) OrderID() string {
	return c.orderID
}
