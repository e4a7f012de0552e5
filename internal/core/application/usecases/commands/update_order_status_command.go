package commands

import (
	"errors"
	"fmt"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
)

// UpdateOrderStatusCommand sets a catalog status on one order.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID string
	status  order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand canonicalizes the id and requires a catalog status.
func NewUpdateOrderStatusCommand(rawOrderID string, status order.Status) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{guard: guard.NewConstructorGuard()}

	id, ok := kernel.ExtractOrderID(rawOrderID)
	var idErr error
	if !ok {
		idErr = errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%q is not PREFIX-DIGITS", rawOrderID))
	}
	cmd.orderID = id

	parsed, statusErr := order.ParseStatus(string(status))
	cmd.status = parsed

	if err := errors.Join(idErr, statusErr); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() string      { return c.orderID }
func (c UpdateOrderStatusCommand) Status() order.Status { return c.status }
