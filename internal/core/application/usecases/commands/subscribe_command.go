package commands

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrSubscribeCommandIsNotConstructed = errors.New(
		"SubscribeCommand must be created via NewSubscribeCommand constructor",
	)
)

// SubscribeCommand subscribes or unsubscribes a user to one order. The same
// value is used by both handlers.
type SubscribeCommand struct { //nolint:recvcheck //using for validation
	userID  int64
	orderID string

	guard guard.ConstructorGuard
}

func NewSubscribeCommand(userID int64, rawOrderID string) (SubscribeCommand, error) {
	var err error
	if userID == 0 {
		err = errors.Join(err, errs.NewValueIsRequiredError("user_id"))
	}
	orderID := kernel.NormalizeOrderID(rawOrderID)
	if strings.TrimSpace(orderID) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("order_id"))
	}
	if err != nil {
		return SubscribeCommand{}, err
	}

	return SubscribeCommand{
		userID:  userID,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SubscribeCommand) Validate() error {
	return c.guard.Validate(ErrSubscribeCommandIsNotConstructed)
}

func (c SubscribeCommand) UserID() int64   { return c.userID }
func (c SubscribeCommand) OrderID() string { return c.orderID }
