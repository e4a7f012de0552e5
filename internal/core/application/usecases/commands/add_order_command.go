package commands

import (
	"errors"
	"fmt"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrAddOrderCommandIsNotConstructed = errors.New(
		"AddOrderCommand must be created via NewAddOrderCommand constructor",
	)
)

// AddOrderCommand carries the fields collected by the add-order wizard.
//
// Example:
//
//	cmd, err := NewAddOrderCommand("cn 12345", "@alice_k @bob_bb", "CN", "выкуплен", "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewAddOrderCommandHandler(orders, participants)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrDuplicateKey) {
//	    // order id already taken
//	}
type AddOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    string
	clientName string
	country    order.Country
	status     order.Status
	note       string

	guard guard.ConstructorGuard
}

// NewAddOrderCommand validates the raw wizard input. The order id is stored
// canonical and the status in its catalog spelling.
func NewAddOrderCommand(rawOrderID, clientName, country, status, note string) (AddOrderCommand, error) {
	cmd := AddOrderCommand{
		clientName: strings.TrimSpace(clientName),
		note:       strings.TrimSpace(note),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(rawOrderID),
		cmd.setCountry(country),
		cmd.setStatus(status),
	); err != nil {
		return AddOrderCommand{}, err
	}

	return cmd, nil
}

func (c AddOrderCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderCommandIsNotConstructed)
}

func (c AddOrderCommand) OrderID() string        { return c.orderID }
func (c AddOrderCommand) ClientName() string     { return c.clientName }
func (c AddOrderCommand) Country() order.Country { return c.country }
func (c AddOrderCommand) Status() order.Status   { return c.status }
func (c AddOrderCommand) Note() string           { return c.note }

func (c *AddOrderCommand) setOrderID(raw string) error {
	id, ok := kernel.ExtractOrderID(raw)
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%q is not PREFIX-DIGITS", raw))
	}
	c.orderID = id
	return nil
}

func (c *AddOrderCommand) setCountry(raw string) error {
	country, err := order.ParseCountry(raw)
	if err != nil {
		return err
	}
	c.country = country
	return nil
}

func (c *AddOrderCommand) setStatus(raw string) error {
	status, err := order.ParseStatus(raw)
	if err != nil {
		return err
	}
	c.status = status
	return nil
}
