package commands

import (
	"context"
	"errors"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrTogglePaidCommandIsNotConstructed = errors.New(
		"TogglePaidCommand must be created via NewTogglePaidCommand constructor",
	)
)

// TogglePaidCommand flips the delivery-paid flag of one participant.
type TogglePaidCommand struct { //nolint:recvcheck //using for validation
	orderID  string
	username string

	guard guard.ConstructorGuard
}

func NewTogglePaidCommand(orderID, username string) (TogglePaidCommand, error) {
	cmd := TogglePaidCommand{
		orderID:  strings.TrimSpace(orderID),
		username: kernel.NormalizeUsername(username),
		guard:    guard.NewConstructorGuard(),
	}

	var err error
	if cmd.orderID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("order_id"))
	}
	if cmd.username == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("username"))
	}
	if err != nil {
		return TogglePaidCommand{}, err
	}
	return cmd, nil
}

func (c TogglePaidCommand) Validate() error {
	return c.guard.Validate(ErrTogglePaidCommandIsNotConstructed)
}

func (c TogglePaidCommand) OrderID() string  { return c.orderID }
func (c TogglePaidCommand) Username() string { return c.username }

// TogglePaidCommandHandler flips the paid flag.
type TogglePaidCommandHandler struct {
	participants ports.ParticipantRepository
}

func NewTogglePaidCommandHandler(participants ports.ParticipantRepository) TogglePaidCommandHandler {
	return TogglePaidCommandHandler{participants: participants}
}

// Handle returns the new flag; found is false when the participant does not exist.
func (h TogglePaidCommandHandler) Handle(ctx context.Context, cmd TogglePaidCommand) (paid bool, found bool, err error) {
	if err := cmd.Validate(); err != nil {
		return false, false, err
	}
	return h.participants.TogglePaid(ctx, cmd.OrderID(), cmd.Username())
}
