package commands

import (
	"errors"

	"tracker/internal/pkg/guard"
)

var (
	ErrSweepStatusChangesCommandIsNotConstructed = errors.New(
		"SweepStatusChangesCommand must be created via NewSweepStatusChangesCommand constructor",
	)
)

// SweepStatusChangesCommand triggers one change-detection pass over all subscriptions.
type SweepStatusChangesCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

func NewSweepStatusChangesCommand() SweepStatusChangesCommand {
	return SweepStatusChangesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c SweepStatusChangesCommand) Validate() error {
	return c.guard.Validate(ErrSweepStatusChangesCommandIsNotConstructed)
}
