package ports

import (
	"context"

	"tracker/internal/core/domain/model/participant"
)

// UnpaidGroup lists the unpaid participants of one order.
type UnpaidGroup struct {
	OrderID   string
	Usernames []string
}

// ParticipantRepository defines the persistence contract for order participants.
// Participants are never removed implicitly.
type ParticipantRepository interface {
	// Ensure inserts unpaid rows for usernames not yet present on orderID and
	// returns how many were added. Existing rows keep their paid flag.
	Ensure(ctx context.Context, orderID string, usernames []string) (int, error)

	// TogglePaid flips the paid flag. ok is false when the participant does not exist.
	TogglePaid(ctx context.Context, orderID, username string) (paid bool, ok bool, err error)

	// UnpaidUsernames returns the unpaid usernames of orderID in table order.
	UnpaidUsernames(ctx context.Context, orderID string) ([]string, error)

	// AllUnpaidGrouped groups unpaid usernames by order, in order of first appearance.
	AllUnpaidGrouped(ctx context.Context) ([]UnpaidGroup, error)

	// ListByOrder returns all participants of orderID in table order.
	ListByOrder(ctx context.Context, orderID string) ([]*participant.Participant, error)
}
