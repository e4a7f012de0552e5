// Package participant provides the Participant record: one @username taking
// part in an order, with a delivery-paid flag and an optional quantity.
package participant

import (
	"errors"
	"strings"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var (
	ErrParticipantIsNotConstructed = errors.New("Participant must be created via NewParticipant constructor")
)

// Participant is keyed by (orderID, username); both compare case-insensitively.
type Participant struct {
	orderID   string
	username  string
	paid      bool
	qty       *int
	updatedAt time.Time

	isConstructed bool
}

type Snapshot struct {
	OrderID   string
	Username  string
	Paid      bool
	Qty       *int
	UpdatedAt time.Time
}

// NewParticipant creates an unpaid participant with the username normalized.
func NewParticipant(orderID, username string, now time.Time) (*Participant, error) {
	var err error
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("order_id"))
	}
	username = kernel.NormalizeUsername(username)
	if username == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("username"))
	}
	if err != nil {
		return nil, err
	}

	return &Participant{
		orderID:       orderID,
		username:      username,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

func RestoreParticipant(s Snapshot) (*Participant, error) {
	p, err := NewParticipant(s.OrderID, s.Username, s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.paid = s.Paid
	p.qty = s.Qty
	return p, nil
}

func (p *Participant) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParticipantIsNotConstructed
	}
	return nil
}

func (p *Participant) Snapshot() Snapshot {
	return Snapshot{
		OrderID:   p.orderID,
		Username:  p.username,
		Paid:      p.paid,
		Qty:       p.qty,
		UpdatedAt: p.updatedAt,
	}
}

func (p *Participant) OrderID() string      { return p.orderID }
func (p *Participant) Username() string     { return p.username }
func (p *Participant) Paid() bool           { return p.paid }
func (p *Participant) Qty() *int            { return p.qty }
func (p *Participant) UpdatedAt() time.Time { return p.updatedAt }

// Matches reports whether the participant is keyed by orderID and username.
func (p *Participant) Matches(orderID, username string) bool {
	return kernel.SameKey(p.orderID, orderID) && p.username == kernel.NormalizeUsername(username)
}

// TogglePaid flips the paid flag and returns the new value.
func (p *Participant) TogglePaid(now time.Time) bool {
	p.paid = !p.paid
	p.updatedAt = now
	return p.paid
}

// ParsePaid decodes the paid column: true, 1, yes and да are truthy in any case.
func ParsePaid(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "да":
		return true
	default:
		return false
	}
}
