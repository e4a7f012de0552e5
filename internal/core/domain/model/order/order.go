package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a row of the orders table.
//
// Order follows these invariants:
//   - id is non-empty; orders created through NewOrder carry a canonical id
//   - status is free text once stored (see SetStatus)
//   - updatedAt moves forward on every mutation
type Order struct {
	id         string
	clientName string
	phone      string
	origin     string
	country    Country
	status     Status
	note       string
	updatedAt  time.Time

	isConstructed bool
}

// Snapshot is the flat field set of an Order, used to persist and restore it.
type Snapshot struct {
	ID         string
	ClientName string
	Phone      string
	Origin     string
	Country    Country
	Status     Status
	Note       string
	UpdatedAt  time.Time
}

// NewOrder creates an order collected by the add-order wizard.
//
// Parameters:
//   - rawID: order id in any accepted spelling; stored canonical (e.g. "cn 12345" -> "CN-12345")
//   - clientName: free text, may contain @mentions of participants
//   - country: origin warehouse
//   - status: must be a catalog status
//   - note: free text, may be empty
//
// Returns all validation errors joined together.
func NewOrder(rawID, clientName string, country Country, status Status, note string, now time.Time) (*Order, error) {
	o := &Order{
		clientName:    strings.TrimSpace(clientName),
		note:          strings.TrimSpace(note),
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(rawID),
		o.setCountry(country),
		o.setInitialStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from a stored row. Only the id is checked:
// rows written by hand in the spreadsheet are accepted as they are.
func RestoreOrder(s Snapshot) (*Order, error) {
	id := strings.TrimSpace(s.ID)
	if id == "" {
		return nil, errs.NewValueIsRequiredError("order_id")
	}

	return &Order{
		id:            id,
		clientName:    s.ClientName,
		phone:         s.Phone,
		origin:        s.Origin,
		country:       s.Country,
		status:        s.Status,
		note:          s.Note,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Snapshot returns the flat field set of the order.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:         o.id,
		ClientName: o.clientName,
		Phone:      o.phone,
		Origin:     o.origin,
		Country:    o.country,
		Status:     o.status,
		Note:       o.note,
		UpdatedAt:  o.updatedAt,
	}
}

func (o *Order) ID() string           { return o.id }
func (o *Order) ClientName() string   { return o.clientName }
func (o *Order) Phone() string        { return o.phone }
func (o *Order) Origin() string       { return o.origin }
func (o *Order) Country() Country     { return o.country }
func (o *Order) Status() Status       { return o.status }
func (o *Order) Note() string         { return o.note }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Source returns the country when set and the legacy origin column otherwise.
func (o *Order) Source() string {
	if o.country != "" {
		return o.country.String()
	}
	return o.origin
}

// HasID compares ids case-insensitively.
func (o *Order) HasID(id string) bool {
	return kernel.SameKey(o.id, id)
}

// SetStatus stores any status string. Catalog validation is done by the
// caller that collected the value.
func (o *Order) SetStatus(status Status, now time.Time) {
	o.status = Status(strings.TrimSpace(string(status)))
	o.updatedAt = now
}

// Mentions returns the @usernames referenced by the client name and the note.
func (o *Order) Mentions() []string {
	return kernel.ExtractMentions(o.clientName + " " + o.note)
}

// MentionsUsername reports whether username appears among the order's mentions.
func (o *Order) MentionsUsername(username string) bool {
	want := kernel.NormalizeUsername(username)
	if want == "" {
		return false
	}
	for _, m := range o.Mentions() {
		if kernel.NormalizeUsername(m) == want {
			return true
		}
	}
	return false
}

func (o *Order) setID(rawID string) error {
	id, ok := kernel.ExtractOrderID(rawID)
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%q is not PREFIX-DIGITS", rawID))
	}
	o.id = id
	return nil
}

func (o *Order) setCountry(country Country) error {
	c, err := ParseCountry(string(country))
	if err != nil {
		return err
	}
	o.country = c
	return nil
}

func (o *Order) setInitialStatus(status Status) error {
	s, err := ParseStatus(string(status))
	if err != nil {
		return err
	}
	o.status = s
	return nil
}
