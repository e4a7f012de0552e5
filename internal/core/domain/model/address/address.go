package address

import (
	"errors"
	"strings"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var (
	// ErrAddressIsNotConstructed is returned when an Address instance was not created
	// through NewAddress or RestoreAddress.
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")
)

// Address is the delivery address of one transport user.
type Address struct {
	userID    int64
	username  string
	fullName  string
	phone     string
	city      string
	street    string
	postcode  string
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// Snapshot is the flat field set of an Address.
type Snapshot struct {
	UserID    int64
	Username  string
	FullName  string
	Phone     string
	City      string
	Street    string
	Postcode  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAddress validates a freshly entered address.
//
// Parameters:
//   - userID: transport user id, required
//   - username: transport username, stored normalized; may be empty
//   - fullName, city, street: free text, required
//   - phone: normalized with NormalizePhone
//   - postcode: validated with ValidatePostcode
//
// Returns all validation errors joined together.
func NewAddress(userID int64, username, fullName, phone, city, street, postcode string, now time.Time) (*Address, error) {
	a := &Address{
		username:      kernel.NormalizeUsername(username),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setUserID(userID),
		a.setFullName(fullName),
		a.setPhone(phone),
		a.setCity(city),
		a.setStreet(street),
		a.setPostcode(postcode),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAddress rebuilds an address from a stored row without validation.
func RestoreAddress(s Snapshot) (*Address, error) {
	if s.UserID == 0 {
		return nil, errs.NewValueIsRequiredError("user_id")
	}

	return &Address{
		userID:        s.UserID,
		username:      kernel.NormalizeUsername(s.Username),
		fullName:      s.FullName,
		phone:         s.Phone,
		city:          s.City,
		street:        s.Street,
		postcode:      s.Postcode,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Address instance was properly constructed.
func (a *Address) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

func (a *Address) Snapshot() Snapshot {
	return Snapshot{
		UserID:    a.userID,
		Username:  a.username,
		FullName:  a.fullName,
		Phone:     a.phone,
		City:      a.city,
		Street:    a.street,
		Postcode:  a.postcode,
		CreatedAt: a.createdAt,
		UpdatedAt: a.updatedAt,
	}
}

func (a *Address) UserID() int64        { return a.userID }
func (a *Address) Username() string     { return a.username }
func (a *Address) FullName() string     { return a.fullName }
func (a *Address) Phone() string        { return a.phone }
func (a *Address) City() string         { return a.city }
func (a *Address) Street() string       { return a.street }
func (a *Address) Postcode() string     { return a.postcode }
func (a *Address) CreatedAt() time.Time { return a.createdAt }
func (a *Address) UpdatedAt() time.Time { return a.updatedAt }

// ReplaceOf keeps the creation time of the address being replaced.
func (a *Address) ReplaceOf(previous *Address) {
	if previous != nil && !previous.createdAt.IsZero() {
		a.createdAt = previous.createdAt
	}
}

func (a *Address) setUserID(id int64) error {
	if id == 0 {
		return errs.NewValueIsRequiredError("user_id")
	}
	a.userID = id
	return nil
}

func (a *Address) setFullName(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs.NewValueIsRequiredError("full_name")
	}
	a.fullName = v
	return nil
}

func (a *Address) setPhone(v string) error {
	p, err := NormalizePhone(v)
	if err != nil {
		return err
	}
	a.phone = p
	return nil
}

func (a *Address) setCity(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = v
	return nil
}

func (a *Address) setStreet(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs.NewValueIsRequiredError("address")
	}
	a.street = v
	return nil
}

func (a *Address) setPostcode(v string) error {
	p, err := ValidatePostcode(v)
	if err != nil {
		return err
	}
	a.postcode = p
	return nil
}
