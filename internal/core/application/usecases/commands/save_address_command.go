package commands

import (
	"errors"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrSaveAddressCommandIsNotConstructed = errors.New(
		"SaveAddressCommand must be created via NewSaveAddressCommand constructor",
	)
)

// AddressFields are the values collected by the address wizard.
type AddressFields struct {
	FullName string
	Phone    string
	City     string
	Street   string
	Postcode string
}

// SaveAddressCommand stores the address of a user. Field validation happens
// in the address constructor when the command is handled.
type SaveAddressCommand struct { //nolint:recvcheck //using for validation
	userID   int64
	username string
	fields   AddressFields

	guard guard.ConstructorGuard
}

func NewSaveAddressCommand(userID int64, username string, fields AddressFields) (SaveAddressCommand, error) {
	if userID == 0 {
		return SaveAddressCommand{}, errs.NewValueIsRequiredError("user_id")
	}

	return SaveAddressCommand{
		userID:   userID,
		username: username,
		fields:   fields,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SaveAddressCommand) Validate() error {
	return c.guard.Validate(ErrSaveAddressCommandIsNotConstructed)
}

func (c SaveAddressCommand) UserID() int64         { return c.userID }
func (c SaveAddressCommand) Username() string      { return c.username }
func (c SaveAddressCommand) Fields() AddressFields { return c.fields }
