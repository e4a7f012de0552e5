package queries

import (
	"context"
	"errors"
	"time"

	"tracker/internal/core/domain/model/address"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrGetAddressQueryIsNotConstructed = errors.New(
		"GetAddressQuery must be created via NewGetAddressQuery constructor",
	)
)

// GetAddressQuery loads the address of one user.
type GetAddressQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewGetAddressQuery(userID int64) (GetAddressQuery, error) {
	if userID == 0 {
		return GetAddressQuery{}, errs.NewValueIsRequiredError("user_id")
	}
	return GetAddressQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAddressQuery) Validate() error {
	return q.guard.Validate(ErrGetAddressQueryIsNotConstructed)
}

func (q GetAddressQuery) UserID() int64 { return q.userID }

// AddressView is the address card read model.
type AddressView struct {
	UserID    int64
	Username  string
	FullName  string
	Phone     string
	City      string
	Street    string
	Postcode  string
	UpdatedAt time.Time
}

func newAddressView(a *address.Address) AddressView {
	return AddressView{
		UserID:    a.UserID(),
		Username:  a.Username(),
		FullName:  a.FullName(),
		Phone:     a.Phone(),
		City:      a.City(),
		Street:    a.Street(),
		Postcode:  a.Postcode(),
		UpdatedAt: a.UpdatedAt(),
	}
}

type GetAddressQueryHandler struct {
	addresses ports.AddressRepository
}

func NewGetAddressQueryHandler(addresses ports.AddressRepository) GetAddressQueryHandler {
	return GetAddressQueryHandler{addresses: addresses}
}

// Handle returns errs.ObjectNotFoundError when the user has no address.
func (h GetAddressQueryHandler) Handle(ctx context.Context, query GetAddressQuery) (AddressView, error) {
	if err := query.Validate(); err != nil {
		return AddressView{}, err
	}

	a, ok, err := h.addresses.Get(ctx, query.UserID())
	if err != nil {
		return AddressView{}, err
	}
	if !ok {
		return AddressView{}, errs.NewObjectNotFoundError("user_id", query.UserID())
	}
	return newAddressView(a), nil
}
