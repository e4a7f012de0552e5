package queries

import (
	"context"
	"errors"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrFindAddressesByUsernamesQueryIsNotConstructed = errors.New(
		"FindAddressesByUsernamesQuery must be created via NewFindAddressesByUsernamesQuery constructor",
	)
)

// FindAddressesByUsernamesQuery is the admin address lookup for a list of
// @mentions typed as free text.
//
// Example:
//
//	query, err := NewFindAddressesByUsernamesQuery("@alice_k, @bob_bb")
//	if errors.Is(err, errs.ErrValueIsRequired) {
//	    // no @username in the text, prompt again
//	}
type FindAddressesByUsernamesQuery struct {
	usernames []string

	guard guard.ConstructorGuard
}

// NewFindAddressesByUsernamesQuery requires at least one @mention in text.
func NewFindAddressesByUsernamesQuery(text string) (FindAddressesByUsernamesQuery, error) {
	names := kernel.NormalizeUsernames(kernel.ExtractMentions(text))
	if len(names) == 0 {
		return FindAddressesByUsernamesQuery{}, errs.NewValueIsRequiredError("usernames")
	}
	return FindAddressesByUsernamesQuery{usernames: names, guard: guard.NewConstructorGuard()}, nil
}

func (q FindAddressesByUsernamesQuery) Validate() error {
	return q.guard.Validate(ErrFindAddressesByUsernamesQueryIsNotConstructed)
}

// Usernames returns the normalized usernames in input order.
func (q FindAddressesByUsernamesQuery) Usernames() []string {
	return append([]string(nil), q.usernames...)
}

// AddressLookupLine pairs a requested username with its address; Address is
// nil when none is registered.
type AddressLookupLine struct {
	Username string
	Address  *AddressView
}

type FindAddressesByUsernamesQueryHandler struct {
	addresses ports.AddressRepository
}

func NewFindAddressesByUsernamesQueryHandler(addresses ports.AddressRepository) FindAddressesByUsernamesQueryHandler {
	return FindAddressesByUsernamesQueryHandler{addresses: addresses}
}

// Handle returns one line per requested username, in input order.
func (h FindAddressesByUsernamesQueryHandler) Handle(
	ctx context.Context,
	query FindAddressesByUsernamesQuery,
) ([]AddressLookupLine, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.addresses.GetByUsernames(ctx, query.Usernames())
	if err != nil {
		return nil, err
	}
	byUsername := make(map[string]AddressView, len(found))
	for _, a := range found {
		if _, ok := byUsername[a.Username()]; !ok {
			byUsername[a.Username()] = newAddressView(a)
		}
	}

	lines := make([]AddressLookupLine, 0, len(query.Usernames()))
	for _, name := range query.Usernames() {
		line := AddressLookupLine{Username: name}
		if v, ok := byUsername[name]; ok {
			line.Address = &v
		}
		lines = append(lines, line)
	}
	return lines, nil
}
