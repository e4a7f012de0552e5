package commands

import (
	"context"

	"tracker/internal/core/domain/model/address"
	"tracker/internal/core/ports"

	"go.uber.org/zap"
)

// SaveAddressResult holds the stored address and the orders the user was
// auto-subscribed to.
type SaveAddressResult struct {
	Address    *address.Address
	Subscribed []string
}

// SaveAddressCommandHandler upserts an address, then subscribes the user to
// every order that references their username. Auto-subscribe is best effort:
// its failures are logged and never fail the save.
type SaveAddressCommandHandler struct {
	repos  Repositories
	logger *zap.Logger
	now    Clock
}

func NewSaveAddressCommandHandler(repos Repositories, logger *zap.Logger) SaveAddressCommandHandler {
	return SaveAddressCommandHandler{
		repos:  repos,
		logger: loggerOrNop(logger).With(zap.String("component", "save-address")),
		now:    defaultClock,
	}
}

func (h SaveAddressCommandHandler) Handle(ctx context.Context, cmd SaveAddressCommand) (SaveAddressResult, error) {
	if err := cmd.Validate(); err != nil {
		return SaveAddressResult{}, err
	}

	f := cmd.Fields()
	a, err := address.NewAddress(cmd.UserID(), cmd.Username(), f.FullName, f.Phone, f.City, f.Street, f.Postcode, h.now())
	if err != nil {
		return SaveAddressResult{}, err
	}

	if err := h.repos.Addresses.Upsert(ctx, a); err != nil {
		return SaveAddressResult{}, err
	}

	return SaveAddressResult{Address: a, Subscribed: h.autoSubscribe(ctx, a)}, nil
}

func (h SaveAddressCommandHandler) autoSubscribe(ctx context.Context, a *address.Address) []string {
	if a.Username() == "" {
		return nil
	}

	ids, err := h.repos.Orders.FindByUsername(ctx, a.Username())
	if err != nil {
		h.logger.Warn("auto-subscribe lookup failed", zap.String("username", a.Username()), zap.Error(err))
		return nil
	}

	var subscribed []string
	for _, id := range ids {
		if err := h.repos.Subscriptions.Subscribe(ctx, a.UserID(), id); err != nil {
			h.logger.Warn("auto-subscribe failed",
				zap.Int64("user_id", a.UserID()), zap.String("order_id", id), zap.Error(err))
			continue
		}
		subscribed = append(subscribed, id)
	}
	return subscribed
}

// DeleteAddressCommandHandler removes the address of a user.
type DeleteAddressCommandHandler struct {
	addresses ports.AddressRepository
}

func NewDeleteAddressCommandHandler(addresses ports.AddressRepository) DeleteAddressCommandHandler {
	return DeleteAddressCommandHandler{addresses: addresses}
}

// Handle reports whether an address was removed.
func (h DeleteAddressCommandHandler) Handle(ctx context.Context, userID int64) (bool, error) {
	return h.addresses.Delete(ctx, userID)
}
