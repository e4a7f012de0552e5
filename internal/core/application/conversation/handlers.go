// Package conversation turns inbound chat events into tracker operations.
//
// Every chat has a session (ports.Session): the active wizard step (Mode) and
// the values collected so far (Buffer). A text event is routed in this order:
//   - a cancel keyword clears the session, whatever the step;
//   - a slash command (/start, /help, /admin);
//   - for administrators, admin menu buttons and admin wizard steps;
//   - customer menu buttons and customer wizard steps.
//
// A step that rejects its input replies with the same prompt and leaves the
// session as it was. A terminal step clears the session whether or not the
// operation succeeded.
package conversation

import (
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/ports"

	"go.uber.org/zap"
)

// Handlers are the use cases the router drives.
type Handlers struct {
	AddOrder      commands.AddOrderCommandHandler
	UpdateStatus  commands.UpdateOrderStatusCommandHandler
	MassUpdate    commands.MassUpdateStatusCommandHandler
	TogglePaid    commands.TogglePaidCommandHandler
	Subscribe     commands.SubscribeCommandHandler
	Unsubscribe   commands.UnsubscribeCommandHandler
	SaveAddress   commands.SaveAddressCommandHandler
	DeleteAddress commands.DeleteAddressCommandHandler
	RemindOrder   commands.RemindUnpaidForOrderCommandHandler
	RemindAll     commands.RemindAllUnpaidCommandHandler

	GetOrder          queries.GetOrderQueryHandler
	ListSubscriptions queries.ListSubscriptionsQueryHandler
	GetAddress        queries.GetAddressQueryHandler
	FindAddresses     queries.FindAddressesByUsernamesQueryHandler
}

// NewHandlers wires every use case over the same repositories and messenger.
func NewHandlers(
	repos commands.Repositories,
	messenger ports.Messenger,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) Handlers {
	notify := commands.NewNotifyOrderSubscribersCommandHandler(
		repos.Orders, repos.Subscriptions, messenger, metrics, logger)

	return Handlers{
		AddOrder:      commands.NewAddOrderCommandHandler(repos.Orders, repos.Participants),
		UpdateStatus:  commands.NewUpdateOrderStatusCommandHandler(repos.Orders, notify, logger),
		MassUpdate:    commands.NewMassUpdateStatusCommandHandler(repos.Orders, notify, logger),
		TogglePaid:    commands.NewTogglePaidCommandHandler(repos.Participants),
		Subscribe:     commands.NewSubscribeCommandHandler(repos.Subscriptions),
		Unsubscribe:   commands.NewUnsubscribeCommandHandler(repos.Subscriptions),
		SaveAddress:   commands.NewSaveAddressCommandHandler(repos, logger),
		DeleteAddress: commands.NewDeleteAddressCommandHandler(repos.Addresses),
		RemindOrder:   commands.NewRemindUnpaidForOrderCommandHandler(repos, messenger, metrics, logger),
		RemindAll:     commands.NewRemindAllUnpaidCommandHandler(repos, messenger, metrics, logger),

		GetOrder:          queries.NewGetOrderQueryHandler(repos.Orders, repos.Participants, repos.Subscriptions),
		ListSubscriptions: queries.NewListSubscriptionsQueryHandler(repos.Subscriptions, repos.Orders),
		GetAddress:        queries.NewGetAddressQueryHandler(repos.Addresses),
		FindAddresses:     queries.NewFindAddressesByUsernamesQueryHandler(repos.Addresses),
	}
}
