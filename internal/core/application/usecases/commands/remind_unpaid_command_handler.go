package commands

import (
	"context"

	"tracker/internal/core/domain/model/address"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reminder resolves unpaid usernames to recipients and sends the reminder to
// each of them. It is shared by the single-order and all-orders handlers.
type reminder struct {
	repos     Repositories
	messenger ports.Messenger
	metrics   ports.MetricsRecorder
	logger    *zap.Logger
}

func newReminder(repos Repositories, messenger ports.Messenger, metrics ports.MetricsRecorder, logger *zap.Logger) reminder {
	return reminder{
		repos:     repos,
		messenger: messenger,
		metrics:   metricsOrNop(metrics),
		logger:    loggerOrNop(logger).With(zap.String("component", "payment-reminder")),
	}
}

// remind never stops on a failed recipient. Each resolved recipient is
// subscribed to the order before the send; a failed subscribe is only logged.
func (r reminder) remind(ctx context.Context, orderID string, usernames []string) (services.DeliveryReport, error) {
	report := services.DeliveryReport{OrderID: orderID}
	if len(usernames) == 0 {
		return report, nil
	}

	addrs, err := r.repos.Addresses.GetByUsernames(ctx, usernames)
	if err != nil {
		return report, err
	}
	byUsername := make(map[string]*address.Address, len(addrs))
	for _, a := range addrs {
		if _, ok := byUsername[a.Username()]; !ok {
			byUsername[a.Username()] = a
		}
	}

	text := services.PaymentReminder(orderID)
	for _, raw := range usernames {
		name := kernel.NormalizeUsername(raw)
		a, ok := byUsername[name]
		if !ok {
			report.Unresolved = append(report.Unresolved, name)
			continue
		}

		if err := r.repos.Subscriptions.Subscribe(ctx, a.UserID(), orderID); err != nil {
			r.logger.Warn("subscribe on reminder failed",
				zap.String("order_id", orderID), zap.Int64("user_id", a.UserID()), zap.Error(err))
		}

		sendErr := r.messenger.SendMessage(ctx, a.UserID(), text, ports.SendOptions{Markdown: true})
		report.Record(a.UserID(), name, sendErr)
		r.metrics.DeliveryRecorded(ports.KindReminder, services.ClassifyDeliveryError(sendErr))
		if sendErr != nil {
			r.logger.Warn("payment reminder failed",
				zap.String("order_id", orderID), zap.Int64("user_id", a.UserID()), zap.Error(sendErr))
		}
	}
	return report, nil
}

// RemindUnpaidForOrderCommandHandler reminds the unpaid participants of one order.
//
// Example:
//
//	cmd, _ := NewRemindUnpaidForOrderCommand("CN-12345")
//	report, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
//	fmt.Printf("sent %d of %d", report.Sent(), report.Total())
type RemindUnpaidForOrderCommandHandler struct {
	reminder reminder
}

func NewRemindUnpaidForOrderCommandHandler(
	repos Repositories,
	messenger ports.Messenger,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) RemindUnpaidForOrderCommandHandler {
	return RemindUnpaidForOrderCommandHandler{reminder: newReminder(repos, messenger, metrics, logger)}
}

func (h RemindUnpaidForOrderCommandHandler) Handle(ctx context.Context, cmd RemindUnpaidForOrderCommand) (services.DeliveryReport, error) {
	if err := cmd.Validate(); err != nil {
		return services.DeliveryReport{}, err
	}

	o, ok, err := h.reminder.repos.Orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return services.DeliveryReport{}, err
	}
	if !ok {
		return services.DeliveryReport{}, errs.NewObjectNotFoundError("order_id", cmd.OrderID())
	}

	unpaid, err := h.reminder.repos.Participants.UnpaidUsernames(ctx, o.ID())
	if err != nil {
		return services.DeliveryReport{}, err
	}

	report, err := h.reminder.remind(ctx, o.ID(), unpaid)
	if err != nil {
		return report, err
	}

	h.reminder.logger.Info("reminders sent",
		zap.String("order_id", o.ID()),
		zap.Int("sent", report.Sent()),
		zap.Int("failed", report.Failed()),
		zap.Int("unresolved", len(report.Unresolved)))
	return report, nil
}

// RemindAllUnpaidCommandHandler reminds every unpaid participant of every order.
type RemindAllUnpaidCommandHandler struct {
	reminder reminder
}

func NewRemindAllUnpaidCommandHandler(
	repos Repositories,
	messenger ports.Messenger,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) RemindAllUnpaidCommandHandler {
	return RemindAllUnpaidCommandHandler{reminder: newReminder(repos, messenger, metrics, logger)}
}

// Handle processes orders in order of first appearance. A backend failure
// stops the run and returns the orders processed so far.
func (h RemindAllUnpaidCommandHandler) Handle(ctx context.Context) (services.BatchReport, error) {
	var batch services.BatchReport
	runID := uuid.NewString()
	logger := h.reminder.logger.With(zap.String("run_id", runID))

	groups, err := h.reminder.repos.Participants.AllUnpaidGrouped(ctx)
	if err != nil {
		return batch, err
	}

	for _, g := range groups {
		report, err := h.reminder.remind(ctx, g.OrderID, g.Usernames)
		if err != nil {
			logger.Error("reminder run aborted", zap.String("order_id", g.OrderID), zap.Error(err))
			return batch, err
		}
		batch.Add(report)
	}

	logger.Info("reminder run done",
		zap.Int("orders", len(batch.Orders)),
		zap.Int("sent", batch.Sent()),
		zap.Int("failed", batch.Failed()))
	return batch, nil
}
