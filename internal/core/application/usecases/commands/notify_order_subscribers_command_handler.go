package commands

import (
	"context"

	"tracker/internal/core/domain/model/subscription"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"go.uber.org/zap"
)

// NotifyOrderSubscribersCommandHandler is the immediate path after an admin
// status change: it sends the current status of one order to each subscriber
// that has not received it yet and records it as sent per recipient.
// The scheduled sweep would send the same messages later; the shared
// last_sent_status keeps the two paths from notifying twice.
type NotifyOrderSubscribersCommandHandler struct {
	orders        ports.OrderRepository
	subscriptions ports.SubscriptionRepository
	messenger     ports.Messenger
	metrics       ports.MetricsRecorder
	logger        *zap.Logger
	now           Clock
}

func NewNotifyOrderSubscribersCommandHandler(
	orders ports.OrderRepository,
	subscriptions ports.SubscriptionRepository,
	messenger ports.Messenger,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) NotifyOrderSubscribersCommandHandler {
	return NotifyOrderSubscribersCommandHandler{
		orders:        orders,
		subscriptions: subscriptions,
		messenger:     messenger,
		metrics:       metricsOrNop(metrics),
		logger:        loggerOrNop(logger).With(zap.String("component", "notify-subscribers")),
		now:           defaultClock,
	}
}

// Handle returns the per-recipient report. A missing order is
// errs.ObjectNotFoundError; an order without status sends nothing.
func (h NotifyOrderSubscribersCommandHandler) Handle(
	ctx context.Context,
	cmd NotifyOrderSubscribersCommand,
) (services.DeliveryReport, error) {
	if err := cmd.Validate(); err != nil {
		return services.DeliveryReport{}, err
	}

	report := services.DeliveryReport{OrderID: cmd.OrderID()}

	// The order is read under the subscriptions lock, same as in the sweep.
	err := h.subscriptions.Mutate(ctx, func(subs []*subscription.Subscription) (bool, error) {
		o, ok, err := h.orders.Get(ctx, cmd.OrderID())
		if err != nil {
			return false, err
		}
		if !ok {
			return false, errs.NewObjectNotFoundError("order_id", cmd.OrderID())
		}
		report.OrderID = o.ID()

		status := o.Status()
		text := services.StatusNotification(o.ID(), status)
		changed := false
		for _, s := range subs {
			if !s.ForOrder(o.ID()) || !s.ShouldNotify(status) {
				continue
			}

			sendErr := h.messenger.SendMessage(ctx, s.UserID(), text, ports.SendOptions{Markdown: true})
			report.Record(s.UserID(), "", sendErr)
			h.metrics.DeliveryRecorded(ports.KindNotification, services.ClassifyDeliveryError(sendErr))
			if sendErr != nil {
				h.logger.Warn("notification failed",
					zap.String("order_id", o.ID()), zap.Int64("user_id", s.UserID()), zap.Error(sendErr))
			}

			s.MarkSent(status, h.now())
			changed = true
		}
		return changed, nil
	})
	if err != nil {
		return report, err
	}

	h.logger.Info("subscribers notified",
		zap.String("order_id", report.OrderID), zap.Int("sent", report.Sent()), zap.Int("failed", report.Failed()))
	return report, nil
}
