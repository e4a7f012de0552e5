package commands

import (
	"context"
	"time"

	"tracker/internal/core/domain/model/subscription"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SweepResult summarizes one sweep.
type SweepResult struct {
	RunID   string
	Changes []services.StatusChange
	Report  services.DeliveryReport
}

// SweepStatusChangesCommandHandler compares every subscription with its
// order's status, sends one notification per change and stores the new
// last_sent_status values in a single write.
//
// Delivery ordering:
//   - persistBeforeSend=false (default): send, then store. A crash between the
//     two re-sends the same changes on the next sweep (at-least-once).
//   - persistBeforeSend=true: store, then send. A crash between the two loses
//     those notifications (at-most-once).
//
// A failed send still records the status as sent; failures are reported and
// never retried.
type SweepStatusChangesCommandHandler struct {
	orders            ports.OrderRepository
	subscriptions     ports.SubscriptionRepository
	messenger         ports.Messenger
	detector          services.StatusChangeDetector
	persistBeforeSend bool
	metrics           ports.MetricsRecorder
	logger            *zap.Logger
	now               Clock
}

func NewSweepStatusChangesCommandHandler(
	orders ports.OrderRepository,
	subscriptions ports.SubscriptionRepository,
	messenger ports.Messenger,
	persistBeforeSend bool,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *SweepStatusChangesCommandHandler {
	return &SweepStatusChangesCommandHandler{
		orders:            orders,
		subscriptions:     subscriptions,
		messenger:         messenger,
		detector:          services.NewStatusChangeDetector(),
		persistBeforeSend: persistBeforeSend,
		metrics:           metricsOrNop(metrics),
		logger:            loggerOrNop(logger).With(zap.String("component", "status-sweep")),
		now:               defaultClock,
	}
}

func (h *SweepStatusChangesCommandHandler) Handle(ctx context.Context, cmd SweepStatusChangesCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	started := time.Now()
	result := SweepResult{RunID: uuid.NewString()}
	logger := h.logger.With(zap.String("run_id", result.RunID))

	err := h.sweep(ctx, &result)
	h.metrics.SweepCompleted(time.Since(started), len(result.Changes), err)
	if err != nil {
		logger.Error("sweep failed", zap.Int("changes", len(result.Changes)), zap.Error(err))
		return result, err
	}

	if len(result.Changes) > 0 {
		logger.Info("sweep done",
			zap.Int("changes", len(result.Changes)),
			zap.Int("sent", result.Report.Sent()),
			zap.Int("failed", result.Report.Failed()),
			zap.Duration("took", time.Since(started)))
	}
	return result, nil
}

func (h *SweepStatusChangesCommandHandler) sweep(ctx context.Context, result *SweepResult) error {
	// Orders are read under the subscriptions lock, so a status sent by the
	// notify path in the meantime is never compared against a stale order.
	err := h.subscriptions.Mutate(ctx, func(subs []*subscription.Subscription) (bool, error) {
		orders, err := h.orders.All(ctx)
		if err != nil {
			return false, err
		}

		result.Changes = h.detector.Detect(subs, orders, h.now())
		if len(result.Changes) == 0 {
			return false, nil
		}
		if !h.persistBeforeSend {
			h.deliver(ctx, result.Changes, &result.Report)
		}
		return true, nil
	})
	if err != nil {
		return err
	}

	if h.persistBeforeSend {
		h.deliver(ctx, result.Changes, &result.Report)
	}
	return nil
}

func (h *SweepStatusChangesCommandHandler) deliver(ctx context.Context, changes []services.StatusChange, report *services.DeliveryReport) {
	for _, c := range changes {
		err := h.messenger.SendMessage(ctx, c.UserID, services.StatusNotification(c.OrderID, c.Status), ports.SendOptions{Markdown: true})
		report.Record(c.UserID, "", err)
		h.metrics.DeliveryRecorded(ports.KindNotification, services.ClassifyDeliveryError(err))
		if err != nil {
			h.logger.Warn("status notification failed",
				zap.String("order_id", c.OrderID), zap.Int64("user_id", c.UserID), zap.Error(err))
		}
	}
}
