package commands

import (
	"context"

	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"

	"go.uber.org/zap"
)

// UpdateOrderStatusResult reports whether the order existed and who was told.
type UpdateOrderStatusResult struct {
	Found    bool
	Notified services.DeliveryReport
}

// UpdateOrderStatusCommandHandler updates one order and notifies its
// subscribers right away.
type UpdateOrderStatusCommandHandler struct {
	orders ports.OrderRepository
	notify NotifyOrderSubscribersCommandHandler
	logger *zap.Logger
}

func NewUpdateOrderStatusCommandHandler(
	orders ports.OrderRepository,
	notify NotifyOrderSubscribersCommandHandler,
	logger *zap.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		orders: orders,
		notify: notify,
		logger: loggerOrNop(logger).With(zap.String("component", "update-order-status")),
	}
}

// Handle returns Found=false without error when the order does not exist.
// A notification failure is logged and does not fail the update.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (UpdateOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	found, err := h.orders.UpdateStatus(ctx, cmd.OrderID(), cmd.Status())
	if err != nil || !found {
		return UpdateOrderStatusResult{Found: found}, err
	}

	result := UpdateOrderStatusResult{Found: true}
	notifyCmd, err := NewNotifyOrderSubscribersCommand(cmd.OrderID())
	if err != nil {
		return result, err
	}
	report, err := h.notify.Handle(ctx, notifyCmd)
	if err != nil {
		h.logger.Warn("notify after status change failed", zap.String("order_id", cmd.OrderID()), zap.Error(err))
	}
	result.Notified = report
	return result, nil
}
