package commands

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"

	"go.uber.org/zap"
)

// MassUpdateOutcome is the result for one input token.
type MassUpdateOutcome string

const (
	OutcomeUpdated  MassUpdateOutcome = "updated"
	OutcomeNotFound MassUpdateOutcome = "not_found"
	OutcomeInvalid  MassUpdateOutcome = "invalid"
)

type MassUpdateLine struct {
	Input   string
	OrderID string
	Outcome MassUpdateOutcome
}

// MassUpdateReport lists every token in input order.
type MassUpdateReport struct {
	Lines []MassUpdateLine
}

func (r MassUpdateReport) Count(outcome MassUpdateOutcome) int {
	n := 0
	for _, l := range r.Lines {
		if l.Outcome == outcome {
			n++
		}
	}
	return n
}

// MassUpdateStatusCommandHandler updates each listed order independently: one
// unparsable or missing id never blocks the others.
type MassUpdateStatusCommandHandler struct {
	orders ports.OrderRepository
	notify NotifyOrderSubscribersCommandHandler
	logger *zap.Logger
}

func NewMassUpdateStatusCommandHandler(
	orders ports.OrderRepository,
	notify NotifyOrderSubscribersCommandHandler,
	logger *zap.Logger,
) MassUpdateStatusCommandHandler {
	return MassUpdateStatusCommandHandler{
		orders: orders,
		notify: notify,
		logger: loggerOrNop(logger).With(zap.String("component", "mass-update-status")),
	}
}

// Handle returns an error only when the backend fails; the report then holds
// the lines processed so far.
func (h MassUpdateStatusCommandHandler) Handle(ctx context.Context, cmd MassUpdateStatusCommand) (MassUpdateReport, error) {
	if err := cmd.Validate(); err != nil {
		return MassUpdateReport{}, err
	}

	var report MassUpdateReport
	for _, token := range cmd.Tokens() {
		id, ok := kernel.ExtractOrderID(token)
		if !ok {
			report.Lines = append(report.Lines, MassUpdateLine{Input: token, Outcome: OutcomeInvalid})
			continue
		}

		found, err := h.orders.UpdateStatus(ctx, id, cmd.Status())
		if err != nil {
			return report, err
		}
		if !found {
			report.Lines = append(report.Lines, MassUpdateLine{Input: token, OrderID: id, Outcome: OutcomeNotFound})
			continue
		}
		report.Lines = append(report.Lines, MassUpdateLine{Input: token, OrderID: id, Outcome: OutcomeUpdated})

		notifyCmd, err := NewNotifyOrderSubscribersCommand(id)
		if err != nil {
			return report, err
		}
		if _, err := h.notify.Handle(ctx, notifyCmd); err != nil {
			h.logger.Warn("notify after mass update failed", zap.String("order_id", id), zap.Error(err))
		}
	}

	h.logger.Info("mass status update done",
		zap.String("status", cmd.Status().String()),
		zap.Int("updated", report.Count(OutcomeUpdated)),
		zap.Int("not_found", report.Count(OutcomeNotFound)),
		zap.Int("invalid", report.Count(OutcomeInvalid)))
	return report, nil
}
