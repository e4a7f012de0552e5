// Package commands contains the business operations that modify tracker state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: a validated command value built by
// its constructor, and a handler that loads records through the repositories,
// applies domain rules and persists the result.
//
// The tabular backend has no transactions. Handlers rely on the per-table
// locking of the repositories and never hold a lock across two tables.
package commands

import (
	"time"

	"tracker/internal/core/ports"

	"go.uber.org/zap"
)

// Clock returns the current time; handlers default to time.Now.
type Clock func() time.Time

func defaultClock() time.Time { return time.Now().UTC() }

// Repositories groups the table repositories a handler may depend on.
type Repositories struct {
	Orders        ports.OrderRepository
	Addresses     ports.AddressRepository
	Subscriptions ports.SubscriptionRepository
	Participants  ports.ParticipantRepository
}

type nopMetrics struct{}

func (nopMetrics) SweepCompleted(time.Duration, int, error)       {}
func (nopMetrics) DeliveryRecorded(string, ports.DeliveryFailure) {}

func metricsOrNop(m ports.MetricsRecorder) ports.MetricsRecorder {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
