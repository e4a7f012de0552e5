package services

import (
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/model/subscription"
)

// StatusChange is one notification to emit: userID must be told that orderID
// now has Status.
type StatusChange struct {
	UserID  int64
	OrderID string
	Status  order.Status
}

// StatusChangeDetector compares every subscription with the current status of
// its order.
//
// Business rules:
//   - An order without status never produces a change
//   - A subscription to an order that no longer exists produces nothing
//   - The comparison with last_sent_status is exact (case-sensitive)
//   - Each emitted change is recorded on its subscription immediately, so a
//     second Detect over the same data emits nothing
//
// Example usage:
//
//	detector := NewStatusChangeDetector()
//	changes := detector.Detect(subs, orders, time.Now())
//	for _, c := range changes {
//	    // send c.Status to c.UserID, then persist subs
//	}
type StatusChangeDetector struct{}

func NewStatusChangeDetector() StatusChangeDetector {
	return StatusChangeDetector{}
}

// Detect returns the changes in subscription order and marks them sent on subs.
//
// Parameters:
//   - subs: all subscriptions; mutated in place
//   - orders: all orders; ids are matched case-insensitively
//   - now: timestamp recorded on changed subscriptions
func (d StatusChangeDetector) Detect(
	subs []*subscription.Subscription,
	orders []*order.Order,
	now time.Time,
) []StatusChange {
	statuses := make(map[string]order.Status, len(orders))
	for _, o := range orders {
		key := kernel.FoldKey(o.ID())
		if _, ok := statuses[key]; !ok {
			statuses[key] = o.Status()
		}
	}

	var changes []StatusChange
	for _, s := range subs {
		current, ok := statuses[kernel.FoldKey(s.OrderID())]
		if !ok || !s.ShouldNotify(current) {
			continue
		}

		changes = append(changes, StatusChange{
			UserID:  s.UserID(),
			OrderID: s.OrderID(),
			Status:  current,
		})
		s.MarkSent(current, now)
	}
	return changes
}
