package subscription

import (
	"errors"
	"strings"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"
)

var (
	ErrSubscriptionIsNotConstructed = errors.New("Subscription must be created via NewSubscription constructor")
)

// Subscription is keyed by (userID, orderID); orderID is compared case-insensitively.
type Subscription struct {
	userID         int64
	orderID        string
	lastSentStatus order.Status
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

type Snapshot struct {
	UserID         int64
	OrderID        string
	LastSentStatus order.Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewSubscription subscribes userID to orderID. The order's current status is
// recorded as already sent, so the first notification fires on the next change.
func NewSubscription(userID int64, orderID string, current order.Status, now time.Time) (*Subscription, error) {
	var err error
	if userID == 0 {
		err = errors.Join(err, errs.NewValueIsRequiredError("user_id"))
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("order_id"))
	}
	if err != nil {
		return nil, err
	}

	return &Subscription{
		userID:         userID,
		orderID:        orderID,
		lastSentStatus: current,
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}, nil
}

// RestoreSubscription rebuilds a subscription from a stored row.
func RestoreSubscription(s Snapshot) (*Subscription, error) {
	sub, err := NewSubscription(s.UserID, s.OrderID, s.LastSentStatus, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	sub.updatedAt = s.UpdatedAt
	return sub, nil
}

func (s *Subscription) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSubscriptionIsNotConstructed
	}
	return nil
}

func (s *Subscription) Snapshot() Snapshot {
	return Snapshot{
		UserID:         s.userID,
		OrderID:        s.orderID,
		LastSentStatus: s.lastSentStatus,
		CreatedAt:      s.createdAt,
		UpdatedAt:      s.updatedAt,
	}
}

func (s *Subscription) UserID() int64                { return s.userID }
func (s *Subscription) OrderID() string              { return s.orderID }
func (s *Subscription) LastSentStatus() order.Status { return s.lastSentStatus }
func (s *Subscription) CreatedAt() time.Time         { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time         { return s.updatedAt }

// Matches reports whether the subscription is keyed by userID and orderID.
func (s *Subscription) Matches(userID int64, orderID string) bool {
	return s.userID == userID && kernel.SameKey(s.orderID, orderID)
}

// ForOrder reports whether the subscription targets orderID.
func (s *Subscription) ForOrder(orderID string) bool {
	return kernel.SameKey(s.orderID, orderID)
}

// ShouldNotify reports whether current is a status the user has not been told about.
// The comparison is exact: a case-only change in the stored status notifies.
func (s *Subscription) ShouldNotify(current order.Status) bool {
	return !current.IsEmpty() && current != s.lastSentStatus
}

// MarkSent records status as the last one delivered.
func (s *Subscription) MarkSent(status order.Status, now time.Time) {
	s.lastSentStatus = status
	s.updatedAt = now
}
