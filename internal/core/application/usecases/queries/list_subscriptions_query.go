package queries

import (
	"errors"

	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrListSubscriptionsQueryIsNotConstructed = errors.New(
		"ListSubscriptionsQuery must be created via NewListSubscriptionsQuery constructor",
	)
)

// ListSubscriptionsQuery lists the subscriptions of one user.
type ListSubscriptionsQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewListSubscriptionsQuery(userID int64) (ListSubscriptionsQuery, error) {
	if userID == 0 {
		return ListSubscriptionsQuery{}, errs.NewValueIsRequiredError("user_id")
	}
	return ListSubscriptionsQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListSubscriptionsQuery) Validate() error {
	return q.guard.Validate(ErrListSubscriptionsQueryIsNotConstructed)
}

func (q ListSubscriptionsQuery) UserID() int64 { return q.userID }

// SubscriptionView is one line of "my subscriptions". CurrentStatus is empty
// when the order no longer exists.
type SubscriptionView struct {
	OrderID        string
	LastSentStatus order.Status
	CurrentStatus  order.Status
}
