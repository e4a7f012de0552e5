// Package queries contains read operations for retrieving system state.
// Queries return read models shaped for the order, address and subscription
// cards shown in chats.
package queries

import (
	"errors"
	"strings"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery loads one order card. ViewerID is the chat user asking; when
// set, the response tells whether that user is subscribed.
//
// Example:
//
//	query, err := NewGetOrderQuery("cn 12345", userID)
//	if err != nil {
//	    return err
//	}
//
//	card, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // reply "not found"
//	}
type GetOrderQuery struct {
	orderID  string
	viewerID int64

	guard guard.ConstructorGuard
}

// NewGetOrderQuery extracts the order id from free text; ids outside the
// canonical pattern are looked up as typed.
func NewGetOrderQuery(rawOrderID string, viewerID int64) (GetOrderQuery, error) {
	orderID := kernel.NormalizeOrderID(rawOrderID)
	if strings.TrimSpace(orderID) == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("order_id")
	}

	return GetOrderQuery{
		orderID:  orderID,
		viewerID: viewerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() string { return q.orderID }
func (q GetOrderQuery) ViewerID() int64 { return q.viewerID }

// ParticipantView is one line of the participants block of the admin card.
type ParticipantView struct {
	Username string
	Paid     bool
}

// GetOrderQueryResponse is the order card read model.
type GetOrderQueryResponse struct {
	ID           string
	ClientName   string
	Phone        string
	Origin       string
	Country      order.Country
	Source       string
	Status       order.Status
	Note         string
	UpdatedAt    time.Time
	Participants []ParticipantView
	Subscribed   bool
}
