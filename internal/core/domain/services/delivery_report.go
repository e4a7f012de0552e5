package services

import (
	"context"
	"errors"

	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

// DeliveryLine is the outcome of one send. Failure is empty on success.
type DeliveryLine struct {
	UserID   int64
	Username string
	Failure  ports.DeliveryFailure
}

func (l DeliveryLine) OK() bool {
	return l.Failure == ""
}

// DeliveryReport aggregates the sends of one order.
type DeliveryReport struct {
	OrderID string
	Lines   []DeliveryLine

	// Unresolved lists usernames without a registered address.
	Unresolved []string
}

// Record appends the outcome of sending to userID; err is classified with ClassifyDeliveryError.
func (r *DeliveryReport) Record(userID int64, username string, err error) {
	line := DeliveryLine{UserID: userID, Username: username}
	if err != nil {
		line.Failure = ClassifyDeliveryError(err)
	}
	r.Lines = append(r.Lines, line)
}

func (r *DeliveryReport) Sent() int {
	n := 0
	for _, l := range r.Lines {
		if l.OK() {
			n++
		}
	}
	return n
}

func (r *DeliveryReport) Failed() int {
	return len(r.Lines) - r.Sent()
}

// Total counts the recipients that were targeted.
func (r *DeliveryReport) Total() int {
	return len(r.Lines)
}

// BatchReport is the nested report of a reminder run over several orders.
type BatchReport struct {
	Orders []DeliveryReport
}

func (b *BatchReport) Add(r DeliveryReport) {
	b.Orders = append(b.Orders, r)
}

func (b *BatchReport) Sent() int {
	n := 0
	for i := range b.Orders {
		n += b.Orders[i].Sent()
	}
	return n
}

func (b *BatchReport) Failed() int {
	n := 0
	for i := range b.Orders {
		n += b.Orders[i].Failed()
	}
	return n
}

// ClassifyDeliveryError maps a send error to its short reason code.
func ClassifyDeliveryError(err error) ports.DeliveryFailure {
	var delivery *errs.DeliveryFailedError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &delivery) && delivery.Reason != "":
		return ports.DeliveryFailure(delivery.Reason)
	case errors.Is(err, context.DeadlineExceeded):
		return ports.FailureTimeout
	default:
		return ports.FailureOther
	}
}
