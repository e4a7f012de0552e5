package order

import (
	"fmt"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

// Status is the human-readable order status stored in the orders table.
// The empty Status means "no status yet" and never triggers a notification.
type Status string

// Unpaid marks an order whose delivery has not been paid for.
const Unpaid Status = "доставка не оплачена"

// catalog is the fixed, ordered list of statuses. Buttons reference statuses
// by index, so entries must only ever be appended.
var catalog = []Status{
	"выкуплен",
	"едет на адрес",
	"приехал на адрес (Китай)",
	"приехал на адрес (Корея)",
	"ожидает отправку в Казахстан",
	"отправлен в Казахстан (из Китая)",
	"отправлен в Казахстан (из Кореи)",
	"приехал к владельцу шопа в Астане",
	"сборка заказа по Казахстану",
	"собран и готов на доставку по Казахстану",
	"отправлен по Казахстану",
	"доставлен",
	"получен",
	Unpaid,
}

// Statuses returns a copy of the status catalog in display order.
func Statuses() []Status {
	out := make([]Status, len(catalog))
	copy(out, catalog)
	return out
}

// ParseStatus matches raw input against the catalog case-insensitively and
// returns the catalog spelling.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return "", errs.NewValueIsRequiredError("status")
	}
	for _, s := range catalog {
		if kernel.SameKey(string(s), raw) {
			return s, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not in the status catalog", raw))
}

// StatusAt returns the catalog entry at idx.
func StatusAt(idx int) (Status, error) {
	if idx < 0 || idx >= len(catalog) {
		return "", errs.NewValueIsOutOfRangeError("status", idx, 0, len(catalog)-1)
	}
	return catalog[idx], nil
}

// IsValid reports whether the status is a catalog entry (case-insensitive).
func (s Status) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// IsEmpty reports whether no status has been set.
func (s Status) IsEmpty() bool {
	return s == ""
}

func (s Status) String() string {
	return string(s)
}
