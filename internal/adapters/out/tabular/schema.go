package tabular

import (
	"strconv"
	"strings"
	"time"

	"tracker/internal/core/ports"
)

// Column names shared by more than one table.
const (
	ColOrderID   = "order_id"
	ColUserID    = "user_id"
	ColUsername  = "username"
	ColStatus    = "status"
	ColCreatedAt = "created_at"
	ColUpdatedAt = "updated_at"
)

var (
	OrdersTable = ports.Table{
		Name:   "orders",
		Header: []string{ColOrderID, "client_name", "phone", "origin", ColStatus, "note", "country", ColUpdatedAt},
	}

	AddressesTable = ports.Table{
		Name: "addresses",
		Header: []string{
			ColUserID, ColUsername, "full_name", "phone", "city", "address", "postcode", ColCreatedAt, ColUpdatedAt,
		},
	}

	SubscriptionsTable = ports.Table{
		Name:   "subscriptions",
		Header: []string{ColUserID, ColOrderID, "last_sent_status", ColCreatedAt, ColUpdatedAt},
	}

	ParticipantsTable = ports.Table{
		Name:   "participants",
		Header: []string{ColOrderID, ColUsername, "paid", "qty", ColUpdatedAt},
	}
)

// Tables returns every table the tracker uses, in creation order.
func Tables() []ports.Table {
	return []ports.Table{OrdersTable, AddressesTable, SubscriptionsTable, ParticipantsTable}
}

// Cell returns the trimmed value of column, or "" when the row predates the column.
func Cell(r ports.Row, column string) string {
	return strings.TrimSpace(r[column])
}

// FormatTime renders timestamps as RFC 3339 in UTC.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// timeLayouts covers the formats found in hand-edited and legacy sheets.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a timestamp cell; unparsable or empty cells yield the zero time.
func ParseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ParseInt64 parses an integer cell. Spreadsheets may render ids as floats ("42.0").
func ParseInt64(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int64(f)) {
		return int64(f), true
	}
	return 0, false
}

func FormatInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}
