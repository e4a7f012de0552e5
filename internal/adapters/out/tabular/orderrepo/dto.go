// Package orderrepo stores orders in the orders table and maps rows to the
// order domain record.
package orderrepo

import (
	"tracker/internal/adapters/out/tabular"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"
)

// fromDomain converts an order to a table row.
func fromDomain(o *order.Order) ports.Row {
	s := o.Snapshot()
	return ports.Row{
		tabular.ColOrderID:   s.ID,
		"client_name":        s.ClientName,
		"phone":              s.Phone,
		"origin":             s.Origin,
		tabular.ColStatus:    s.Status.String(),
		"note":               s.Note,
		"country":            s.Country.String(),
		tabular.ColUpdatedAt: tabular.FormatTime(s.UpdatedAt),
	}
}

// toDomain restores an order from a row. Columns added after the row was
// written decode to their zero values.
func toDomain(r ports.Row) (*order.Order, error) {
	return order.RestoreOrder(order.Snapshot{
		ID:         tabular.Cell(r, tabular.ColOrderID),
		ClientName: tabular.Cell(r, "client_name"),
		Phone:      tabular.Cell(r, "phone"),
		Origin:     tabular.Cell(r, "origin"),
		Country:    order.Country(tabular.Cell(r, "country")),
		Status:     order.Status(tabular.Cell(r, tabular.ColStatus)),
		Note:       tabular.Cell(r, "note"),
		UpdatedAt:  tabular.ParseTime(r[tabular.ColUpdatedAt]),
	})
}
