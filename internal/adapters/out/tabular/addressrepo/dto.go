// Package addressrepo stores delivery addresses in the addresses table.
package addressrepo

import (
	"tracker/internal/adapters/out/tabular"
	"tracker/internal/core/domain/model/address"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

func fromDomain(a *address.Address) ports.Row {
	s := a.Snapshot()
	return ports.Row{
		tabular.ColUserID:    tabular.FormatInt64(s.UserID),
		tabular.ColUsername:  s.Username,
		"full_name":          s.FullName,
		"phone":              s.Phone,
		"city":               s.City,
		"address":            s.Street,
		"postcode":           s.Postcode,
		tabular.ColCreatedAt: tabular.FormatTime(s.CreatedAt),
		tabular.ColUpdatedAt: tabular.FormatTime(s.UpdatedAt),
	}
}

func toDomain(r ports.Row) (*address.Address, error) {
	userID, ok := tabular.ParseInt64(r[tabular.ColUserID])
	if !ok {
		return nil, errs.NewValueIsInvalidError(tabular.ColUserID)
	}

	return address.RestoreAddress(address.Snapshot{
		UserID:    userID,
		Username:  tabular.Cell(r, tabular.ColUsername),
		FullName:  tabular.Cell(r, "full_name"),
		Phone:     tabular.Cell(r, "phone"),
		City:      tabular.Cell(r, "city"),
		Street:    tabular.Cell(r, "address"),
		Postcode:  tabular.Cell(r, "postcode"),
		CreatedAt: tabular.ParseTime(r[tabular.ColCreatedAt]),
		UpdatedAt: tabular.ParseTime(r[tabular.ColUpdatedAt]),
	})
}

func rowUserID(r ports.Row) int64 {
	id, _ := tabular.ParseInt64(r[tabular.ColUserID])
	return id
}
