// Package participantrepo stores order participants in the participants table.
package participantrepo

import (
	"strconv"

	"tracker/internal/adapters/out/tabular"
	"tracker/internal/core/domain/model/participant"
	"tracker/internal/core/ports"
)

func fromDomain(p *participant.Participant) ports.Row {
	s := p.Snapshot()
	qty := ""
	if s.Qty != nil {
		qty = strconv.Itoa(*s.Qty)
	}
	return ports.Row{
		tabular.ColOrderID:   s.OrderID,
		tabular.ColUsername:  s.Username,
		"paid":               strconv.FormatBool(s.Paid),
		"qty":                qty,
		tabular.ColUpdatedAt: tabular.FormatTime(s.UpdatedAt),
	}
}

func toDomain(r ports.Row) (*participant.Participant, error) {
	var qty *int
	if v, ok := tabular.ParseInt64(r["qty"]); ok {
		q := int(v)
		qty = &q
	}

	return participant.RestoreParticipant(participant.Snapshot{
		OrderID:   tabular.Cell(r, tabular.ColOrderID),
		Username:  tabular.Cell(r, tabular.ColUsername),
		Paid:      participant.ParsePaid(r["paid"]),
		Qty:       qty,
		UpdatedAt: tabular.ParseTime(r[tabular.ColUpdatedAt]),
	})
}

func decodeAll(rows []ports.Row) []*participant.Participant {
	out := make([]*participant.Participant, 0, len(rows))
	for _, r := range rows {
		p, err := toDomain(r)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
