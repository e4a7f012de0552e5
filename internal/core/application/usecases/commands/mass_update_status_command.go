package commands

import (
	"errors"
	"strings"
	"unicode"

	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var (
	ErrMassUpdateStatusCommandIsNotConstructed = errors.New(
		"MassUpdateStatusCommand must be created via NewMassUpdateStatusCommand constructor",
	)
)

// MassUpdateStatusCommand applies one catalog status to a free-form list of order ids.
//
// Example:
//
//	cmd, _ := NewMassUpdateStatusCommand("доставлен", "CN-1001, cn1002\nKR-077")
//	cmd.Tokens() // ["CN-1001", "cn1002", "KR-077"]
type MassUpdateStatusCommand struct { //nolint:recvcheck //using for validation
	status order.Status
	tokens []string

	guard guard.ConstructorGuard
}

// NewMassUpdateStatusCommand splits rawIDs on whitespace and commas.
func NewMassUpdateStatusCommand(status order.Status, rawIDs string) (MassUpdateStatusCommand, error) {
	parsed, err := order.ParseStatus(string(status))
	if err != nil {
		return MassUpdateStatusCommand{}, err
	}

	tokens := strings.FieldsFunc(rawIDs, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	if len(tokens) == 0 {
		return MassUpdateStatusCommand{}, errs.NewValueIsRequiredError("order_ids")
	}

	return MassUpdateStatusCommand{
		status: parsed,
		tokens: tokens,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c MassUpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrMassUpdateStatusCommandIsNotConstructed)
}

func (c MassUpdateStatusCommand) Status() order.Status { return c.status }

// Tokens returns the raw identifiers in input order.
func (c MassUpdateStatusCommand) Tokens() []string {
	return append([]string(nil), c.tokens...)
}
