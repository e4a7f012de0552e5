package order

import (
	"fmt"
	"strings"

	"tracker/internal/pkg/errs"
)

// Country is the warehouse an order ships from.
type Country string

const (
	China Country = "CN"
	Korea Country = "KR"
)

// ParseCountry accepts CN or KR in any case.
func ParseCountry(raw string) (Country, error) {
	switch c := Country(strings.ToUpper(strings.TrimSpace(raw))); c {
	case China, Korea:
		return c, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("country", fmt.Errorf("%q is not CN or KR", raw))
	}
}

func (c Country) String() string {
	return string(c)
}
