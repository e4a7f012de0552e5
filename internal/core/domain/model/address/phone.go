package address

import (
	"fmt"
	"regexp"
	"strings"

	"tracker/internal/pkg/errs"
)

var (
	phonePattern    = regexp.MustCompile(`^8\d{10}$`)
	postcodePattern = regexp.MustCompile(`^\d{5,6}$`)
)

// NormalizePhone strips spaces and dashes, rewrites a +7 or 7 prefix to 8 and
// requires 11 digits starting with 8.
//
// Examples:
//
//	NormalizePhone("+7 701 123-45-67") // "87011234567", nil
//	NormalizePhone("77011234567")      // "87011234567", nil
//	NormalizePhone("12345")            // "", ValueIsInvalidError
func NormalizePhone(raw string) (string, error) {
	p := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
	if p == "" {
		return "", errs.NewValueIsRequiredError("phone")
	}

	switch {
	case strings.HasPrefix(p, "+7"):
		p = "8" + p[2:]
	case strings.HasPrefix(p, "7"):
		p = "8" + p[1:]
	}

	if !phonePattern.MatchString(p) {
		return "", errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%q must be 11 digits starting with 8", raw))
	}
	return p, nil
}

// ValidatePostcode accepts 5 or 6 digits.
func ValidatePostcode(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", errs.NewValueIsRequiredError("postcode")
	}
	if !postcodePattern.MatchString(p) {
		return "", errs.NewValueIsInvalidErrorWithCause("postcode", fmt.Errorf("%q must be 5 or 6 digits", raw))
	}
	return p, nil
}
