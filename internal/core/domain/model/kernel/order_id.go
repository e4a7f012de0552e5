package kernel

import (
	"regexp"
	"strings"
)

// orderIDPattern accepts a 1-3 letter prefix (Latin or Cyrillic), an optional
// separator and at least three digits, anywhere in the input.
var orderIDPattern = regexp.MustCompile(`(?i)([A-ZА-ЯЁ]{1,3})[ \-–—]?\s?(\d{3,})`)

// canonicalOrderIDPattern matches the stored form PREFIX-DIGITS.
var canonicalOrderIDPattern = regexp.MustCompile(`^[A-ZА-ЯЁ]{1,3}-\d{3,}$`)

// ExtractOrderID finds the first order identifier in free text and returns it
// in canonical form (upper-cased prefix, a single dash, digits).
//
// Examples:
//
//	ExtractOrderID("cn 12345")          // "CN-12345", true
//	ExtractOrderID("заказ КР—00077 ok") // "КР-00077", true
//	ExtractOrderID("CN-12345")          // "CN-12345", true (idempotent)
//	ExtractOrderID("hello")             // "", false
func ExtractOrderID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	m := orderIDPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}

	return strings.ToUpper(m[1]) + "-" + m[2], true
}

// NormalizeOrderID returns the canonical id when one can be extracted and the
// trimmed input otherwise, so lookups still work for ids outside the pattern.
func NormalizeOrderID(s string) string {
	if id, ok := ExtractOrderID(s); ok {
		return id
	}
	return strings.TrimSpace(s)
}

// IsCanonicalOrderID reports whether s is already in PREFIX-DIGITS form.
func IsCanonicalOrderID(s string) bool {
	return canonicalOrderIDPattern.MatchString(s)
}
