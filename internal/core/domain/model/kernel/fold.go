package kernel

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldKey returns the Unicode case-folded, trimmed form of a human-entered key.
// A Caser is stateful, so a fresh one is built per call.
func FoldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// SameKey compares two human-entered keys case-insensitively.
func SameKey(a, b string) bool {
	return FoldKey(a) == FoldKey(b)
}
