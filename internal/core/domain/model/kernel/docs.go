// Package kernel holds the shared value rules of the order tracker domain:
// canonical order identifiers, username normalization and mention parsing,
// and Unicode-aware key comparison.
//
// Every table in the tracker is scanned in full and matched on human-entered
// keys, so all key comparisons go through the helpers in this package instead
// of ad-hoc string handling at call sites.
package kernel
