// Package services provides domain services of the order tracker that work
// across several records and hold no I/O of their own.
//
// The package includes:
//   - StatusChangeDetector: the pure diff between subscriptions and order
//     statuses that drives change notifications
//   - DeliveryReport / BatchReport: per-recipient outcomes of a fan-out
//   - the fixed texts of status notifications and payment reminders
//
// The application layer loads records, calls these services and persists the
// result; nothing here reads or writes tables.
package services
