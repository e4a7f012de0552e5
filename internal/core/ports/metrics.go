package ports

import "time"

// Delivery kinds reported to MetricsRecorder.
const (
	KindNotification = "notification"
	KindReminder     = "reminder"
)

// MetricsRecorder receives operational counters from the engines.
type MetricsRecorder interface {
	// SweepCompleted records one change-detection run.
	SweepCompleted(d time.Duration, changes int, err error)

	// DeliveryRecorded records one send of kind; failure is empty on success.
	DeliveryRecorded(kind string, failure DeliveryFailure)
}
