package notify

import "errors"

var (
	// ErrSchedulingFailed is returned when a notification cannot be booked,
	// e.g. the fire instant is not in the future or the scheduler is stopped.
	ErrSchedulingFailed = errors.New("failed to schedule notification")

	// ErrHandleNotFound is returned by Cancel for an unknown handle. The
	// usual cause is a notification that has already fired.
	ErrHandleNotFound = errors.New("notification handle not found")
)
