package errs

import "errors"

// Sentinel errors shared by the notification subsystem.
var (
	// Repository errors
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrWriteRejected      = errors.New("write rejected")

	// Channel errors
	ErrChannelDisconnected = errors.New("channel disconnected")

	// Notifier errors (never surfaced past the notifier)
	ErrNotifierUnavailable = errors.New("notifier unavailable")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidNotification  = errors.New("invalid notification")

	// Session errors
	ErrNoActiveSession = errors.New("no active session")
	ErrSessionClosed   = errors.New("session closed")
)
