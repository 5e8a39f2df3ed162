package notify

import (
	"context"
	"time"

	"github.com/travelnote/travelnote/models"
)

// Alert is the payload a scheduled notification carries. The NoteID is echoed
// back by the client when the user taps the delivered notification, so the
// app can deep-link to the right note.
type Alert struct {
	NoteID int64
	Title  string
	Body   string
}

// Scheduler books one-shot notifications for future instants. A successful
// Schedule returns an opaque handle that can later be passed to Cancel.
type Scheduler interface {
	// Schedule books an alert for the given instant. The instant must be
	// strictly in the future; otherwise ErrSchedulingFailed is returned.
	Schedule(ctx context.Context, fireAt time.Time, alert Alert) (string, error)

	// Cancel revokes a previously scheduled alert by handle. Returns
	// ErrHandleNotFound when the handle is unknown — typically because the
	// alert already fired.
	Cancel(ctx context.Context, handle string) error
}

// PermissionGate answers whether a user has allowed notifications, and lets
// the app ask for that permission.
type PermissionGate interface {
	// Status reports the stored permission state for a user.
	Status(ctx context.Context, userID int64) (models.PermissionStatus, error)

	// Request asks for notification permission. An undetermined state is
	// promoted to granted; an explicit denial is never overridden here:
	// the user has to flip it through settings.
	Request(ctx context.Context, userID int64) (models.PermissionStatus, error)
}

// Dispatcher delivers a due alert to the user. Implementations may push to a
// device, post to a webhook, or simply log.
type Dispatcher interface {
	Deliver(ctx context.Context, alert Alert)
}
