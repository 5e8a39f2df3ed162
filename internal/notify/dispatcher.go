package notify

import (
	"context"

	"github.com/travelnote/travelnote/internal/logger"
)

// LogDispatcher is a [Dispatcher] that writes due alerts to the structured
// log. It stands in for a real push channel; swapping in one later only
// requires another Dispatcher implementation.
type LogDispatcher struct {
	logger *logger.Logger
}

// NewLogDispatcher constructs a [LogDispatcher].
func NewLogDispatcher(logger *logger.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Deliver logs the alert at info level.
func (d *LogDispatcher) Deliver(_ context.Context, alert Alert) {
	d.logger.Info().
		Str("func", "LogDispatcher.Deliver").
		Int64("note_id", alert.NoteID).
		Str("title", alert.Title).
		Str("body", alert.Body).
		Msg("notification delivered")
}
