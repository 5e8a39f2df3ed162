package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/travelnote/travelnote/internal/logger"
)

// TimerScheduler is an in-process [Scheduler] built on [time.AfterFunc]. Each
// booked alert holds a timer keyed by a generated UUID handle; when the timer
// fires, the alert is handed to the configured [Dispatcher] and the handle is
// forgotten.
//
// Timers live in memory only, so they do not survive a restart. The boot
// rescheduling worker rebuilds them from the reminders table on startup.
type TimerScheduler struct {
	dispatcher Dispatcher
	logger     *logger.Logger

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewTimerScheduler constructs a [TimerScheduler] delivering fired alerts
// through the given dispatcher.
func NewTimerScheduler(dispatcher Dispatcher, logger *logger.Logger) *TimerScheduler {
	return &TimerScheduler{
		dispatcher: dispatcher,
		logger:     logger,
		timers:     make(map[string]*time.Timer),
	}
}

// Schedule books a one-shot alert for the given instant and returns its
// handle. Fails with [ErrSchedulingFailed] if the instant is not strictly in
// the future or the scheduler has been stopped.
func (s *TimerScheduler) Schedule(ctx context.Context, fireAt time.Time, alert Alert) (string, error) {
	log := logger.FromContext(ctx)

	delay := time.Until(fireAt)
	if delay <= 0 {
		log.Warn().
			Str("func", "TimerScheduler.Schedule").
			Time("fire_at", fireAt).
			Int64("note_id", alert.NoteID).
			Msg("fire instant is not in the future")
		return "", fmt.Errorf("%w: fire instant %s is not in the future", ErrSchedulingFailed, fireAt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return "", fmt.Errorf("%w: scheduler is stopped", ErrSchedulingFailed)
	}

	handle := uuid.NewString()
	s.timers[handle] = time.AfterFunc(delay, func() {
		s.fire(handle, alert)
	})

	log.Debug().
		Str("func", "TimerScheduler.Schedule").
		Str("handle", handle).
		Time("fire_at", fireAt).
		Int64("note_id", alert.NoteID).
		Msg("notification scheduled")

	return handle, nil
}

// Cancel revokes a booked alert. Returns [ErrHandleNotFound] when the handle
// is unknown, which usually means the alert has already fired.
func (s *TimerScheduler) Cancel(ctx context.Context, handle string) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	timer, ok := s.timers[handle]
	if ok {
		delete(s.timers, handle)
	}
	s.mu.Unlock()

	if !ok {
		return ErrHandleNotFound
	}

	timer.Stop()

	log.Debug().
		Str("func", "TimerScheduler.Cancel").
		Str("handle", handle).
		Msg("notification cancelled")

	return nil
}

// Stop cancels every pending timer and rejects further Schedule calls. Safe
// to call more than once.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for handle, timer := range s.timers {
		timer.Stop()
		delete(s.timers, handle)
	}
}

// fire runs on the timer goroutine when an alert comes due.
func (s *TimerScheduler) fire(handle string, alert Alert) {
	s.mu.Lock()
	_, pending := s.timers[handle]
	delete(s.timers, handle)
	stopped := s.stopped
	s.mu.Unlock()

	// A Cancel that raced the timer wins: the handle is already gone.
	if !pending || stopped {
		return
	}

	s.logger.Info().
		Str("func", "TimerScheduler.fire").
		Str("handle", handle).
		Int64("note_id", alert.NoteID).
		Msg("notification due")

	s.dispatcher.Deliver(context.Background(), alert)
}
