package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelnote/travelnote/internal/logger"
)

// chanDispatcher forwards delivered alerts to a channel so tests can wait on
// them.
type chanDispatcher struct {
	delivered chan Alert
}

func newChanDispatcher() *chanDispatcher {
	return &chanDispatcher{delivered: make(chan Alert, 8)}
}

func (d *chanDispatcher) Deliver(_ context.Context, alert Alert) {
	d.delivered <- alert
}

func TestSchedule_DeliversAtFireInstant(t *testing.T) {
	dispatcher := newChanDispatcher()
	scheduler := NewTimerScheduler(dispatcher, logger.Nop())
	defer scheduler.Stop()

	alert := Alert{NoteID: 5, Title: "Bali day one", Body: "Time to journal"}
	handle, err := scheduler.Schedule(context.Background(), time.Now().Add(20*time.Millisecond), alert)
	require.NoError(t, err)
	assert.NotEmpty(t, handle)

	select {
	case got := <-dispatcher.delivered:
		assert.Equal(t, alert, got)
	case <-time.After(2 * time.Second):
		t.Fatal("alert was never delivered")
	}
}

func TestSchedule_RejectsPastInstant(t *testing.T) {
	scheduler := NewTimerScheduler(newChanDispatcher(), logger.Nop())
	defer scheduler.Stop()

	_, err := scheduler.Schedule(context.Background(), time.Now().Add(-time.Minute), Alert{NoteID: 1})
	require.ErrorIs(t, err, ErrSchedulingFailed)

	_, err = scheduler.Schedule(context.Background(), time.Now(), Alert{NoteID: 1})
	require.ErrorIs(t, err, ErrSchedulingFailed)
}

func TestCancel_StopsDelivery(t *testing.T) {
	dispatcher := newChanDispatcher()
	scheduler := NewTimerScheduler(dispatcher, logger.Nop())
	defer scheduler.Stop()

	handle, err := scheduler.Schedule(context.Background(), time.Now().Add(50*time.Millisecond), Alert{NoteID: 5})
	require.NoError(t, err)

	require.NoError(t, scheduler.Cancel(context.Background(), handle))

	select {
	case <-dispatcher.delivered:
		t.Fatal("cancelled alert must not be delivered")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestCancel_UnknownHandle(t *testing.T) {
	scheduler := NewTimerScheduler(newChanDispatcher(), logger.Nop())
	defer scheduler.Stop()

	err := scheduler.Cancel(context.Background(), "no-such-handle")
	require.ErrorIs(t, err, ErrHandleNotFound)
}

func TestCancel_AfterFire(t *testing.T) {
	dispatcher := newChanDispatcher()
	scheduler := NewTimerScheduler(dispatcher, logger.Nop())
	defer scheduler.Stop()

	handle, err := scheduler.Schedule(context.Background(), time.Now().Add(10*time.Millisecond), Alert{NoteID: 5})
	require.NoError(t, err)

	select {
	case <-dispatcher.delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("alert was never delivered")
	}

	// handle is forgotten once the alert fires
	err = scheduler.Cancel(context.Background(), handle)
	require.ErrorIs(t, err, ErrHandleNotFound)
}

func TestStop_CancelsPendingAndRejectsNew(t *testing.T) {
	dispatcher := newChanDispatcher()
	scheduler := NewTimerScheduler(dispatcher, logger.Nop())

	_, err := scheduler.Schedule(context.Background(), time.Now().Add(time.Hour), Alert{NoteID: 5})
	require.NoError(t, err)

	scheduler.Stop()

	_, err = scheduler.Schedule(context.Background(), time.Now().Add(time.Hour), Alert{NoteID: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchedulingFailed))
}

func TestSchedule_HandlesAreUnique(t *testing.T) {
	scheduler := NewTimerScheduler(newChanDispatcher(), logger.Nop())
	defer scheduler.Stop()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		handle, err := scheduler.Schedule(context.Background(), time.Now().Add(time.Hour), Alert{NoteID: 1})
		require.NoError(t, err)
		assert.False(t, seen[handle], "duplicate handle %s", handle)
		seen[handle] = true
	}
}
