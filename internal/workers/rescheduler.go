package workers

import (
	"context"
	"time"

	"github.com/travelnote/travelnote/internal/config"
	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/notify"
	"github.com/travelnote/travelnote/internal/store"
	"github.com/travelnote/travelnote/models"
)

// BootRescheduler re-arms in-process notification timers after a restart.
//
// Scheduled notifications die with the process, but the reminder rows
// survive. On startup the rescheduler walks every reminder whose instant is
// still in the future and schedules a fresh notification for it, storing the
// new handle. Reminders that cannot be scheduled keep a nil handle so the
// user's list stays truthful.
type BootRescheduler struct {
	reminderRepository store.ReminderRepository
	noteRepository     store.NoteRepository
	scheduler          notify.Scheduler

	timeout time.Duration
	logger  *logger.Logger
}

// NewBootRescheduler constructs a rescheduler over the given repositories
// and scheduler. The pass is bounded by cfg.BootRescheduleTimeout; zero
// means no bound.
func NewBootRescheduler(repositories *store.Repositories, scheduler notify.Scheduler, cfg config.Workers, logger *logger.Logger) *BootRescheduler {
	return &BootRescheduler{
		reminderRepository: repositories.ReminderRepository,
		noteRepository:     repositories.NoteRepository,
		scheduler:          scheduler,
		timeout:            cfg.BootRescheduleTimeout,
		logger:             logger,
	}
}

// Run performs one reschedule pass. Errors on individual reminders are
// logged and skipped; a reminder left behind simply won't fire until the
// next restart.
func (b *BootRescheduler) Run() {
	ctx := context.Background()
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	ctx = b.logger.WithContext(ctx)

	pending, err := b.reminderRepository.ListPending(ctx, time.Now())
	if err != nil {
		b.logger.Err(err).
			Str("func", "BootRescheduler.Run").
			Msg("failed to list pending reminders")
		return
	}

	var rearmed, degraded int
	for _, reminder := range pending {
		if b.reschedule(ctx, reminder) {
			rearmed++
		} else {
			degraded++
		}
	}

	b.logger.Info().
		Int("pending", len(pending)).
		Int("rearmed", rearmed).
		Int("degraded", degraded).
		Msg("boot reschedule pass finished")
}

func (b *BootRescheduler) reschedule(ctx context.Context, reminder models.Reminder) bool {
	log := b.logger

	note, err := b.noteRepository.GetNoteByID(ctx, reminder.NoteID)
	if err != nil {
		log.Err(err).
			Str("func", "BootRescheduler.reschedule").
			Int64("reminder_id", reminder.ID).
			Int64("note_id", reminder.NoteID).
			Msg("note lookup failed, skipping reminder")
		return false
	}

	handle, err := b.scheduler.Schedule(ctx, reminder.ReminderAt, notify.Alert{
		NoteID: note.ID,
		Title:  "Reminder: " + note.Title,
		Body:   note.Description,
	})
	if err != nil {
		log.Warn().
			Err(err).
			Int64("reminder_id", reminder.ID).
			Time("reminder_at", reminder.ReminderAt).
			Msg("rescheduling failed, reminder kept without notification")
		if reminder.NotificationID != nil {
			// stale handle from the previous process
			if updErr := b.reminderRepository.UpdateNotificationID(ctx, reminder.ID, nil); updErr != nil {
				log.Err(updErr).Int64("reminder_id", reminder.ID).Msg("failed to clear stale notification handle")
			}
		}
		return false
	}

	if err = b.reminderRepository.UpdateNotificationID(ctx, reminder.ID, &handle); err != nil {
		log.Err(err).
			Int64("reminder_id", reminder.ID).
			Msg("failed to store new notification handle")
		if cancelErr := b.scheduler.Cancel(ctx, handle); cancelErr != nil {
			log.Debug().Err(cancelErr).Str("notification_id", handle).Msg("orphan cancel failed")
		}
		return false
	}

	return true
}
