package http

import (
	"encoding/json"
	"net/http"

	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/utils"
	"github.com/travelnote/travelnote/models"
)

func (h *Handler) addReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, found := sessionFromRequest(r)
	if !found {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := pathID(r, "noteID")
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	var request models.AddReminderRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if request.ReminderAt.IsZero() {
		http.Error(w, "reminder_at is required", http.StatusBadRequest)
		return
	}

	reminders, err := h.services.ReminderService.AddReminder(ctx, session, noteID, request.ReminderAt)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("reminder creation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.ReminderListResponse{Reminders: reminders, Length: len(reminders)}, http.StatusCreated)
}

func (h *Handler) listReminders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, found := sessionFromRequest(r)
	if !found {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := pathID(r, "noteID")
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	reminders, err := h.services.ReminderService.ListReminders(ctx, session, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("reminder listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.ReminderListResponse{Reminders: reminders, Length: len(reminders)}, http.StatusOK)
}

func (h *Handler) removeReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, found := sessionFromRequest(r)
	if !found {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	reminderID, err := pathID(r, "reminderID")
	if err != nil {
		http.Error(w, "invalid reminder id", http.StatusBadRequest)
		return
	}

	reminders, err := h.services.ReminderService.RemoveReminder(ctx, session, reminderID)
	if err != nil {
		log.Err(err).Int64("reminder_id", reminderID).Msg("reminder removal failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.ReminderListResponse{Reminders: reminders, Length: len(reminders)}, http.StatusOK)
}
