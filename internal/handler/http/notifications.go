package http

import (
	"encoding/json"
	"net/http"

	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/utils"
	"github.com/travelnote/travelnote/models"
)

// notificationTapped resolves a tapped notification back to its note so the
// client can deep-link into it.
func (h *Handler) notificationTapped(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, found := sessionFromRequest(r)
	if !found {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.NotificationTapRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.ReminderService.NotificationTapped(ctx, session, request.NoteID)
	if err != nil {
		log.Err(err).Int64("note_id", request.NoteID).Msg("notification tap resolution failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) permissionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, found := sessionFromRequest(r)
	if !found {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	status, err := h.services.PermissionService.PermissionStatus(ctx, session)
	if err != nil {
		log.Err(err).Msg("permission status lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.PermissionResponse{Status: status}, http.StatusOK)
}

func (h *Handler) setPermission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, found := sessionFromRequest(r)
	if !found {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.PermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.PermissionService.SetPermission(ctx, session, request.Status); err != nil {
		log.Err(err).Str("status", string(request.Status)).Msg("permission update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.PermissionResponse{Status: request.Status}, http.StatusOK)
}
