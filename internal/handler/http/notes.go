package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/utils"
	"github.com/travelnote/travelnote/models"
)

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, found := sessionFromRequest(r)
	if !found {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.CreateNote(ctx, session, request)
	if err != nil {
		log.Err(err).Msg("note creation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
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

	note, err := h.services.NoteService.GetNote(ctx, session, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, found := sessionFromRequest(r)
	if !found {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	filter, err := noteFilterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	notes, err := h.services.NoteService.ListNotes(ctx, session, filter)
	if err != nil {
		log.Err(err).Msg("note listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.NoteListResponse{Notes: notes, Length: len(notes)}, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
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

	var request models.UpdateNoteRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.UpdateNote(ctx, session, noteID, request)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

// deleteNote tears the note down together with its reminders; the reminder
// service owns the cancel-then-cascade sequence.
func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
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

	if err = h.services.ReminderService.DeleteNote(ctx, session, noteID); err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateSteps(w http.ResponseWriter, r *http.Request) {
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

	var request models.UpdateStepsRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err = h.services.NoteService.UpdateSteps(ctx, session, noteID, request.StepCount); err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("step count update failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a chi URL parameter as a positive int64 identifier.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}

// noteFilterFromQuery assembles a note filter from the list endpoint's query
// parameters: search, has_location, limit, offset.
func noteFilterFromQuery(r *http.Request) (models.NoteFilter, error) {
	filter := models.NoteFilter{Search: r.URL.Query().Get("search")}

	if raw := r.URL.Query().Get("has_location"); raw != "" {
		hasLocation, err := strconv.ParseBool(raw)
		if err != nil {
			return models.NoteFilter{}, err
		}
		filter.HasLocation = &hasLocation
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return models.NoteFilter{}, err
		}
		filter.Limit = limit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return models.NoteFilter{}, err
		}
		filter.Offset = offset
	}

	return filter, nil
}
