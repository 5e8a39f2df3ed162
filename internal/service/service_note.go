package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/travelnote/travelnote/internal/adapter"
	"github.com/travelnote/travelnote/internal/config"
	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/store"
	"github.com/travelnote/travelnote/models"
)

// noteService is the concrete implementation of NoteService. It validates
// incoming note data, enriches located notes with a reverse-geocoded address,
// and delegates persistence to the NoteRepository.
type noteService struct {
	noteRepository store.NoteRepository
	userRepository store.UserRepository
	geocoder       adapter.Geocoder

	// defaultTimezone stamps notes of users whose account has no zone set.
	defaultTimezone string

	logger *logger.Logger
}

// NewNoteService constructs a NoteService wired to the given repositories and
// geocoder.
func NewNoteService(noteRepository store.NoteRepository, userRepository store.UserRepository, geocoder adapter.Geocoder, cfg config.App, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository:  noteRepository,
		userRepository:  userRepository,
		geocoder:        geocoder,
		defaultTimezone: cfg.DefaultTimezone,
		logger:          logger,
	}
}

// CreateNote validates and persists a new journal entry for the session user.
//
// A note with coordinates but no address is enriched through the geocoder;
// a geocoding failure degrades to an empty address rather than failing the
// whole creation. The note is stamped with the user's stored timezone, or
// the configured default when the account has none.
//
// Returns ErrInvalidDataProvided when the title is empty or too long, the
// description or image path is empty, or only one coordinate is supplied.
func (n *noteService) CreateNote(ctx context.Context, session models.Session, request models.CreateNoteRequest) (models.Note, error) {
	log := logger.FromContext(ctx)

	note := models.Note{
		UserID:      session.UserID,
		Title:       request.Title,
		Description: request.Description,
		ImagePath:   request.ImagePath,
		Latitude:    request.Latitude,
		Longitude:   request.Longitude,
		Address:     request.Address,
		CreatedAt:   time.Now().UTC(),
	}

	if err := validateNote(note); err != nil {
		log.Error().Int64("user_id", session.UserID).Str("title", request.Title).Msg("invalid note data provided")
		return models.Note{}, err
	}

	note.CreatedTimezone = n.resolveTimezone(ctx, session.UserID)

	if note.HasLocation() && note.Address == "" {
		note.Address = n.lookupAddress(ctx, *note.Latitude, *note.Longitude)
	}

	createdNote, err := n.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Int64("user_id", session.UserID).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return createdNote, nil
}

// GetNote retrieves a single note owned by the session user.
func (n *noteService) GetNote(ctx context.Context, session models.Session, noteID int64) (models.Note, error) {
	note, err := n.noteRepository.GetNote(ctx, noteID, session.UserID)
	if err != nil {
		return models.Note{}, fmt.Errorf("note lookup failed: %w", err)
	}

	return note, nil
}

// ListNotes retrieves the session user's notes matching the filter, newest
// first.
func (n *noteService) ListNotes(ctx context.Context, session models.Session, filter models.NoteFilter) ([]models.Note, error) {
	notes, err := n.noteRepository.ListNotes(ctx, session.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("note listing failed: %w", err)
	}

	return notes, nil
}

// UpdateNote applies the non-nil fields of the request to an existing note
// and persists the result. When the location changes, the timezone stamp is
// refreshed and, unless the request carries an explicit address, the address
// is re-resolved through the geocoder.
func (n *noteService) UpdateNote(ctx context.Context, session models.Session, noteID int64, request models.UpdateNoteRequest) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := n.noteRepository.GetNote(ctx, noteID, session.UserID)
	if err != nil {
		return models.Note{}, fmt.Errorf("note lookup failed: %w", err)
	}

	locationChanged := request.Latitude != nil || request.Longitude != nil

	if request.Title != nil {
		note.Title = *request.Title
	}
	if request.Description != nil {
		note.Description = *request.Description
	}
	if request.ImagePath != nil {
		note.ImagePath = *request.ImagePath
	}
	if request.Latitude != nil {
		note.Latitude = request.Latitude
	}
	if request.Longitude != nil {
		note.Longitude = request.Longitude
	}
	if request.Address != nil {
		note.Address = *request.Address
	}

	if err = validateNote(note); err != nil {
		log.Error().Int64("note_id", noteID).Msg("invalid note data provided")
		return models.Note{}, err
	}

	if locationChanged {
		note.CreatedTimezone = n.resolveTimezone(ctx, session.UserID)
		if request.Address == nil {
			note.Address = n.lookupAddress(ctx, *note.Latitude, *note.Longitude)
		}
	}

	if err = n.noteRepository.UpdateNote(ctx, note); err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note update ended with error")
		return models.Note{}, fmt.Errorf("note update ended with error: %w", err)
	}

	return note, nil
}

// UpdateSteps overwrites the step total of a note.
//
// Returns ErrInvalidDataProvided for a negative step count.
func (n *noteService) UpdateSteps(ctx context.Context, session models.Session, noteID, stepCount int64) error {
	log := logger.FromContext(ctx)

	if stepCount < 0 {
		log.Error().Int64("note_id", noteID).Int64("step_count", stepCount).Msg("negative step count provided")
		return ErrInvalidDataProvided
	}

	if err := n.noteRepository.UpdateStepCount(ctx, noteID, session.UserID, stepCount); err != nil {
		return fmt.Errorf("step count update failed: %w", err)
	}

	return nil
}

// resolveTimezone returns the user's stored zone, falling back to the
// configured default when the account has none or the lookup fails.
func (n *noteService) resolveTimezone(ctx context.Context, userID int64) string {
	user, err := n.userRepository.GetUserByID(ctx, userID)
	if err != nil || user.Timezone == "" {
		return n.defaultTimezone
	}

	return user.Timezone
}

// lookupAddress resolves coordinates to an address, degrading to an empty
// string on any geocoder failure. Location notes stay usable without an
// address.
func (n *noteService) lookupAddress(ctx context.Context, latitude, longitude float64) string {
	log := logger.FromContext(ctx)

	address, err := n.geocoder.ReverseGeocode(ctx, latitude, longitude)
	if err != nil {
		log.Warn().
			Err(err).
			Float64("lat", latitude).
			Float64("lng", longitude).
			Msg("reverse geocoding failed, leaving address empty")
		return ""
	}

	return address
}

// validateNote enforces the invariants shared by create and update: a
// non-empty title of at most models.TitleMaxLength characters, a non-empty
// description and image path, and either both coordinates or neither.
func validateNote(note models.Note) error {
	if note.Title == "" || utf8.RuneCountInString(note.Title) > models.TitleMaxLength {
		return ErrInvalidDataProvided
	}
	if note.Description == "" || note.ImagePath == "" {
		return ErrInvalidDataProvided
	}
	if (note.Latitude == nil) != (note.Longitude == nil) {
		return ErrInvalidDataProvided
	}

	return nil
}
