package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelnote/travelnote/internal/mock"
	"github.com/travelnote/travelnote/models"
	"go.uber.org/mock/gomock"
)

func TestUpdateNote_RegeocodesChangedLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	newLat, newLon := -8.5069, 115.2625

	notes := &fullNoteRepoMock{
		noteRepoMock: noteRepoMock{
			getNoteFunc: func(_ context.Context, noteID, userID int64) (models.Note, error) {
				lat, lon := -8.3405, 115.0920
				return models.Note{
					ID:          noteID,
					UserID:      userID,
					Title:       "Bali",
					Description: "first day",
					ImagePath:   "/img/bali.jpg",
					Latitude:    &lat,
					Longitude:   &lon,
					Address:     "old address",
				}, nil
			},
		},
		updateNoteFunc: func(_ context.Context, note models.Note) error {
			assert.Equal(t, "Jl. Raya Ubud", note.Address)
			return nil
		},
	}

	geocoder := mock.NewMockGeocoder(ctrl)
	geocoder.EXPECT().
		ReverseGeocode(gomock.Any(), newLat, newLon).
		Return("Jl. Raya Ubud", nil)

	svc := newTestNoteService(notes, jakartaUser(), geocoder)

	updated, err := svc.UpdateNote(context.Background(), testSession, 1, models.UpdateNoteRequest{
		Latitude:  &newLat,
		Longitude: &newLon,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jl. Raya Ubud", updated.Address)
}

func TestUpdateNote_UnchangedLocationSkipsGeocoder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	newTitle := "Kuta"
	notes := &fullNoteRepoMock{
		noteRepoMock: noteRepoMock{
			getNoteFunc: func(_ context.Context, noteID, userID int64) (models.Note, error) {
				return models.Note{
					ID:          noteID,
					UserID:      userID,
					Title:       "Bali",
					Description: "first day",
					ImagePath:   "/img/bali.jpg",
					Address:     "kept",
				}, nil
			},
		},
		updateNoteFunc: func(_ context.Context, _ models.Note) error {
			return nil
		},
	}

	// no EXPECT: any geocoder call fails the test
	geocoder := mock.NewMockGeocoder(ctrl)

	svc := newTestNoteService(notes, jakartaUser(), geocoder)

	updated, err := svc.UpdateNote(context.Background(), testSession, 1, models.UpdateNoteRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, "kept", updated.Address)
	assert.Equal(t, "Kuta", updated.Title)
}
