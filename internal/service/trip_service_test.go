package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"github.com/wayfarerhq/wayfarer-api/internal/platform/itinerary"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func generateTripRequest() *dto.GenerateTripRequest {
	return &dto.GenerateTripRequest{
		Destination: "Lisbon",
		StartDate:   "2026-09-10",
		EndDate:     "2026-09-13",
		Interests:   []string{"food", "history"},
	}
}

func TestTripGenerate_ForwardsParsedRequest(t *testing.T) {
	gen := &fakeGenerator{plan: &itinerary.Plan{
		Destination: "Lisbon",
		Days:        []itinerary.Day{{Day: 1, Title: "Alfama", Activities: []string{"walk"}}},
	}}
	svc := NewTripService(newFakeTripRepo(), gen, zap.NewNop())

	plan, err := svc.Generate(context.Background(), generateTripRequest())
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", plan.Destination)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), gen.last.StartDate)
	assert.Equal(t, []string{"food", "history"}, gen.last.Interests)
}

func TestTripGenerate_BadDates(t *testing.T) {
	svc := NewTripService(newFakeTripRepo(), &fakeGenerator{}, zap.NewNop())

	req := generateTripRequest()
	req.StartDate = "10/09/2026"
	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	req = generateTripRequest()
	req.EndDate = "2026-09-01"
	_, err = svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestTripSaveListGetDelete_OwnerScoped(t *testing.T) {
	trips := newFakeTripRepo()
	svc := NewTripService(trips, &fakeGenerator{}, zap.NewNop())

	owner := primitive.NewObjectID().Hex()
	stranger := primitive.NewObjectID().Hex()

	saved, err := svc.Save(context.Background(), owner, &dto.SaveTripRequest{
		Destination: "Lisbon",
		StartDate:   "2026-09-10",
		EndDate:     "2026-09-13",
		Days:        []dto.TripDayData{{Day: 1, Title: "Alfama", Activities: []string{"walk"}}},
		Notes:       "pack light",
	})
	require.NoError(t, err)
	assert.Equal(t, "pack light", saved.Notes)
	require.Len(t, saved.Days, 1)

	listed, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	// A stranger sees neither the list entry nor the document.
	empty, err := svc.List(context.Background(), stranger)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.Get(context.Background(), saved.ID.Hex(), stranger)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = svc.Delete(context.Background(), saved.ID.Hex(), stranger)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	require.NoError(t, svc.Delete(context.Background(), saved.ID.Hex(), owner))

	_, err = svc.Get(context.Background(), saved.ID.Hex(), owner)
	require.Error(t, err)
}
