package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lusotown-backend/internal/domain/model"
)

func staticEventsAt(t time.Time) *StaticEventsRepository {
	return NewStaticEventsRepositoryWithClock(func() time.Time { return t }).(*StaticEventsRepository)
}

func TestStaticEvents_ListFeatured(t *testing.T) {
	repo := staticEventsAt(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	events, err := repo.ListFeatured(context.Background(), 10)
	require.NoError(t, err)

	require.NotEmpty(t, events)
	for _, event := range events {
		assert.True(t, event.IsFeatured)
		assert.Equal(t, model.EventActive, event.Status)
	}
}

func TestStaticEvents_ListUpcomingFilters(t *testing.T) {
	repo := staticEventsAt(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	events, err := repo.ListUpcoming(context.Background(), model.EventFilters{CulturalCategory: "music"})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "static-fado-night", events[0].ID)

	free, err := repo.ListUpcoming(context.Background(), model.EventFilters{PriceMax: 0.01})
	require.NoError(t, err)
	for _, event := range free {
		assert.LessOrEqual(t, event.Price, 0.01)
	}
}

func TestStaticEvents_SortedSoonestFirst(t *testing.T) {
	repo := staticEventsAt(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	events, err := repo.ListUpcoming(context.Background(), model.EventFilters{})
	require.NoError(t, err)

	require.True(t, len(events) >= 2)
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].StartDatetime, events[i].StartDatetime)
	}
}
