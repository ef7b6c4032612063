package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lusotown-backend/internal/domain/model"
)

type fakeEventsRepo struct {
	featured []model.PortugueseEvent
	upcoming []model.PortugueseEvent
	err      error
	calls    int
}

func (f *fakeEventsRepo) ListFeatured(ctx context.Context, limit int) ([]model.PortugueseEvent, error) {
	f.calls++
	return f.featured, f.err
}

func (f *fakeEventsRepo) ListUpcoming(ctx context.Context, filters model.EventFilters) ([]model.PortugueseEvent, error) {
	f.calls++
	return f.upcoming, f.err
}

func TestGetFeaturedEvents_PrefersPrimary(t *testing.T) {
	primary := &fakeEventsRepo{featured: []model.PortugueseEvent{{ID: "live-1"}}}
	fallback := &fakeEventsRepo{featured: []model.PortugueseEvent{{ID: "static-1"}}}
	u := NewEventsUsecase(primary, fallback)

	events, err := u.GetFeaturedEvents(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "live-1", events[0].ID)
	assert.Equal(t, 0, fallback.calls)
}

func TestGetFeaturedEvents_FallsBackWhenPrimaryFails(t *testing.T) {
	primary := &fakeEventsRepo{err: errors.New("connection refused")}
	fallback := &fakeEventsRepo{featured: []model.PortugueseEvent{{ID: "static-1"}}}
	u := NewEventsUsecase(primary, fallback)

	events, err := u.GetFeaturedEvents(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "static-1", events[0].ID)
}

func TestGetUpcomingEvents_ErrorWhenBothSourcesFail(t *testing.T) {
	primary := &fakeEventsRepo{err: errors.New("connection refused")}
	fallback := &fakeEventsRepo{err: errors.New("no dataset")}
	u := NewEventsUsecase(primary, fallback)

	_, err := u.GetUpcomingEvents(context.Background(), model.EventFilters{})
	assert.Error(t, err)
}
