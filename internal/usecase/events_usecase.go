package usecase

import (
	"context"
	"fmt"
	"log"

	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/domain/repository"
)

// EventsUsecase serves community events from a primary source, falling back
// to a built-in programme when the primary is unavailable. The fallback is
// explicit so callers always get a schedule, just possibly a generic one.
type EventsUsecase struct {
	primary  repository.EventsRepository
	fallback repository.EventsRepository
}

func NewEventsUsecase(primary, fallback repository.EventsRepository) *EventsUsecase {
	return &EventsUsecase{
		primary:  primary,
		fallback: fallback,
	}
}

const defaultEventsLimit = 10

func (u *EventsUsecase) GetFeaturedEvents(ctx context.Context, limit int) ([]model.PortugueseEvent, error) {
	if limit <= 0 {
		limit = defaultEventsLimit
	}

	events, err := u.primary.ListFeatured(ctx, limit)
	if err != nil {
		log.Printf("warning: featured events source unavailable, serving fallback programme: %v", err)
		events, err = u.fallback.ListFeatured(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to load featured events: %w", err)
		}
	}
	return events, nil
}

func (u *EventsUsecase) GetUpcomingEvents(ctx context.Context, filters model.EventFilters) ([]model.PortugueseEvent, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultEventsLimit
	}

	events, err := u.primary.ListUpcoming(ctx, filters)
	if err != nil {
		log.Printf("warning: upcoming events source unavailable, serving fallback programme: %v", err)
		events, err = u.fallback.ListUpcoming(ctx, filters)
		if err != nil {
			return nil, fmt.Errorf("failed to load upcoming events: %w", err)
		}
	}
	return events, nil
}
