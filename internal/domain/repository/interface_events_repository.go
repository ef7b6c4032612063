package repository

import (
	"context"

	"lusotown-backend/internal/domain/model"
)

// EventsRepository a source of community events. Implemented by the Supabase
// events table (primary) and a static local dataset (fallback).
type EventsRepository interface {
	// ListFeatured returns up to limit active featured events that have not
	// ended yet, soonest first.
	ListFeatured(ctx context.Context, limit int) ([]model.PortugueseEvent, error)

	// ListUpcoming returns active events starting in the future, filtered and
	// paginated, soonest first.
	ListUpcoming(ctx context.Context, filters model.EventFilters) ([]model.PortugueseEvent, error)
}
