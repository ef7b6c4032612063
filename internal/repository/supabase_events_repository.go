package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"lusotown-backend/internal/database"
	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/domain/repository"
)

// SupabaseEventsRepository reads community events from the Supabase events
// table. Filtering that PostgREST cannot express cheaply (price ceiling,
// offset pagination) happens in Go after the fetch.
type SupabaseEventsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseEventsRepository(client *database.SupabaseClient) repository.EventsRepository {
	return &SupabaseEventsRepository{
		client: client,
	}
}

func (r *SupabaseEventsRepository) ListFeatured(ctx context.Context, limit int) ([]model.PortugueseEvent, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	data, count, err := r.client.GetClient().From("events").
		Select("*", "exact", false).
		Eq("status", model.EventActive).
		Eq("is_featured", "true").
		Gte("end_datetime", now).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("featured events query failed: %w", err)
	}
	_ = count

	var events []model.PortugueseEvent
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		return nil, fmt.Errorf("failed to parse featured events response: %w", err)
	}

	sortEventsBySoonest(events)
	return events, nil
}

func (r *SupabaseEventsRepository) ListUpcoming(ctx context.Context, filters model.EventFilters) ([]model.PortugueseEvent, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	builder := r.client.GetClient().From("events").
		Select("*", "exact", false).
		Eq("status", model.EventActive).
		Gte("start_datetime", now)

	if filters.CulturalCategory != "" {
		builder = builder.Eq("cultural_category", filters.CulturalCategory)
	}
	if filters.Neighborhood != "" {
		builder = builder.Eq("portuguese_neighborhood", filters.Neighborhood)
	}
	if filters.EventType != "" {
		builder = builder.Eq("event_type", filters.EventType)
	}

	data, count, err := builder.Execute()
	if err != nil {
		return nil, fmt.Errorf("upcoming events query failed: %w", err)
	}
	_ = count

	var events []model.PortugueseEvent
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		return nil, fmt.Errorf("failed to parse upcoming events response: %w", err)
	}

	if filters.PriceMax > 0 {
		filtered := events[:0]
		for _, event := range events {
			if event.Price <= filters.PriceMax {
				filtered = append(filtered, event)
			}
		}
		events = filtered
	}

	sortEventsBySoonest(events)

	if filters.Offset > 0 {
		if filters.Offset >= len(events) {
			return nil, nil
		}
		events = events[filters.Offset:]
	}
	if filters.Limit > 0 && len(events) > filters.Limit {
		events = events[:filters.Limit]
	}

	return events, nil
}

func sortEventsBySoonest(events []model.PortugueseEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDatetime < events[j].StartDatetime
	})
}
