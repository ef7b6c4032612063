package repository

import (
	"context"
	"time"

	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/domain/repository"
)

// StaticEventsRepository a small built-in event programme served when the
// primary events source is unavailable. Dates are generated relative to now
// so the fallback always has an upcoming schedule.
type StaticEventsRepository struct {
	now func() time.Time
}

func NewStaticEventsRepository() repository.EventsRepository {
	return &StaticEventsRepository{now: time.Now}
}

func NewStaticEventsRepositoryWithClock(now func() time.Time) repository.EventsRepository {
	return &StaticEventsRepository{now: now}
}

func (r *StaticEventsRepository) events() []model.PortugueseEvent {
	base := r.now().UTC()
	at := func(daysAhead int, hour int) string {
		day := base.AddDate(0, 0, daysAhead)
		return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC).Format(time.RFC3339)
	}

	return []model.PortugueseEvent{
		{
			ID:                     "static-fado-night",
			Title:                  "Noite de Fado",
			Description:            "An evening of traditional fado with guitarra portuguesa, hosted in Stockwell.",
			EventType:              "in_person",
			Location:               "Stockwell, London",
			StartDatetime:          at(3, 19),
			EndDatetime:            at(3, 22),
			MaxAttendees:           80,
			Price:                  15,
			Currency:               "GBP",
			IsFeatured:             true,
			Status:                 model.EventActive,
			Tags:                   []string{"fado", "music", "culture"},
			CulturalCategory:       "music",
			PortugueseNeighborhood: "Stockwell",
			FadoMusicFeatured:      true,
		},
		{
			ID:                     "static-santos-populares",
			Title:                  "Santos Populares Street Party",
			Description:            "Grilled sardines, marchas populares and manjerico stalls on South Lambeth Road.",
			EventType:              "in_person",
			Location:               "South Lambeth Road, London",
			StartDatetime:          at(10, 12),
			EndDatetime:            at(10, 23),
			Price:                  0,
			Currency:               "GBP",
			IsFeatured:             true,
			Status:                 model.EventActive,
			Tags:                   []string{"festival", "food", "family"},
			CulturalCategory:       "festival",
			PortugueseNeighborhood: "Vauxhall",
			SantosPopularesThemed:  true,
		},
		{
			ID:                   "static-football-viewing",
			Title:                "Portugal Match Viewing Party",
			Description:          "Watch the seleção with the community. Big screen, bifanas and Super Bock.",
			EventType:            "in_person",
			Location:             "Golborne Road, London",
			StartDatetime:        at(5, 18),
			EndDatetime:          at(5, 21),
			Price:                0,
			Currency:             "GBP",
			Status:               model.EventActive,
			Tags:                 []string{"football", "community"},
			CulturalCategory:     "sport",
			FootballViewingParty: true,
		},
		{
			ID:               "static-conversation-exchange",
			Title:            "Portuguese-English Conversation Exchange",
			Description:      "Practice Portuguese or English over coffee. All levels welcome.",
			EventType:        "hybrid",
			Location:         "Borough, London",
			VirtualLink:      "https://meet.example.com/lusotown-exchange",
			StartDatetime:    at(7, 18),
			EndDatetime:      at(7, 20),
			Price:            5,
			Currency:         "GBP",
			Status:           model.EventActive,
			Tags:             []string{"language", "social"},
			CulturalCategory: "education",
		},
	}
}

func (r *StaticEventsRepository) ListFeatured(ctx context.Context, limit int) ([]model.PortugueseEvent, error) {
	var featured []model.PortugueseEvent
	for _, event := range r.events() {
		if event.IsFeatured {
			featured = append(featured, event)
		}
		if limit > 0 && len(featured) == limit {
			break
		}
	}
	return featured, nil
}

func (r *StaticEventsRepository) ListUpcoming(ctx context.Context, filters model.EventFilters) ([]model.PortugueseEvent, error) {
	var upcoming []model.PortugueseEvent
	for _, event := range r.events() {
		if filters.CulturalCategory != "" && event.CulturalCategory != filters.CulturalCategory {
			continue
		}
		if filters.Neighborhood != "" && event.PortugueseNeighborhood != filters.Neighborhood {
			continue
		}
		if filters.EventType != "" && event.EventType != filters.EventType {
			continue
		}
		if filters.PriceMax > 0 && event.Price > filters.PriceMax {
			continue
		}
		upcoming = append(upcoming, event)
	}

	sortEventsBySoonest(upcoming)

	if filters.Offset > 0 {
		if filters.Offset >= len(upcoming) {
			return nil, nil
		}
		upcoming = upcoming[filters.Offset:]
	}
	if filters.Limit > 0 && len(upcoming) > filters.Limit {
		upcoming = upcoming[:filters.Limit]
	}

	return upcoming, nil
}
