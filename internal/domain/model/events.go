package model

// Event statuses.
const (
	EventActive    = "active"
	EventCancelled = "cancelled"
	EventCompleted = "completed"
)

// PortugueseEvent a community event, in person or online.
type PortugueseEvent struct {
	ID                   string   `json:"id" db:"id"`
	Title                string   `json:"title" db:"title"`
	Description          string   `json:"description,omitempty" db:"description"`
	EventType            string   `json:"event_type" db:"event_type"` // online | in_person | hybrid
	Location             string   `json:"location,omitempty" db:"location"`
	VirtualLink          string   `json:"virtual_link,omitempty" db:"virtual_link"`
	StartDatetime        string   `json:"start_datetime" db:"start_datetime"`
	EndDatetime          string   `json:"end_datetime" db:"end_datetime"`
	MaxAttendees         int      `json:"max_attendees,omitempty" db:"max_attendees"`
	CurrentAttendeeCount int      `json:"current_attendee_count" db:"current_attendee_count"`
	Price                float64  `json:"price" db:"price"`
	Currency             string   `json:"currency" db:"currency"`
	CreatedBy            string   `json:"created_by" db:"created_by"`
	ImageURL             string   `json:"image_url,omitempty" db:"image_url"`
	IsFeatured           bool     `json:"is_featured" db:"is_featured"`
	Status               string   `json:"status" db:"status"`
	Tags                 []string `json:"tags,omitempty" db:"tags"`

	CulturalCategory          string  `json:"cultural_category,omitempty" db:"cultural_category"`
	PortugueseNeighborhood    string  `json:"portuguese_neighborhood,omitempty" db:"portuguese_neighborhood"`
	CulturalAuthenticityScore float64 `json:"cultural_authenticity_score,omitempty" db:"cultural_authenticity_score"`
	FadoMusicFeatured         bool    `json:"fado_music_featured,omitempty" db:"fado_music_featured"`
	SantosPopularesThemed     bool    `json:"santos_populares_themed,omitempty" db:"santos_populares_themed"`
	FootballViewingParty      bool    `json:"football_viewing_party,omitempty" db:"football_viewing_party"`

	CreatedAt string `json:"created_at" db:"created_at"`
	UpdatedAt string `json:"updated_at" db:"updated_at"`

	Creator *ProfileSummary `json:"creator,omitempty"`
}

// EventFilters filters for the upcoming events listing.
type EventFilters struct {
	CulturalCategory string  `json:"cultural_category,omitempty" form:"cultural_category"`
	Neighborhood     string  `json:"neighborhood,omitempty" form:"neighborhood"`
	PriceMax         float64 `json:"price_max,omitempty" form:"price_max"`
	EventType        string  `json:"event_type,omitempty" form:"event_type"`
	Limit            int     `json:"limit,omitempty" form:"limit"`
	Offset           int     `json:"offset,omitempty" form:"offset"`
}
