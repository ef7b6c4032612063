package model

import (
	"strings"
	"time"
)

// Verification lifecycle of a business listing. Listings are created pending,
// promoted by moderation and soft-retired via StatusRejected.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusPremium  = "premium"
	StatusRejected = "rejected"
)

// DaySchedule opening hours for a single weekday, times as "HH:MM".
type DaySchedule struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed,omitempty"`
}

// BusinessHours weekly schedule keyed by lowercase weekday name ("monday" .. "sunday").
type BusinessHours map[string]DaySchedule

// IsOpenAt reports whether the schedule is open at t using a lexical HH:MM
// comparison against the half-open interval [open, close).
// A business with no configured hours at all is treated as always open; a day
// missing from a configured schedule counts as closed.
func (h BusinessHours) IsOpenAt(t time.Time) bool {
	if len(h) == 0 {
		return true
	}

	day := strings.ToLower(t.Weekday().String())
	schedule, ok := h[day]
	if !ok || schedule.Closed {
		return false
	}

	current := t.Format("15:04")
	return current >= schedule.Open && current < schedule.Close
}

// SocialMedia optional social links of a business.
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// ProfileSummary the subset of a profile joined into listings and reviews.
type ProfileSummary struct {
	ID                string `json:"id" db:"id"`
	FirstName         string `json:"first_name" db:"first_name"`
	LastName          string `json:"last_name" db:"last_name"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty" db:"profile_picture_url"`
}

// PortugueseBusiness a directory listing owned by a community member.
type PortugueseBusiness struct {
	ID            string        `json:"id" db:"id"`
	OwnerID       string        `json:"owner_id,omitempty" db:"owner_id"`
	BusinessName  string        `json:"business_name" db:"business_name"`
	BusinessType  string        `json:"business_type" db:"business_type"`
	Description   string        `json:"description,omitempty" db:"description"`
	Address       string        `json:"address" db:"address"`
	Neighborhood  string        `json:"neighborhood,omitempty" db:"neighborhood"`
	Postcode      string        `json:"postcode,omitempty" db:"postcode"`
	Phone         string        `json:"phone,omitempty" db:"phone"`
	Email         string        `json:"email,omitempty" db:"email"`
	Website       string        `json:"website,omitempty" db:"website"`
	SocialMedia   *SocialMedia  `json:"social_media,omitempty" db:"social_media"`
	Specialties   []string      `json:"specialties,omitempty" db:"specialties"`
	BusinessHours BusinessHours `json:"business_hours,omitempty" db:"business_hours"`

	// PortugueseAuthenticityScore is a 0-100 display convention; geo search
	// results derive it from the server-side 0-10 recommendation score.
	PortugueseAuthenticityScore float64 `json:"portuguese_authenticity_score" db:"portuguese_authenticity_score"`
	ServesPortugueseCommunity   bool    `json:"serves_portuguese_community" db:"serves_portuguese_community"`
	StaffSpeaksPortuguese       bool    `json:"staff_speaks_portuguese" db:"staff_speaks_portuguese"`
	AcceptsMultibanco           bool    `json:"accepts_multibanco" db:"accepts_multibanco"`

	AverageRating  float64 `json:"average_rating" db:"average_rating"`
	ReviewCount    int     `json:"review_count" db:"review_count"`
	PriceRange     string  `json:"price_range,omitempty" db:"price_range"`
	VerifiedStatus string  `json:"verified_status" db:"verified_status"`
	FeaturedUntil  string  `json:"featured_until,omitempty" db:"featured_until"`
	CreatedAt      string  `json:"created_at" db:"created_at"`
	UpdatedAt      string  `json:"updated_at" db:"updated_at"`

	// Populated fields
	Owner         *ProfileSummary  `json:"owner,omitempty"`
	RecentReviews []BusinessReview `json:"recent_reviews,omitempty"`
	IsOpen        *bool            `json:"is_open,omitempty"`
	DistanceKm    *float64         `json:"distance_km,omitempty"`
	MatchType     string           `json:"match_type,omitempty"`
}

// BusinessSearchFilters filter set for the catalog listing endpoints.
type BusinessSearchFilters struct {
	BusinessType            string   `json:"business_type,omitempty" form:"business_type"`
	Neighborhood            string   `json:"neighborhood,omitempty" form:"neighborhood"`
	PriceRange              string   `json:"price_range,omitempty" form:"price_range"`
	MinRating               float64  `json:"min_rating,omitempty" form:"min_rating"`
	PortugueseSpeakingStaff bool     `json:"portuguese_speaking_staff,omitempty" form:"portuguese_speaking_staff"`
	AcceptsMultibanco       bool     `json:"accepts_multibanco,omitempty" form:"accepts_multibanco"`
	VerifiedOnly            bool     `json:"verified_only,omitempty" form:"verified_only"`
	OpenNow                 bool     `json:"open_now,omitempty" form:"open_now"`
	Limit                   int      `json:"limit,omitempty" form:"limit"`
	Offset                  int      `json:"offset,omitempty" form:"offset"`
	Latitude                *float64 `json:"latitude,omitempty" form:"latitude"`
	Longitude               *float64 `json:"longitude,omitempty" form:"longitude"`
	RadiusKm                float64  `json:"radius_km,omitempty" form:"radius_km"`
	CulturalFocus           string   `json:"cultural_focus,omitempty" form:"cultural_focus"`
	PortugueseSpecialties   []string `json:"portuguese_specialties,omitempty" form:"portuguese_specialties"`
	MaxPriceLevel           int      `json:"max_price_level,omitempty" form:"max_price_level"`
}

// LocationSearchParams parameters for the PostGIS radius search.
// Latitude and Longitude are required, everything else has server defaults.
type LocationSearchParams struct {
	Latitude              float64  `json:"latitude" form:"latitude"`
	Longitude             float64  `json:"longitude" form:"longitude"`
	RadiusKm              float64  `json:"radius_km,omitempty" form:"radius_km"`
	BusinessTypes         []string `json:"business_types,omitempty" form:"business_types"`
	MinRating             float64  `json:"min_rating,omitempty" form:"min_rating"`
	MaxPriceLevel         int      `json:"max_price_level,omitempty" form:"max_price_level"`
	CulturalFocus         string   `json:"cultural_focus,omitempty" form:"cultural_focus"`
	PortugueseSpecialties []string `json:"portuguese_specialties,omitempty" form:"portuguese_specialties"`
	VerifiedOnly          *bool    `json:"verified_only,omitempty" form:"verified_only"`
	OpenNow               bool     `json:"open_now,omitempty" form:"open_now"`
	Limit                 int      `json:"limit,omitempty" form:"limit"`
	Offset                int      `json:"offset,omitempty" form:"offset"`
}

// HybridSearchParams parameters for the combined text + location ranking search.
type HybridSearchParams struct {
	SearchQuery   string   `json:"search_query,omitempty" form:"search_query"`
	Latitude      *float64 `json:"latitude,omitempty" form:"latitude"`
	Longitude     *float64 `json:"longitude,omitempty" form:"longitude"`
	RadiusKm      float64  `json:"radius_km,omitempty" form:"radius_km"`
	BusinessTypes []string `json:"business_types,omitempty" form:"business_types"`
	MinRating     float64  `json:"min_rating,omitempty" form:"min_rating"`
	VerifiedOnly  *bool    `json:"verified_only,omitempty" form:"verified_only"`
	Limit         int      `json:"limit,omitempty" form:"limit"`
}

// BusinessCategory a business type with its listing count and display metadata.
type BusinessCategory struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	BusinessCount int    `json:"business_count"`
}

// BusinessStatistics directory-wide aggregates for the dashboard.
type BusinessStatistics struct {
	TotalBusinesses    int            `json:"total_businesses"`
	VerifiedBusinesses int            `json:"verified_businesses"`
	AverageRating      float64        `json:"average_rating"`
	TotalReviews       int            `json:"total_reviews"`
	ByNeighborhood     map[string]int `json:"by_neighborhood"`
	ByType             map[string]int `json:"by_type"`
}
