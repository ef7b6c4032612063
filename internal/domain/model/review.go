package model

// Visit types a reviewer can report.
const (
	VisitDining   = "dining"
	VisitShopping = "shopping"
	VisitService  = "service"
	VisitEvent    = "event"
	VisitMeeting  = "meeting"
)

// Moderation states gating review visibility. Only approved reviews are
// included in listings and aggregates.
const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationRejected = "rejected"
)

// BusinessReview a rating and optional text tied to one business and one reviewer.
// The backing table enforces one review per (business, reviewer) pair.
type BusinessReview struct {
	ID                          string   `json:"id" db:"id"`
	BusinessID                  string   `json:"business_id" db:"business_id"`
	ReviewerID                  string   `json:"reviewer_id" db:"reviewer_id"`
	Rating                      int      `json:"rating" db:"rating"`
	ReviewText                  string   `json:"review_text,omitempty" db:"review_text"`
	CulturalAuthenticityRating  *int     `json:"cultural_authenticity_rating,omitempty" db:"cultural_authenticity_rating"`
	LanguageAccommodationRating *int     `json:"language_accommodation_rating,omitempty" db:"language_accommodation_rating"`
	RecommendedDishes           []string `json:"recommended_dishes,omitempty" db:"recommended_dishes"`
	VisitType                   string   `json:"visit_type,omitempty" db:"visit_type"`
	VisitDate                   string   `json:"visit_date,omitempty" db:"visit_date"`
	HelpfulVotes                int      `json:"helpful_votes" db:"helpful_votes"`
	IsVerifiedCustomer          bool     `json:"is_verified_customer" db:"is_verified_customer"`
	ModerationStatus            string   `json:"moderation_status" db:"moderation_status"`
	CreatedAt                   string   `json:"created_at" db:"created_at"`

	// Populated reviewer data
	Reviewer *ProfileSummary `json:"reviewer,omitempty"`
}

// NewBusinessReview the caller-supplied part of a review; the business id
// comes from the route, reviewer id and moderation status are filled in by
// the service.
type NewBusinessReview struct {
	BusinessID                  string   `json:"business_id"`
	Rating                      int      `json:"rating" binding:"required,min=1,max=5"`
	ReviewText                  string   `json:"review_text,omitempty"`
	CulturalAuthenticityRating  *int     `json:"cultural_authenticity_rating,omitempty"`
	LanguageAccommodationRating *int     `json:"language_accommodation_rating,omitempty"`
	RecommendedDishes           []string `json:"recommended_dishes,omitempty"`
	VisitType                   string   `json:"visit_type,omitempty"`
	VisitDate                   string   `json:"visit_date,omitempty"`
}

// UserReviewedBusiness pairs one of the caller's reviews with its business.
type UserReviewedBusiness struct {
	Business PortugueseBusiness `json:"business"`
	Review   BusinessReview     `json:"review"`
}
