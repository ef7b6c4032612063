package model

// BusinessUpdate owner-editable fields of a listing. Nil pointers are left
// untouched; identity, ownership and rating aggregates can never be updated
// through this struct.
type BusinessUpdate struct {
	BusinessName  *string        `json:"business_name,omitempty"`
	BusinessType  *string        `json:"business_type,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Address       *string        `json:"address,omitempty"`
	Neighborhood  *string        `json:"neighborhood,omitempty"`
	Postcode      *string        `json:"postcode,omitempty"`
	Phone         *string        `json:"phone,omitempty"`
	Email         *string        `json:"email,omitempty"`
	Website       *string        `json:"website,omitempty"`
	SocialMedia   *SocialMedia   `json:"social_media,omitempty"`
	Specialties   *[]string      `json:"specialties,omitempty"`
	BusinessHours *BusinessHours `json:"business_hours,omitempty"`
	PriceRange    *string        `json:"price_range,omitempty"`
}

// BusinessStatsRow the minimal projection used to aggregate directory statistics.
type BusinessStatsRow struct {
	VerifiedStatus string  `json:"verified_status" db:"verified_status"`
	AverageRating  float64 `json:"average_rating" db:"average_rating"`
	ReviewCount    int     `json:"review_count" db:"review_count"`
	Neighborhood   string  `json:"neighborhood" db:"neighborhood"`
	BusinessType   string  `json:"business_type" db:"business_type"`
}

// SlowSearchReport a search that exceeded its slow-query threshold, archived
// for later inspection. Reports expire; they are operational breadcrumbs,
// not durable data.
type SlowSearchReport struct {
	SearchType      string                 `json:"search_type" firestore:"searchType"`
	ExecutionTimeMs int64                  `json:"execution_time_ms" firestore:"executionTimeMs"`
	ThresholdMs     int64                  `json:"threshold_ms" firestore:"thresholdMs"`
	ResultCount     int                    `json:"result_count" firestore:"resultCount"`
	Params          map[string]interface{} `json:"params" firestore:"params"`
}
