package repository

import (
	"context"

	"lusotown-backend/internal/domain/model"
)

// BusinessStoreRepository relational access to the portuguese_businesses table.
// Not-found is reported as (nil, nil), never as an error.
type BusinessStoreRepository interface {
	// List applies the catalog filter set, joins the owner profile and recent
	// reviews, and orders by rating then review count.
	List(ctx context.Context, filters model.BusinessSearchFilters) ([]model.PortugueseBusiness, error)

	// SearchByText is a case-insensitive substring match on name/description
	// combined with the same filter set.
	SearchByText(ctx context.Context, query string, filters model.BusinessSearchFilters) ([]model.PortugueseBusiness, error)

	// ListFeatured returns premium listings whose featured_until is still in
	// the future, best rated first.
	ListFeatured(ctx context.Context, limit int) ([]model.PortugueseBusiness, error)

	GetByID(ctx context.Context, id string) (*model.PortugueseBusiness, error)

	// CountByType counts non-rejected listings per business type.
	CountByType(ctx context.Context) (map[string]int, error)

	// StatsRows returns the projection the statistics aggregation is computed from.
	StatsRows(ctx context.Context) ([]model.BusinessStatsRow, error)

	// Insert creates a listing. Callers are expected to have forced the
	// pending status and zeroed rating aggregates already.
	Insert(ctx context.Context, business *model.PortugueseBusiness) (*model.PortugueseBusiness, error)

	// UpdateOwned applies updates to the listing only when ownerID matches the
	// row's owner_id; ownership is enforced in the query, not in application
	// logic. Zero matched rows yield (nil, nil).
	UpdateOwned(ctx context.Context, businessID, ownerID string, updates model.BusinessUpdate) (*model.PortugueseBusiness, error)
}
