package repository

import (
	"context"

	"lusotown-backend/internal/domain/model"
)

// BusinessSearchRepository the PostGIS-backed search surface. Implementations
// wrap the server-side stored procedures and normalize their row shapes into
// the canonical PortugueseBusiness model.
type BusinessSearchRepository interface {
	// FindNearby runs the radius search around params.Latitude/Longitude.
	FindNearby(ctx context.Context, params model.LocationSearchParams) ([]model.PortugueseBusiness, error)

	// SearchHybrid combines free-text ranking with an optional location bias.
	// Results carry a MatchType discriminator from the ranking function.
	SearchHybrid(ctx context.Context, params model.HybridSearchParams) ([]model.PortugueseBusiness, error)

	// ClustersForMap aggregates businesses inside the viewport into clusters
	// appropriate for the zoom level.
	ClustersForMap(ctx context.Context, bounds model.MapBounds, zoomLevel int, filters model.ClusterFilters) ([]model.BusinessCluster, error)
}
