package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/domain/repository"
	"lusotown-backend/internal/infrastructure/database"
)

// PostgresBusinessSearchRepository wraps the PostGIS stored procedures behind
// the directory search interface. Server row shapes differ per procedure, so
// each one gets its own scan struct and an explicit mapping into the
// canonical PortugueseBusiness model.
type PostgresBusinessSearchRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresBusinessSearchRepository(client *database.PostgreSQLClient) repository.BusinessSearchRepository {
	return &PostgresBusinessSearchRepository{
		client: client,
	}
}

// nearbyBusinessRow the row shape returned by find_nearby_portuguese_businesses.
type nearbyBusinessRow struct {
	BusinessID          string
	BusinessName        string
	BusinessType        string
	Description         sql.NullString
	Address             sql.NullString
	Postcode            sql.NullString
	Phone               sql.NullString
	WebsiteURL          sql.NullString
	AverageRating       float64
	TotalReviews        int
	PriceRange          sql.NullString
	Specialties         pq.StringArray
	RecommendationScore float64
	IsVerified          bool
	IsOpenNow           bool
	DistanceKm          float64
}

// ToBusiness maps the server row into the canonical model. The server scores
// recommendations 0-10; the public authenticity score is that value x10.
func (r *nearbyBusinessRow) ToBusiness() model.PortugueseBusiness {
	now := time.Now().UTC().Format(time.RFC3339)
	isOpen := r.IsOpenNow
	distance := r.DistanceKm

	business := model.PortugueseBusiness{
		ID:                          r.BusinessID,
		BusinessName:                r.BusinessName,
		BusinessType:                r.BusinessType,
		Description:                 r.Description.String,
		Address:                     r.Address.String,
		Postcode:                    r.Postcode.String,
		Phone:                       r.Phone.String,
		Website:                     r.WebsiteURL.String,
		AverageRating:               r.AverageRating,
		ReviewCount:                 r.TotalReviews,
		PriceRange:                  r.PriceRange.String,
		Specialties:                 []string(r.Specialties),
		PortugueseAuthenticityScore: r.RecommendationScore * 10,
		ServesPortugueseCommunity:   true,
		StaffSpeaksPortuguese:       true,
		AcceptsMultibanco:           true,
		VerifiedStatus:              model.StatusPending,
		CreatedAt:                   now,
		UpdatedAt:                   now,
		IsOpen:                      &isOpen,
		DistanceKm:                  &distance,
	}
	if r.IsVerified {
		business.VerifiedStatus = model.StatusVerified
	}
	return business
}

func (r *PostgresBusinessSearchRepository) FindNearby(ctx context.Context, params model.LocationSearchParams) ([]model.PortugueseBusiness, error) {
	query := `
		SELECT
			business_id, business_name, business_type, description, address,
			postcode, phone, website_url, average_rating, total_reviews,
			price_range, portuguese_specialties, recommendation_score,
			is_verified, is_open_now, distance_km
		FROM find_nearby_portuguese_businesses(
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	verifiedOnly := true
	if params.VerifiedOnly != nil {
		verifiedOnly = *params.VerifiedOnly
	}

	rows, err := r.client.DB.QueryContext(ctx, query,
		params.Latitude,
		params.Longitude,
		params.RadiusKm,
		pq.Array(params.BusinessTypes),
		params.MinRating,
		params.MaxPriceLevel,
		nullableString(params.CulturalFocus),
		pq.Array(params.PortugueseSpecialties),
		verifiedOnly,
		params.OpenNow,
		params.Limit,
		params.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("nearby business search failed: %w", err)
	}
	defer rows.Close()

	var businesses []model.PortugueseBusiness
	for rows.Next() {
		var row nearbyBusinessRow
		err := rows.Scan(&row.BusinessID, &row.BusinessName, &row.BusinessType,
			&row.Description, &row.Address, &row.Postcode, &row.Phone,
			&row.WebsiteURL, &row.AverageRating, &row.TotalReviews,
			&row.PriceRange, &row.Specialties, &row.RecommendationScore,
			&row.IsVerified, &row.IsOpenNow, &row.DistanceKm)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nearby business row: %w", err)
		}
		businesses = append(businesses, row.ToBusiness())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nearby business rows: %w", err)
	}

	return businesses, nil
}

// hybridBusinessRow the row shape returned by search_portuguese_businesses_hybrid.
// Ranking comes back as relevance_score with a match_type discriminator
// (text, geo or both).
type hybridBusinessRow struct {
	BusinessID     string
	BusinessName   string
	BusinessType   string
	Description    sql.NullString
	Address        sql.NullString
	Postcode       sql.NullString
	Phone          sql.NullString
	WebsiteURL     sql.NullString
	AverageRating  float64
	TotalReviews   int
	PriceRange     sql.NullString
	Specialties    pq.StringArray
	RelevanceScore float64
	IsVerified     bool
	DistanceKm     sql.NullFloat64
	MatchType      string
}

func (r *hybridBusinessRow) ToBusiness() model.PortugueseBusiness {
	now := time.Now().UTC().Format(time.RFC3339)

	business := model.PortugueseBusiness{
		ID:                          r.BusinessID,
		BusinessName:                r.BusinessName,
		BusinessType:                r.BusinessType,
		Description:                 r.Description.String,
		Address:                     r.Address.String,
		Postcode:                    r.Postcode.String,
		Phone:                       r.Phone.String,
		Website:                     r.WebsiteURL.String,
		AverageRating:               r.AverageRating,
		ReviewCount:                 r.TotalReviews,
		PriceRange:                  r.PriceRange.String,
		Specialties:                 []string(r.Specialties),
		PortugueseAuthenticityScore: r.RelevanceScore * 10,
		ServesPortugueseCommunity:   true,
		StaffSpeaksPortuguese:       true,
		AcceptsMultibanco:           true,
		VerifiedStatus:              model.StatusPending,
		CreatedAt:                   now,
		UpdatedAt:                   now,
		MatchType:                   r.MatchType,
	}
	if r.IsVerified {
		business.VerifiedStatus = model.StatusVerified
	}
	if r.DistanceKm.Valid {
		distance := r.DistanceKm.Float64
		business.DistanceKm = &distance
	}
	return business
}

func (r *PostgresBusinessSearchRepository) SearchHybrid(ctx context.Context, params model.HybridSearchParams) ([]model.PortugueseBusiness, error) {
	query := `
		SELECT
			business_id, business_name, business_type, description, address,
			postcode, phone, website_url, average_rating, total_reviews,
			price_range, portuguese_specialties, relevance_score,
			is_verified, distance_km, match_type
		FROM search_portuguese_businesses_hybrid(
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	verifiedOnly := true
	if params.VerifiedOnly != nil {
		verifiedOnly = *params.VerifiedOnly
	}

	rows, err := r.client.DB.QueryContext(ctx, query,
		nullableString(params.SearchQuery),
		nullableFloat(params.Latitude),
		nullableFloat(params.Longitude),
		params.RadiusKm,
		pq.Array(params.BusinessTypes),
		params.MinRating,
		verifiedOnly,
		params.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("hybrid business search failed: %w", err)
	}
	defer rows.Close()

	var businesses []model.PortugueseBusiness
	for rows.Next() {
		var row hybridBusinessRow
		err := rows.Scan(&row.BusinessID, &row.BusinessName, &row.BusinessType,
			&row.Description, &row.Address, &row.Postcode, &row.Phone,
			&row.WebsiteURL, &row.AverageRating, &row.TotalReviews,
			&row.PriceRange, &row.Specialties, &row.RelevanceScore,
			&row.IsVerified, &row.DistanceKm, &row.MatchType)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hybrid business row: %w", err)
		}
		businesses = append(businesses, row.ToBusiness())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hybrid business rows: %w", err)
	}

	return businesses, nil
}

// clusterRow the row shape returned by get_business_clusters_for_map.
type clusterRow struct {
	ClusterID     string
	ClusterLat    float64
	ClusterLng    float64
	BusinessCount int
	AvgRating     float64
	DominantType  string
	CulturalMix   []byte
	BusinessIDs   pq.StringArray
}

func (r *clusterRow) ToCluster() (model.BusinessCluster, error) {
	cluster := model.BusinessCluster{
		ClusterID:     r.ClusterID,
		ClusterLat:    r.ClusterLat,
		ClusterLng:    r.ClusterLng,
		BusinessCount: r.BusinessCount,
		AvgRating:     r.AvgRating,
		DominantType:  r.DominantType,
		BusinessIDs:   []string(r.BusinessIDs),
	}

	if len(r.CulturalMix) > 0 {
		if err := json.Unmarshal(r.CulturalMix, &cluster.CulturalMix); err != nil {
			return model.BusinessCluster{}, fmt.Errorf("failed to parse cultural_mix JSONB: %w", err)
		}
	}

	return cluster, nil
}

func (r *PostgresBusinessSearchRepository) ClustersForMap(ctx context.Context, bounds model.MapBounds, zoomLevel int, filters model.ClusterFilters) ([]model.BusinessCluster, error) {
	query := `
		SELECT
			cluster_id, cluster_lat, cluster_lng, business_count,
			avg_rating, dominant_type, cultural_mix, business_ids
		FROM get_business_clusters_for_map(
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	verifiedOnly := true
	if filters.VerifiedOnly != nil {
		verifiedOnly = *filters.VerifiedOnly
	}

	rows, err := r.client.DB.QueryContext(ctx, query,
		bounds.South,
		bounds.West,
		bounds.North,
		bounds.East,
		zoomLevel,
		pq.Array(filters.BusinessTypes),
		filters.MinRating,
		verifiedOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("business cluster query failed: %w", err)
	}
	defer rows.Close()

	var clusters []model.BusinessCluster
	for rows.Next() {
		var row clusterRow
		err := rows.Scan(&row.ClusterID, &row.ClusterLat, &row.ClusterLng,
			&row.BusinessCount, &row.AvgRating, &row.DominantType,
			&row.CulturalMix, &row.BusinessIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cluster row: %w", err)
		}

		cluster, err := row.ToCluster()
		if err != nil {
			return nil, err
		}
		clusters = append(clusters, cluster)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cluster rows: %w", err)
	}

	return clusters, nil
}

// nullableString maps "" to SQL NULL so the stored procedures see optional
// parameters the way the web client sends them.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
