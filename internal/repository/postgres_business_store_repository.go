package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/domain/repository"
	"lusotown-backend/internal/infrastructure/database"
)

// businessColumns the canonical column list of portuguese_businesses, kept in
// one place so every query scans the same shape.
const businessColumns = `
	b.id, b.owner_id, b.business_name, b.business_type, b.description,
	b.address, b.neighborhood, b.postcode, b.phone, b.email, b.website,
	b.social_media, b.specialties, b.business_hours,
	b.portuguese_authenticity_score, b.serves_portuguese_community,
	b.staff_speaks_portuguese, b.accepts_multibanco,
	b.average_rating, b.review_count, b.price_range, b.verified_status,
	b.featured_until, b.created_at, b.updated_at`

// ownerColumns the joined owner profile subset.
const ownerColumns = `
	p.id, p.first_name, p.last_name, p.profile_picture_url`

// PostgresBusinessStoreRepository relational access to the business catalog.
type PostgresBusinessStoreRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresBusinessStoreRepository(client *database.PostgreSQLClient) repository.BusinessStoreRepository {
	return &PostgresBusinessStoreRepository{
		client: client,
	}
}

// businessRow scan target for businessColumns (+ ownerColumns when joined).
type businessRow struct {
	ID            string
	OwnerID       sql.NullString
	BusinessName  string
	BusinessType  string
	Description   sql.NullString
	Address       sql.NullString
	Neighborhood  sql.NullString
	Postcode      sql.NullString
	Phone         sql.NullString
	Email         sql.NullString
	Website       sql.NullString
	SocialMedia   []byte
	Specialties   pq.StringArray
	BusinessHours []byte

	AuthenticityScore         float64
	ServesPortugueseCommunity bool
	StaffSpeaksPortuguese     bool
	AcceptsMultibanco         bool

	AverageRating  float64
	ReviewCount    int
	PriceRange     sql.NullString
	VerifiedStatus string
	FeaturedUntil  sql.NullTime
	CreatedAt      time.Time
	UpdatedAt      time.Time

	OwnerProfileID sql.NullString
	OwnerFirstName sql.NullString
	OwnerLastName  sql.NullString
	OwnerPicture   sql.NullString
}

func (r *businessRow) scanTargets(withOwner bool) []interface{} {
	targets := []interface{}{
		&r.ID, &r.OwnerID, &r.BusinessName, &r.BusinessType, &r.Description,
		&r.Address, &r.Neighborhood, &r.Postcode, &r.Phone, &r.Email, &r.Website,
		&r.SocialMedia, &r.Specialties, &r.BusinessHours,
		&r.AuthenticityScore, &r.ServesPortugueseCommunity,
		&r.StaffSpeaksPortuguese, &r.AcceptsMultibanco,
		&r.AverageRating, &r.ReviewCount, &r.PriceRange, &r.VerifiedStatus,
		&r.FeaturedUntil, &r.CreatedAt, &r.UpdatedAt,
	}
	if withOwner {
		targets = append(targets, &r.OwnerProfileID, &r.OwnerFirstName, &r.OwnerLastName, &r.OwnerPicture)
	}
	return targets
}

func (r *businessRow) ToBusiness() (model.PortugueseBusiness, error) {
	business := model.PortugueseBusiness{
		ID:                          r.ID,
		OwnerID:                     r.OwnerID.String,
		BusinessName:                r.BusinessName,
		BusinessType:                r.BusinessType,
		Description:                 r.Description.String,
		Address:                     r.Address.String,
		Neighborhood:                r.Neighborhood.String,
		Postcode:                    r.Postcode.String,
		Phone:                       r.Phone.String,
		Email:                       r.Email.String,
		Website:                     r.Website.String,
		Specialties:                 []string(r.Specialties),
		PortugueseAuthenticityScore: r.AuthenticityScore,
		ServesPortugueseCommunity:   r.ServesPortugueseCommunity,
		StaffSpeaksPortuguese:       r.StaffSpeaksPortuguese,
		AcceptsMultibanco:           r.AcceptsMultibanco,
		AverageRating:               r.AverageRating,
		ReviewCount:                 r.ReviewCount,
		PriceRange:                  r.PriceRange.String,
		VerifiedStatus:              r.VerifiedStatus,
		CreatedAt:                   r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:                   r.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if r.FeaturedUntil.Valid {
		business.FeaturedUntil = r.FeaturedUntil.Time.UTC().Format(time.RFC3339)
	}

	if len(r.SocialMedia) > 0 {
		if err := json.Unmarshal(r.SocialMedia, &business.SocialMedia); err != nil {
			return model.PortugueseBusiness{}, fmt.Errorf("failed to parse social_media JSONB: %w", err)
		}
	}

	if len(r.BusinessHours) > 0 {
		if err := json.Unmarshal(r.BusinessHours, &business.BusinessHours); err != nil {
			return model.PortugueseBusiness{}, fmt.Errorf("failed to parse business_hours JSONB: %w", err)
		}
	}

	if r.OwnerProfileID.Valid {
		business.Owner = &model.ProfileSummary{
			ID:                r.OwnerProfileID.String,
			FirstName:         r.OwnerFirstName.String,
			LastName:          r.OwnerLastName.String,
			ProfilePictureURL: r.OwnerPicture.String,
		}
	}

	return business, nil
}

// catalogWhere builds the shared WHERE clause for the catalog filter set.
func catalogWhere(filters model.BusinessSearchFilters, args []interface{}) ([]string, []interface{}) {
	var conds []string

	if filters.BusinessType != "" {
		args = append(args, filters.BusinessType)
		conds = append(conds, fmt.Sprintf("b.business_type = $%d", len(args)))
	}
	if filters.Neighborhood != "" {
		args = append(args, filters.Neighborhood)
		conds = append(conds, fmt.Sprintf("b.neighborhood = $%d", len(args)))
	}
	if filters.PriceRange != "" {
		args = append(args, filters.PriceRange)
		conds = append(conds, fmt.Sprintf("b.price_range = $%d", len(args)))
	}
	if filters.MinRating > 0 {
		args = append(args, filters.MinRating)
		conds = append(conds, fmt.Sprintf("b.average_rating >= $%d", len(args)))
	}
	if filters.PortugueseSpeakingStaff {
		conds = append(conds, "b.staff_speaks_portuguese = true")
	}
	if filters.AcceptsMultibanco {
		conds = append(conds, "b.accepts_multibanco = true")
	}
	if filters.VerifiedOnly {
		conds = append(conds, "b.verified_status IN ('verified', 'premium')")
	} else {
		conds = append(conds, "b.verified_status <> 'rejected'")
	}

	return conds, args
}

func (r *PostgresBusinessStoreRepository) List(ctx context.Context, filters model.BusinessSearchFilters) ([]model.PortugueseBusiness, error) {
	conds, args := catalogWhere(filters, nil)

	query := `SELECT ` + businessColumns + `, ` + ownerColumns + `
		FROM portuguese_businesses b
		LEFT JOIN profiles p ON p.id = b.owner_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY b.average_rating DESC, b.review_count DESC`

	args = append(args, filters.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	businesses, err := r.queryBusinesses(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("business catalog query failed: %w", err)
	}

	if err := r.attachRecentReviews(ctx, businesses); err != nil {
		return nil, err
	}

	return businesses, nil
}

func (r *PostgresBusinessStoreRepository) SearchByText(ctx context.Context, searchQuery string, filters model.BusinessSearchFilters) ([]model.PortugueseBusiness, error) {
	conds, args := catalogWhere(filters, nil)

	if searchQuery != "" {
		args = append(args, "%"+searchQuery+"%")
		conds = append(conds, fmt.Sprintf("(b.business_name ILIKE $%d OR b.description ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + businessColumns + `, ` + ownerColumns + `
		FROM portuguese_businesses b
		LEFT JOIN profiles p ON p.id = b.owner_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY b.average_rating DESC`

	args = append(args, filters.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	businesses, err := r.queryBusinesses(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("business text search failed: %w", err)
	}

	if err := r.attachRecentReviews(ctx, businesses); err != nil {
		return nil, err
	}

	return businesses, nil
}

func (r *PostgresBusinessStoreRepository) ListFeatured(ctx context.Context, limit int) ([]model.PortugueseBusiness, error) {
	query := `SELECT ` + businessColumns + `, ` + ownerColumns + `
		FROM portuguese_businesses b
		LEFT JOIN profiles p ON p.id = b.owner_id
		WHERE b.verified_status = 'premium' AND b.featured_until >= now()
		ORDER BY b.average_rating DESC
		LIMIT $1`

	businesses, err := r.queryBusinesses(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("featured business query failed: %w", err)
	}

	if err := r.attachRecentReviews(ctx, businesses); err != nil {
		return nil, err
	}

	return businesses, nil
}

func (r *PostgresBusinessStoreRepository) GetByID(ctx context.Context, id string) (*model.PortugueseBusiness, error) {
	query := `SELECT ` + businessColumns + `, ` + ownerColumns + `
		FROM portuguese_businesses b
		LEFT JOIN profiles p ON p.id = b.owner_id
		WHERE b.id = $1`

	var row businessRow
	err := r.client.DB.QueryRowContext(ctx, query, id).Scan(row.scanTargets(true)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("business lookup failed: %w", err)
	}

	business, err := row.ToBusiness()
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *PostgresBusinessStoreRepository) CountByType(ctx context.Context) (map[string]int, error) {
	query := `SELECT business_type, count(*)
		FROM portuguese_businesses
		WHERE verified_status <> 'rejected'
		GROUP BY business_type`

	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("category count query failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var businessType string
		var count int
		if err := rows.Scan(&businessType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count row: %w", err)
		}
		counts[businessType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category count rows: %w", err)
	}

	return counts, nil
}

func (r *PostgresBusinessStoreRepository) StatsRows(ctx context.Context) ([]model.BusinessStatsRow, error) {
	query := `SELECT verified_status, average_rating, review_count,
			COALESCE(neighborhood, ''), business_type
		FROM portuguese_businesses`

	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("statistics query failed: %w", err)
	}
	defer rows.Close()

	var stats []model.BusinessStatsRow
	for rows.Next() {
		var row model.BusinessStatsRow
		err := rows.Scan(&row.VerifiedStatus, &row.AverageRating, &row.ReviewCount,
			&row.Neighborhood, &row.BusinessType)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statistics row: %w", err)
		}
		stats = append(stats, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statistics rows: %w", err)
	}

	return stats, nil
}

func (r *PostgresBusinessStoreRepository) Insert(ctx context.Context, business *model.PortugueseBusiness) (*model.PortugueseBusiness, error) {
	socialMedia, err := json.Marshal(business.SocialMedia)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal social_media: %w", err)
	}
	businessHours, err := json.Marshal(business.BusinessHours)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal business_hours: %w", err)
	}

	query := `INSERT INTO portuguese_businesses (
			owner_id, business_name, business_type, description, address,
			neighborhood, postcode, phone, email, website, social_media,
			specialties, business_hours, serves_portuguese_community,
			staff_speaks_portuguese, accepts_multibanco, average_rating,
			review_count, price_range, verified_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20
		)
		RETURNING id, created_at, updated_at`

	var id string
	var createdAt, updatedAt time.Time
	err = r.client.DB.QueryRowContext(ctx, query,
		business.OwnerID,
		business.BusinessName,
		business.BusinessType,
		nullableString(business.Description),
		business.Address,
		nullableString(business.Neighborhood),
		nullableString(business.Postcode),
		nullableString(business.Phone),
		nullableString(business.Email),
		nullableString(business.Website),
		socialMedia,
		pq.Array(business.Specialties),
		businessHours,
		business.ServesPortugueseCommunity,
		business.StaffSpeaksPortuguese,
		business.AcceptsMultibanco,
		business.AverageRating,
		business.ReviewCount,
		nullableString(business.PriceRange),
		business.VerifiedStatus,
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("business registration insert failed: %w", err)
	}

	created := *business
	created.ID = id
	created.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	created.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return &created, nil
}

func (r *PostgresBusinessStoreRepository) UpdateOwned(ctx context.Context, businessID, ownerID string, updates model.BusinessUpdate) (*model.PortugueseBusiness, error) {
	var sets []string
	var args []interface{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.BusinessName != nil {
		addSet("business_name", *updates.BusinessName)
	}
	if updates.BusinessType != nil {
		addSet("business_type", *updates.BusinessType)
	}
	if updates.Description != nil {
		addSet("description", *updates.Description)
	}
	if updates.Address != nil {
		addSet("address", *updates.Address)
	}
	if updates.Neighborhood != nil {
		addSet("neighborhood", *updates.Neighborhood)
	}
	if updates.Postcode != nil {
		addSet("postcode", *updates.Postcode)
	}
	if updates.Phone != nil {
		addSet("phone", *updates.Phone)
	}
	if updates.Email != nil {
		addSet("email", *updates.Email)
	}
	if updates.Website != nil {
		addSet("website", *updates.Website)
	}
	if updates.SocialMedia != nil {
		socialMedia, err := json.Marshal(updates.SocialMedia)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal social_media: %w", err)
		}
		addSet("social_media", socialMedia)
	}
	if updates.Specialties != nil {
		addSet("specialties", pq.Array(*updates.Specialties))
	}
	if updates.BusinessHours != nil {
		businessHours, err := json.Marshal(updates.BusinessHours)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal business_hours: %w", err)
		}
		addSet("business_hours", businessHours)
	}
	if updates.PriceRange != nil {
		addSet("price_range", *updates.PriceRange)
	}

	if len(sets) == 0 {
		// Nothing to change; behave like a read guarded by ownership.
		return r.getOwned(ctx, businessID, ownerID)
	}

	sets = append(sets, "updated_at = now()")

	args = append(args, businessID)
	idArg := len(args)
	args = append(args, ownerID)
	ownerArg := len(args)

	query := fmt.Sprintf(`UPDATE portuguese_businesses b
		SET %s
		WHERE b.id = $%d AND b.owner_id = $%d
		RETURNING `+businessColumns, strings.Join(sets, ", "), idArg, ownerArg)

	var row businessRow
	err := r.client.DB.QueryRowContext(ctx, query, args...).Scan(row.scanTargets(false)...)
	if err != nil {
		if err == sql.ErrNoRows {
			// Either the business does not exist or the caller is not the
			// owner; the query does not distinguish.
			return nil, nil
		}
		return nil, fmt.Errorf("business update failed: %w", err)
	}

	business, err := row.ToBusiness()
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *PostgresBusinessStoreRepository) getOwned(ctx context.Context, businessID, ownerID string) (*model.PortugueseBusiness, error) {
	query := `SELECT ` + businessColumns + `
		FROM portuguese_businesses b
		WHERE b.id = $1 AND b.owner_id = $2`

	var row businessRow
	err := r.client.DB.QueryRowContext(ctx, query, businessID, ownerID).Scan(row.scanTargets(false)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("business lookup failed: %w", err)
	}

	business, err := row.ToBusiness()
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *PostgresBusinessStoreRepository) queryBusinesses(ctx context.Context, query string, args ...interface{}) ([]model.PortugueseBusiness, error) {
	rows, err := r.client.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []model.PortugueseBusiness
	for rows.Next() {
		var row businessRow
		if err := rows.Scan(row.scanTargets(true)...); err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}

		business, err := row.ToBusiness()
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, business)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating business rows: %w", err)
	}

	return businesses, nil
}

// attachRecentReviews loads up to three approved reviews per business for the
// current page in one query.
func (r *PostgresBusinessStoreRepository) attachRecentReviews(ctx context.Context, businesses []model.PortugueseBusiness) error {
	if len(businesses) == 0 {
		return nil
	}

	ids := make([]string, len(businesses))
	for i, b := range businesses {
		ids[i] = b.ID
	}

	query := `SELECT r.id, r.business_id, r.reviewer_id, r.rating, r.review_text,
			r.cultural_authenticity_rating, r.visit_date, r.helpful_votes,
			r.moderation_status, r.created_at,
			p.id, p.first_name, p.last_name, p.profile_picture_url
		FROM business_reviews r
		LEFT JOIN profiles p ON p.id = r.reviewer_id
		WHERE r.business_id = ANY($1) AND r.moderation_status = 'approved'
		ORDER BY r.created_at DESC`

	rows, err := r.client.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("recent reviews query failed: %w", err)
	}
	defer rows.Close()

	reviewsByBusiness := make(map[string][]model.BusinessReview)
	for rows.Next() {
		var review model.BusinessReview
		var reviewText, visitDate sql.NullString
		var culturalRating sql.NullInt64
		var createdAt time.Time
		var reviewerID, firstName, lastName, picture sql.NullString

		err := rows.Scan(&review.ID, &review.BusinessID, &review.ReviewerID,
			&review.Rating, &reviewText, &culturalRating, &visitDate,
			&review.HelpfulVotes, &review.ModerationStatus, &createdAt,
			&reviewerID, &firstName, &lastName, &picture)
		if err != nil {
			return fmt.Errorf("failed to scan recent review row: %w", err)
		}

		review.ReviewText = reviewText.String
		review.VisitDate = visitDate.String
		review.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		if culturalRating.Valid {
			rating := int(culturalRating.Int64)
			review.CulturalAuthenticityRating = &rating
		}
		if reviewerID.Valid {
			review.Reviewer = &model.ProfileSummary{
				ID:                reviewerID.String,
				FirstName:         firstName.String,
				LastName:          lastName.String,
				ProfilePictureURL: picture.String,
			}
		}

		if len(reviewsByBusiness[review.BusinessID]) < 3 {
			reviewsByBusiness[review.BusinessID] = append(reviewsByBusiness[review.BusinessID], review)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating recent review rows: %w", err)
	}

	for i := range businesses {
		businesses[i].RecentReviews = reviewsByBusiness[businesses[i].ID]
	}

	return nil
}
