package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/domain/repository"
	"lusotown-backend/internal/infrastructure/database"
)

// PostgresReviewRepository relational access to business_reviews.
type PostgresReviewRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresReviewRepository(client *database.PostgreSQLClient) repository.ReviewRepository {
	return &PostgresReviewRepository{
		client: client,
	}
}

const reviewColumns = `
	r.id, r.business_id, r.reviewer_id, r.rating, r.review_text,
	r.cultural_authenticity_rating, r.language_accommodation_rating,
	r.recommended_dishes, r.visit_type, r.visit_date, r.helpful_votes,
	r.is_verified_customer, r.moderation_status, r.created_at`

// reviewRow scan target for reviewColumns plus the joined reviewer profile.
type reviewRow struct {
	ID                          string
	BusinessID                  string
	ReviewerID                  string
	Rating                      int
	ReviewText                  sql.NullString
	CulturalAuthenticityRating  sql.NullInt64
	LanguageAccommodationRating sql.NullInt64
	RecommendedDishes           pq.StringArray
	VisitType                   sql.NullString
	VisitDate                   sql.NullString
	HelpfulVotes                int
	IsVerifiedCustomer          bool
	ModerationStatus            string
	CreatedAt                   time.Time

	ReviewerProfileID sql.NullString
	ReviewerFirstName sql.NullString
	ReviewerLastName  sql.NullString
	ReviewerPicture   sql.NullString
}

func (r *reviewRow) scanTargets(withReviewer bool) []interface{} {
	targets := []interface{}{
		&r.ID, &r.BusinessID, &r.ReviewerID, &r.Rating, &r.ReviewText,
		&r.CulturalAuthenticityRating, &r.LanguageAccommodationRating,
		&r.RecommendedDishes, &r.VisitType, &r.VisitDate, &r.HelpfulVotes,
		&r.IsVerifiedCustomer, &r.ModerationStatus, &r.CreatedAt,
	}
	if withReviewer {
		targets = append(targets, &r.ReviewerProfileID, &r.ReviewerFirstName, &r.ReviewerLastName, &r.ReviewerPicture)
	}
	return targets
}

func (r *reviewRow) ToReview() model.BusinessReview {
	review := model.BusinessReview{
		ID:                 r.ID,
		BusinessID:         r.BusinessID,
		ReviewerID:         r.ReviewerID,
		Rating:             r.Rating,
		ReviewText:         r.ReviewText.String,
		RecommendedDishes:  []string(r.RecommendedDishes),
		VisitType:          r.VisitType.String,
		VisitDate:          r.VisitDate.String,
		HelpfulVotes:       r.HelpfulVotes,
		IsVerifiedCustomer: r.IsVerifiedCustomer,
		ModerationStatus:   r.ModerationStatus,
		CreatedAt:          r.CreatedAt.UTC().Format(time.RFC3339),
	}

	if r.CulturalAuthenticityRating.Valid {
		rating := int(r.CulturalAuthenticityRating.Int64)
		review.CulturalAuthenticityRating = &rating
	}
	if r.LanguageAccommodationRating.Valid {
		rating := int(r.LanguageAccommodationRating.Int64)
		review.LanguageAccommodationRating = &rating
	}

	if r.ReviewerProfileID.Valid {
		review.Reviewer = &model.ProfileSummary{
			ID:                r.ReviewerProfileID.String,
			FirstName:         r.ReviewerFirstName.String,
			LastName:          r.ReviewerLastName.String,
			ProfilePictureURL: r.ReviewerPicture.String,
		}
	}

	return review
}

func (r *PostgresReviewRepository) ListApprovedByBusiness(ctx context.Context, businessID string, limit int) ([]model.BusinessReview, error) {
	query := `SELECT ` + reviewColumns + `,
			p.id, p.first_name, p.last_name, p.profile_picture_url
		FROM business_reviews r
		LEFT JOIN profiles p ON p.id = r.reviewer_id
		WHERE r.business_id = $1 AND r.moderation_status = 'approved'
		ORDER BY r.created_at DESC
		LIMIT $2`

	rows, err := r.client.DB.QueryContext(ctx, query, businessID, limit)
	if err != nil {
		return nil, fmt.Errorf("review listing query failed: %w", err)
	}
	defer rows.Close()

	var reviews []model.BusinessReview
	for rows.Next() {
		var row reviewRow
		if err := rows.Scan(row.scanTargets(true)...); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, row.ToReview())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}

	return reviews, nil
}

func (r *PostgresReviewRepository) Insert(ctx context.Context, review *model.BusinessReview) (*model.BusinessReview, error) {
	query := `INSERT INTO business_reviews (
			business_id, reviewer_id, rating, review_text,
			cultural_authenticity_rating, language_accommodation_rating,
			recommended_dishes, visit_type, visit_date, moderation_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, helpful_votes, is_verified_customer, created_at`

	var id string
	var helpfulVotes int
	var isVerifiedCustomer bool
	var createdAt time.Time
	err := r.client.DB.QueryRowContext(ctx, query,
		review.BusinessID,
		review.ReviewerID,
		review.Rating,
		nullableString(review.ReviewText),
		nullableInt(review.CulturalAuthenticityRating),
		nullableInt(review.LanguageAccommodationRating),
		pq.Array(review.RecommendedDishes),
		nullableString(review.VisitType),
		nullableString(review.VisitDate),
		review.ModerationStatus,
	).Scan(&id, &helpfulVotes, &isVerifiedCustomer, &createdAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, repository.ErrDuplicateReview
		}
		return nil, fmt.Errorf("review insert failed: %w", err)
	}

	created := *review
	created.ID = id
	created.HelpfulVotes = helpfulVotes
	created.IsVerifiedCustomer = isVerifiedCustomer
	created.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &created, nil
}

func (r *PostgresReviewRepository) AddHelpfulVote(ctx context.Context, reviewID string, delta int) error {
	query := `UPDATE business_reviews
		SET helpful_votes = GREATEST(0, helpful_votes + $2)
		WHERE id = $1`

	result, err := r.client.DB.ExecContext(ctx, query, reviewID, delta)
	if err != nil {
		return fmt.Errorf("helpful vote update failed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("review not found: %s", reviewID)
	}

	return nil
}

func (r *PostgresReviewRepository) ListApprovedByReviewer(ctx context.Context, reviewerID string) ([]model.UserReviewedBusiness, error) {
	query := `SELECT ` + reviewColumns + `, ` + businessColumns + `
		FROM business_reviews r
		JOIN portuguese_businesses b ON b.id = r.business_id
		WHERE r.reviewer_id = $1 AND r.moderation_status = 'approved'
		ORDER BY r.created_at DESC`

	rows, err := r.client.DB.QueryContext(ctx, query, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("reviewer history query failed: %w", err)
	}
	defer rows.Close()

	var results []model.UserReviewedBusiness
	for rows.Next() {
		var rRow reviewRow
		var bRow businessRow
		targets := append(rRow.scanTargets(false), bRow.scanTargets(false)...)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan reviewer history row: %w", err)
		}

		business, err := bRow.ToBusiness()
		if err != nil {
			return nil, err
		}
		results = append(results, model.UserReviewedBusiness{
			Business: business,
			Review:   rRow.ToReview(),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviewer history rows: %w", err)
	}

	return results, nil
}

func nullableInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}
