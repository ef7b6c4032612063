package repository

import (
	"context"
	"errors"

	"lusotown-backend/internal/domain/model"
)

// ErrDuplicateReview one review per (business, reviewer) pair; surfaced when
// the backing unique constraint rejects a second insert.
var ErrDuplicateReview = errors.New("review already exists for this business")

// ReviewRepository relational access to the business_reviews table.
type ReviewRepository interface {
	// ListApprovedByBusiness returns approved reviews for a business, newest
	// first, with the reviewer profile joined in.
	ListApprovedByBusiness(ctx context.Context, businessID string, limit int) ([]model.BusinessReview, error)

	// Insert creates a review; returns ErrDuplicateReview when the reviewer
	// has already reviewed the business.
	Insert(ctx context.Context, review *model.BusinessReview) (*model.BusinessReview, error)

	// AddHelpfulVote shifts helpful_votes by delta (+1 or -1).
	AddHelpfulVote(ctx context.Context, reviewID string, delta int) error

	// ListApprovedByReviewer returns the caller's approved reviews paired with
	// their businesses, newest first.
	ListApprovedByReviewer(ctx context.Context, reviewerID string) ([]model.UserReviewedBusiness, error)
}
