package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lusotown-backend/internal/cache"
	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/usecase"
)

type fakeSearchRepo struct {
	nearbyCalls int
	businesses  []model.PortugueseBusiness
	err         error
}

func (f *fakeSearchRepo) FindNearby(ctx context.Context, params model.LocationSearchParams) ([]model.PortugueseBusiness, error) {
	f.nearbyCalls++
	return f.businesses, f.err
}

func (f *fakeSearchRepo) SearchHybrid(ctx context.Context, params model.HybridSearchParams) ([]model.PortugueseBusiness, error) {
	return f.businesses, f.err
}

func (f *fakeSearchRepo) ClustersForMap(ctx context.Context, bounds model.MapBounds, zoomLevel int, filters model.ClusterFilters) ([]model.BusinessCluster, error) {
	return nil, f.err
}

type fakeStoreRepo struct {
	businesses []model.PortugueseBusiness
	err        error
}

func (f *fakeStoreRepo) List(ctx context.Context, filters model.BusinessSearchFilters) ([]model.PortugueseBusiness, error) {
	return f.businesses, f.err
}

func (f *fakeStoreRepo) SearchByText(ctx context.Context, query string, filters model.BusinessSearchFilters) ([]model.PortugueseBusiness, error) {
	return f.businesses, f.err
}

func (f *fakeStoreRepo) ListFeatured(ctx context.Context, limit int) ([]model.PortugueseBusiness, error) {
	return f.businesses, f.err
}

func (f *fakeStoreRepo) GetByID(ctx context.Context, id string) (*model.PortugueseBusiness, error) {
	return nil, f.err
}

func (f *fakeStoreRepo) CountByType(ctx context.Context) (map[string]int, error) {
	return nil, f.err
}

func (f *fakeStoreRepo) StatsRows(ctx context.Context) ([]model.BusinessStatsRow, error) {
	return nil, f.err
}

func (f *fakeStoreRepo) Insert(ctx context.Context, business *model.PortugueseBusiness) (*model.PortugueseBusiness, error) {
	return business, f.err
}

func (f *fakeStoreRepo) UpdateOwned(ctx context.Context, businessID, ownerID string, updates model.BusinessUpdate) (*model.PortugueseBusiness, error) {
	return nil, f.err
}

type fakeReviewRepo struct {
	inserted *model.BusinessReview
}

func (f *fakeReviewRepo) ListApprovedByBusiness(ctx context.Context, businessID string, limit int) ([]model.BusinessReview, error) {
	return nil, nil
}

func (f *fakeReviewRepo) Insert(ctx context.Context, review *model.BusinessReview) (*model.BusinessReview, error) {
	f.inserted = review
	created := *review
	created.ID = "review-id"
	return &created, nil
}

func (f *fakeReviewRepo) AddHelpfulVote(ctx context.Context, reviewID string, delta int) error {
	return nil
}

func (f *fakeReviewRepo) ListApprovedByReviewer(ctx context.Context, reviewerID string) ([]model.UserReviewedBusiness, error) {
	return nil, nil
}

// fakeAuth stands in for the token middleware on authenticated routes.
func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func setupDirectoryRouter(search *fakeSearchRepo, store *fakeStoreRepo, reviews *fakeReviewRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	directory := usecase.NewBusinessDirectoryUsecase(search, store, reviews, nil, nil, nil, cache.NewMemoryCache())
	h := NewBusinessDirectoryHandler(directory)

	r := gin.New()
	r.GET("/businesses", h.GetBusinesses)
	r.GET("/businesses/nearby", h.FindNearby)
	r.POST("/businesses/:id/reviews", fakeAuth("user-1"), h.AddReview)
	return r
}

func getPath(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddReview_BusinessIDComesFromRoute(t *testing.T) {
	reviews := &fakeReviewRepo{}
	router := setupDirectoryRouter(&fakeSearchRepo{}, &fakeStoreRepo{}, reviews)

	// No business_id in the body; the route parameter supplies it.
	w := postJSON(t, router, "/businesses/b-1/reviews", map[string]interface{}{
		"rating":      5,
		"review_text": "Excelente bacalhau.",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.BusinessReview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "b-1", created.BusinessID)
	require.NotNil(t, reviews.inserted)
	assert.Equal(t, "b-1", reviews.inserted.BusinessID)
}

func TestAddReview_BodyBusinessIDIsOverridden(t *testing.T) {
	reviews := &fakeReviewRepo{}
	router := setupDirectoryRouter(&fakeSearchRepo{}, &fakeStoreRepo{}, reviews)

	w := postJSON(t, router, "/businesses/b-1/reviews", map[string]interface{}{
		"business_id": "someone-elses-business",
		"rating":      4,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, reviews.inserted)
	assert.Equal(t, "b-1", reviews.inserted.BusinessID)
}

func TestFindNearby_RequiresCoordinates(t *testing.T) {
	search := &fakeSearchRepo{}
	router := setupDirectoryRouter(search, &fakeStoreRepo{}, &fakeReviewRepo{})

	w := getPath(t, router, "/businesses/nearby")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "latitude and longitude are required")
	assert.Equal(t, 0, search.nearbyCalls)
}

func TestFindNearby_AcceptsZeroCoordinates(t *testing.T) {
	// 0,0 is a legal coordinate pair, not a missing one.
	search := &fakeSearchRepo{businesses: []model.PortugueseBusiness{{ID: "b-1"}}}
	router := setupDirectoryRouter(search, &fakeStoreRepo{}, &fakeReviewRepo{})

	w := getPath(t, router, "/businesses/nearby?latitude=0&longitude=0")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, search.nearbyCalls)
}

func TestFindNearby_RejectsOutOfRangeCoordinates(t *testing.T) {
	search := &fakeSearchRepo{}
	router := setupDirectoryRouter(search, &fakeStoreRepo{}, &fakeReviewRepo{})

	w := getPath(t, router, "/businesses/nearby?latitude=91&longitude=0")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, search.nearbyCalls)
}

func TestGetBusinesses_BackendErrorsStayOutOfResponse(t *testing.T) {
	store := &fakeStoreRepo{err: errors.New(`pq: relation "portuguese_businesses" does not exist`)}
	router := setupDirectoryRouter(&fakeSearchRepo{}, store, &fakeReviewRepo{})

	w := getPath(t, router, "/businesses")

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "failed to load Portuguese businesses", body["error"])
	assert.NotContains(t, w.Body.String(), "pq:")
	assert.NotContains(t, body, "details")
}
