package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lusotown-backend/internal/cache"
	"lusotown-backend/internal/domain/model"
)

type fakeSearchRepo struct {
	nearbyCalls  int
	hybridCalls  int
	clusterCalls int
	businesses   []model.PortugueseBusiness
	clusters     []model.BusinessCluster
	err          error
}

func (f *fakeSearchRepo) FindNearby(ctx context.Context, params model.LocationSearchParams) ([]model.PortugueseBusiness, error) {
	f.nearbyCalls++
	return f.businesses, f.err
}

func (f *fakeSearchRepo) SearchHybrid(ctx context.Context, params model.HybridSearchParams) ([]model.PortugueseBusiness, error) {
	f.hybridCalls++
	return f.businesses, f.err
}

func (f *fakeSearchRepo) ClustersForMap(ctx context.Context, bounds model.MapBounds, zoomLevel int, filters model.ClusterFilters) ([]model.BusinessCluster, error) {
	f.clusterCalls++
	return f.clusters, f.err
}

type fakeStoreRepo struct {
	listCalls  int
	businesses []model.PortugueseBusiness
	statsRows  []model.BusinessStatsRow
	counts     map[string]int
	inserted   *model.PortugueseBusiness
	updated    *model.PortugueseBusiness
	err        error
}

func (f *fakeStoreRepo) List(ctx context.Context, filters model.BusinessSearchFilters) ([]model.PortugueseBusiness, error) {
	f.listCalls++
	return f.businesses, f.err
}

func (f *fakeStoreRepo) SearchByText(ctx context.Context, query string, filters model.BusinessSearchFilters) ([]model.PortugueseBusiness, error) {
	return f.businesses, f.err
}

func (f *fakeStoreRepo) ListFeatured(ctx context.Context, limit int) ([]model.PortugueseBusiness, error) {
	return f.businesses, f.err
}

func (f *fakeStoreRepo) GetByID(ctx context.Context, id string) (*model.PortugueseBusiness, error) {
	if len(f.businesses) == 0 {
		return nil, f.err
	}
	return &f.businesses[0], f.err
}

func (f *fakeStoreRepo) CountByType(ctx context.Context) (map[string]int, error) {
	return f.counts, f.err
}

func (f *fakeStoreRepo) StatsRows(ctx context.Context) ([]model.BusinessStatsRow, error) {
	return f.statsRows, f.err
}

func (f *fakeStoreRepo) Insert(ctx context.Context, business *model.PortugueseBusiness) (*model.PortugueseBusiness, error) {
	f.inserted = business
	created := *business
	created.ID = "new-id"
	return &created, f.err
}

func (f *fakeStoreRepo) UpdateOwned(ctx context.Context, businessID, ownerID string, updates model.BusinessUpdate) (*model.PortugueseBusiness, error) {
	return f.updated, f.err
}

type fakeReviewRepo struct {
	insertErr error
	inserted  *model.BusinessReview
	votes     map[string]int
}

func (f *fakeReviewRepo) ListApprovedByBusiness(ctx context.Context, businessID string, limit int) ([]model.BusinessReview, error) {
	return nil, nil
}

func (f *fakeReviewRepo) Insert(ctx context.Context, review *model.BusinessReview) (*model.BusinessReview, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = review
	created := *review
	created.ID = "review-id"
	return &created, nil
}

func (f *fakeReviewRepo) AddHelpfulVote(ctx context.Context, reviewID string, delta int) error {
	if f.votes == nil {
		f.votes = make(map[string]int)
	}
	f.votes[reviewID] += delta
	return nil
}

func (f *fakeReviewRepo) ListApprovedByReviewer(ctx context.Context, reviewerID string) ([]model.UserReviewedBusiness, error) {
	return nil, nil
}

func newTestUsecase(search *fakeSearchRepo, store *fakeStoreRepo, reviews *fakeReviewRepo, now func() time.Time) *BusinessDirectoryUsecase {
	u := NewBusinessDirectoryUsecase(search, store, reviews, nil, nil, nil, cache.NewMemoryCacheWithClock(now))
	// Disable the probabilistic sweep so call counts are deterministic.
	return u.WithClock(now, func() float64 { return 1.0 })
}

func fixedClock(t time.Time) (func() time.Time, *time.Time) {
	current := t
	return func() time.Time { return current }, &current
}

func TestFindNearbyBusinesses_CachesWithinTTL(t *testing.T) {
	now, current := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	search := &fakeSearchRepo{businesses: []model.PortugueseBusiness{{ID: "b-1"}}}
	u := newTestUsecase(search, &fakeStoreRepo{}, &fakeReviewRepo{}, now)

	params := model.LocationSearchParams{Latitude: 51.5, Longitude: -0.12}

	first, err := u.FindNearbyBusinesses(context.Background(), params)
	require.NoError(t, err)
	second, err := u.FindNearbyBusinesses(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, search.nearbyCalls)

	// Past the TTL the backend is hit again.
	*current = current.Add(16 * time.Minute)
	_, err = u.FindNearbyBusinesses(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 2, search.nearbyCalls)
}

func TestFindNearbyBusinesses_DistinctParamsMissCache(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	search := &fakeSearchRepo{}
	u := newTestUsecase(search, &fakeStoreRepo{}, &fakeReviewRepo{}, now)

	_, err := u.FindNearbyBusinesses(context.Background(), model.LocationSearchParams{Latitude: 51.5, Longitude: -0.12})
	require.NoError(t, err)
	_, err = u.FindNearbyBusinesses(context.Background(), model.LocationSearchParams{Latitude: 51.5, Longitude: -0.12, RadiusKm: 25})
	require.NoError(t, err)

	assert.Equal(t, 2, search.nearbyCalls)
}

func TestGetPortugueseBusinesses_DelegatesWhenCoordinatesPresent(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	search := &fakeSearchRepo{}
	store := &fakeStoreRepo{}
	u := newTestUsecase(search, store, &fakeReviewRepo{}, now)

	lat, lng := 51.5, -0.12
	_, err := u.GetPortugueseBusinesses(context.Background(), model.BusinessSearchFilters{Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)

	assert.Equal(t, 1, search.nearbyCalls)
	assert.Equal(t, 0, store.listCalls)
}

func TestGetPortugueseBusinesses_OpenNowFiltersClosedListings(t *testing.T) {
	// Monday 12:00 UTC.
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	store := &fakeStoreRepo{businesses: []model.PortugueseBusiness{
		{ID: "open", BusinessHours: model.BusinessHours{
			"monday": {Open: "09:00", Close: "17:00"},
		}},
		{ID: "closed", BusinessHours: model.BusinessHours{
			"monday": {Closed: true},
		}},
		{ID: "no-hours"},
	}}
	u := newTestUsecase(&fakeSearchRepo{}, store, &fakeReviewRepo{}, now)

	businesses, err := u.GetPortugueseBusinesses(context.Background(), model.BusinessSearchFilters{OpenNow: true})
	require.NoError(t, err)

	require.Len(t, businesses, 2)
	assert.Equal(t, "open", businesses[0].ID)
	assert.Equal(t, "no-hours", businesses[1].ID)
	require.NotNil(t, businesses[0].IsOpen)
	assert.True(t, *businesses[0].IsOpen)
}

func TestGetPortugueseBusinesses_OpenStateRecomputedOnCacheHit(t *testing.T) {
	// Monday 16:50 UTC, ten minutes before closing.
	now, current := fixedClock(time.Date(2025, 3, 10, 16, 50, 0, 0, time.UTC))
	store := &fakeStoreRepo{businesses: []model.PortugueseBusiness{
		{ID: "b-1", BusinessHours: model.BusinessHours{
			"monday": {Open: "09:00", Close: "17:00"},
		}},
	}}
	u := newTestUsecase(&fakeSearchRepo{}, store, &fakeReviewRepo{}, now)

	first, err := u.GetPortugueseBusinesses(context.Background(), model.BusinessSearchFilters{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.NotNil(t, first[0].IsOpen)
	assert.True(t, *first[0].IsOpen)

	// Closing time passes while the cached rows are still fresh. The cache
	// hit must not serve the stale open flag.
	*current = current.Add(10 * time.Minute)
	second, err := u.GetPortugueseBusinesses(context.Background(), model.BusinessSearchFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, store.listCalls)
	require.Len(t, second, 1)
	require.NotNil(t, second[0].IsOpen)
	assert.False(t, *second[0].IsOpen)

	// And the open-now filter drops the listing outright.
	filtered, err := u.GetPortugueseBusinesses(context.Background(), model.BusinessSearchFilters{OpenNow: true})
	require.NoError(t, err)
	assert.Empty(t, filtered)
}

func TestGetPortugueseBusinesses_ProbabilisticCleanup(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	memCache := cache.NewMemoryCacheWithClock(now)
	u := NewBusinessDirectoryUsecase(&fakeSearchRepo{}, &fakeStoreRepo{}, &fakeReviewRepo{}, nil, nil, nil, memCache).
		WithClock(now, func() float64 { return 0.05 })

	// Seed an already-expired entry, then trigger a read that should sweep it.
	memCache.Set("stale", "value", -time.Minute)
	_, err := u.GetPortugueseBusinesses(context.Background(), model.BusinessSearchFilters{})
	require.NoError(t, err)

	// Only the freshly cached listing remains; the stale entry was swept.
	assert.Equal(t, 1, memCache.Len())
}

func TestGetBusinessByID_CacheHitsAreIsolatedCopies(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	store := &fakeStoreRepo{businesses: []model.PortugueseBusiness{
		{ID: "b-1", BusinessName: "Casa do Bacalhau"},
	}}
	u := newTestUsecase(&fakeSearchRepo{}, store, &fakeReviewRepo{}, now)

	first, err := u.GetBusinessByID(context.Background(), "b-1")
	require.NoError(t, err)
	require.NotNil(t, first)

	// One caller mutating its response must not leak into later reads.
	first.BusinessName = "mangled"

	second, err := u.GetBusinessByID(context.Background(), "b-1")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "Casa do Bacalhau", second.BusinessName)

	second.BusinessName = "mangled again"
	third, err := u.GetBusinessByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "Casa do Bacalhau", third.BusinessName)
}

func TestRegisterBusiness_ForcesPendingAndZeroedAggregates(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	store := &fakeStoreRepo{}
	u := newTestUsecase(&fakeSearchRepo{}, store, &fakeReviewRepo{}, now)

	created, err := u.RegisterBusiness(context.Background(), "user-1", model.PortugueseBusiness{
		BusinessName:   "Pastelaria Central",
		VerifiedStatus: model.StatusPremium,
		AverageRating:  5,
		ReviewCount:    99,
	})
	require.NoError(t, err)

	assert.Equal(t, "new-id", created.ID)
	assert.Equal(t, "user-1", store.inserted.OwnerID)
	assert.Equal(t, model.StatusPending, store.inserted.VerifiedStatus)
	assert.Zero(t, store.inserted.AverageRating)
	assert.Zero(t, store.inserted.ReviewCount)
}

func TestRegisterBusiness_RequiresAuthentication(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	u := newTestUsecase(&fakeSearchRepo{}, &fakeStoreRepo{}, &fakeReviewRepo{}, now)

	_, err := u.RegisterBusiness(context.Background(), "", model.PortugueseBusiness{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestUpdateBusiness_NilResultMeansNotOwner(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	u := newTestUsecase(&fakeSearchRepo{}, &fakeStoreRepo{updated: nil}, &fakeReviewRepo{}, now)

	name := "New Name"
	_, err := u.UpdateBusiness(context.Background(), "user-1", "b-1", model.BusinessUpdate{BusinessName: &name})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not the owner")
}

func TestAddBusinessReview_MapsDuplicateToConflictMessage(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	reviews := &fakeReviewRepo{insertErr: ErrDuplicateReview}
	u := newTestUsecase(&fakeSearchRepo{}, &fakeStoreRepo{}, reviews, now)

	_, err := u.AddBusinessReview(context.Background(), "user-1", model.NewBusinessReview{BusinessID: "b-1", Rating: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already reviewed")
}

func TestAddBusinessReview_StartsPendingModeration(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	reviews := &fakeReviewRepo{}
	u := newTestUsecase(&fakeSearchRepo{}, &fakeStoreRepo{}, reviews, now)

	created, err := u.AddBusinessReview(context.Background(), "user-1", model.NewBusinessReview{BusinessID: "b-1", Rating: 4})
	require.NoError(t, err)

	assert.Equal(t, model.ModerationPending, created.ModerationStatus)
	assert.Equal(t, "user-1", reviews.inserted.ReviewerID)
}

func TestVoteHelpfulReview_Deltas(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	reviews := &fakeReviewRepo{}
	u := newTestUsecase(&fakeSearchRepo{}, &fakeStoreRepo{}, reviews, now)

	require.NoError(t, u.VoteHelpfulReview(context.Background(), "user-1", "r-1", true))
	require.NoError(t, u.VoteHelpfulReview(context.Background(), "user-1", "r-1", false))
	require.NoError(t, u.VoteHelpfulReview(context.Background(), "user-1", "r-1", true))

	assert.Equal(t, 1, reviews.votes["r-1"])
}

func TestGetBusinessClustersForMap_RejectsInvalidBounds(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	u := newTestUsecase(&fakeSearchRepo{}, &fakeStoreRepo{}, &fakeReviewRepo{}, now)

	inverted := model.MapBounds{South: 51.6, West: -0.2, North: 51.4, East: 0.1}
	_, err := u.GetBusinessClustersForMap(context.Background(), inverted, 12, model.ClusterFilters{})
	assert.Error(t, err)
}

func TestGetBusinessStatistics_Aggregates(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	store := &fakeStoreRepo{statsRows: []model.BusinessStatsRow{
		{VerifiedStatus: model.StatusVerified, AverageRating: 4.0, ReviewCount: 10, Neighborhood: "Stockwell", BusinessType: model.CategoryRestaurant},
		{VerifiedStatus: model.StatusPremium, AverageRating: 5.0, ReviewCount: 20, Neighborhood: "Stockwell", BusinessType: model.CategoryCafe},
		{VerifiedStatus: model.StatusPending, AverageRating: 0, ReviewCount: 0, Neighborhood: "Vauxhall", BusinessType: model.CategoryCafe},
		{VerifiedStatus: model.StatusRejected, AverageRating: 1.0, ReviewCount: 5, Neighborhood: "Vauxhall", BusinessType: model.CategoryBar},
	}}
	u := newTestUsecase(&fakeSearchRepo{}, store, &fakeReviewRepo{}, now)

	stats, err := u.GetBusinessStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalBusinesses)
	assert.Equal(t, 2, stats.VerifiedBusinesses)
	assert.Equal(t, 30, stats.TotalReviews)
	assert.InDelta(t, 4.5, stats.AverageRating, 1e-9)
	assert.Equal(t, 2, stats.ByNeighborhood["Stockwell"])
	assert.Equal(t, 2, stats.ByType[model.CategoryCafe])
}

func TestGetBusinessCategories_UsesDisplayMetadata(t *testing.T) {
	now, _ := fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	store := &fakeStoreRepo{counts: map[string]int{model.CategoryBakery: 7}}
	u := newTestUsecase(&fakeSearchRepo{}, store, &fakeReviewRepo{}, now)

	categories, err := u.GetBusinessCategories(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 1)
	assert.Equal(t, model.CategoryBakery, categories[0].Type)
	assert.Equal(t, "Bakeries", categories[0].Name)
	assert.Equal(t, 7, categories[0].BusinessCount)
}
