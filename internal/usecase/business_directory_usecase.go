package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"path"
	"time"

	"github.com/google/uuid"

	"lusotown-backend/internal/cache"
	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/domain/repository"
	repoimpl "lusotown-backend/internal/repository"
)

// Slow-query thresholds per search type, in milliseconds. Searches that
// exceed their threshold are archived for inspection.
const (
	slowNearbyThresholdMs  = 200
	slowHybridThresholdMs  = 300
	slowClusterThresholdMs = 100
)

// Default search parameters applied when the client omits them.
const (
	defaultNearbyRadiusKm = 10.0
	defaultHybridRadiusKm = 50.0
	defaultMaxPriceLevel  = 4
	defaultSearchLimit    = 20
)

// cleanupProbability chance that any one catalog read triggers a cache sweep.
const cleanupProbability = 0.1

// ErrNotAuthenticated returned by mutations invoked without a signed-in user.
var ErrNotAuthenticated = errors.New("user not authenticated")

// ErrDuplicateReview re-exported so handlers can map it without importing the
// repository package.
var ErrDuplicateReview = repository.ErrDuplicateReview

// BusinessDirectoryUsecase the directory search, catalog and review flows,
// fronted by a TTL cache and instrumented with search telemetry.
type BusinessDirectoryUsecase struct {
	searchRepo repository.BusinessSearchRepository
	storeRepo  repository.BusinessStoreRepository
	reviewRepo repository.ReviewRepository
	perfLogger repository.SearchPerformanceLogger
	analytics  repository.SearchAnalyticsRepository
	storage    repository.FileStorageRepository
	cache      cache.Cache

	now       func() time.Time
	randFloat func() float64
}

func NewBusinessDirectoryUsecase(
	searchRepo repository.BusinessSearchRepository,
	storeRepo repository.BusinessStoreRepository,
	reviewRepo repository.ReviewRepository,
	perfLogger repository.SearchPerformanceLogger,
	analytics repository.SearchAnalyticsRepository,
	storage repository.FileStorageRepository,
	c cache.Cache,
) *BusinessDirectoryUsecase {
	return &BusinessDirectoryUsecase{
		searchRepo: searchRepo,
		storeRepo:  storeRepo,
		reviewRepo: reviewRepo,
		perfLogger: perfLogger,
		analytics:  analytics,
		storage:    storage,
		cache:      c,
		now:        time.Now,
		randFloat:  rand.Float64,
	}
}

// WithClock substitutes deterministic time and randomness sources for tests.
func (u *BusinessDirectoryUsecase) WithClock(now func() time.Time, randFloat func() float64) *BusinessDirectoryUsecase {
	u.now = now
	u.randFloat = randFloat
	return u
}

// cacheKey derives a stable key from the method name and its full parameter
// set, so any parameter change produces a distinct cache slot.
func cacheKey(method string, params interface{}) string {
	encoded, err := json.Marshal(params)
	if err != nil {
		// Marshal of our own parameter structs cannot fail; fall back to an
		// uncacheable key rather than panicking.
		return fmt.Sprintf("%s:%d", method, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s:%s", method, encoded)
}

// reportSearch emits performance telemetry and archives the report when the
// search breached its slow threshold. Both paths are best-effort.
func (u *BusinessDirectoryUsecase) reportSearch(ctx context.Context, searchType string, elapsed time.Duration, resultCount int, thresholdMs int64, params map[string]interface{}) {
	elapsedMs := elapsed.Milliseconds()

	if u.perfLogger != nil {
		u.perfLogger.Log(ctx, searchType, elapsedMs, resultCount, params)
	}

	if elapsedMs <= thresholdMs {
		return
	}

	log.Printf("warning: slow %s search took %dms (threshold %dms)", searchType, elapsedMs, thresholdMs)

	if u.analytics == nil {
		return
	}
	report := &model.SlowSearchReport{
		SearchType:      searchType,
		ExecutionTimeMs: elapsedMs,
		ThresholdMs:     thresholdMs,
		ResultCount:     resultCount,
		Params:          params,
	}
	if err := u.analytics.SaveSlowSearchReport(ctx, report); err != nil {
		log.Printf("warning: failed to archive slow search report: %v", err)
	}
}

// FindNearbyBusinesses runs the radius search with caching and telemetry.
func (u *BusinessDirectoryUsecase) FindNearbyBusinesses(ctx context.Context, params model.LocationSearchParams) ([]model.PortugueseBusiness, error) {
	if params.RadiusKm <= 0 {
		params.RadiusKm = defaultNearbyRadiusKm
	}
	if params.MaxPriceLevel <= 0 {
		params.MaxPriceLevel = defaultMaxPriceLevel
	}
	if params.Limit <= 0 {
		params.Limit = defaultSearchLimit
	}

	key := cacheKey("findNearby", params)
	if cached, ok := u.cache.Get(key); ok {
		return cached.([]model.PortugueseBusiness), nil
	}

	start := u.now()
	businesses, err := u.searchRepo.FindNearby(ctx, params)
	elapsed := u.now().Sub(start)
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby Portuguese businesses: %w", err)
	}

	u.reportSearch(ctx, "nearby", elapsed, len(businesses), slowNearbyThresholdMs, map[string]interface{}{
		"latitude":  params.Latitude,
		"longitude": params.Longitude,
		"radius_km": params.RadiusKm,
	})

	u.cache.Set(key, businesses, cache.DefaultTTL)
	return businesses, nil
}

// SearchBusinessesHybrid runs the combined text + location ranking search.
func (u *BusinessDirectoryUsecase) SearchBusinessesHybrid(ctx context.Context, params model.HybridSearchParams) ([]model.PortugueseBusiness, error) {
	if params.RadiusKm <= 0 {
		params.RadiusKm = defaultHybridRadiusKm
	}
	if params.Limit <= 0 {
		params.Limit = defaultSearchLimit
	}

	key := cacheKey("searchHybrid", params)
	if cached, ok := u.cache.Get(key); ok {
		return cached.([]model.PortugueseBusiness), nil
	}

	start := u.now()
	businesses, err := u.searchRepo.SearchHybrid(ctx, params)
	elapsed := u.now().Sub(start)
	if err != nil {
		return nil, fmt.Errorf("failed to search Portuguese businesses: %w", err)
	}

	u.reportSearch(ctx, "hybrid", elapsed, len(businesses), slowHybridThresholdMs, map[string]interface{}{
		"search_query": params.SearchQuery,
		"radius_km":    params.RadiusKm,
	})

	u.cache.Set(key, businesses, cache.DefaultTTL)
	return businesses, nil
}

// GetBusinessClustersForMap aggregates the viewport into map clusters. Cluster
// data is cached on a shorter TTL than catalog listings.
func (u *BusinessDirectoryUsecase) GetBusinessClustersForMap(ctx context.Context, bounds model.MapBounds, zoomLevel int, filters model.ClusterFilters) ([]model.BusinessCluster, error) {
	if err := repoimpl.ValidateMapBounds(bounds); err != nil {
		return nil, err
	}
	bounds = repoimpl.PadMapBounds(bounds)

	type clusterRequest struct {
		Bounds  model.MapBounds      `json:"bounds"`
		Zoom    int                  `json:"zoom"`
		Filters model.ClusterFilters `json:"filters"`
	}
	key := cacheKey("clustersForMap", clusterRequest{Bounds: bounds, Zoom: zoomLevel, Filters: filters})
	if cached, ok := u.cache.Get(key); ok {
		return cached.([]model.BusinessCluster), nil
	}

	start := u.now()
	clusters, err := u.searchRepo.ClustersForMap(ctx, bounds, zoomLevel, filters)
	elapsed := u.now().Sub(start)
	if err != nil {
		return nil, fmt.Errorf("failed to load business map clusters: %w", err)
	}

	centerLat, centerLng := repoimpl.MapBoundsCenter(bounds)
	u.reportSearch(ctx, "clusters", elapsed, len(clusters), slowClusterThresholdMs, map[string]interface{}{
		"center_lat": centerLat,
		"center_lng": centerLng,
		"zoom":       zoomLevel,
	})

	u.cache.Set(key, clusters, cache.MapDataTTL)
	return clusters, nil
}

// GetPortugueseBusinesses the catalog listing. When coordinates are present
// the request is delegated to the radius search; otherwise the relational
// catalog is queried with the remaining filters.
func (u *BusinessDirectoryUsecase) GetPortugueseBusinesses(ctx context.Context, filters model.BusinessSearchFilters) ([]model.PortugueseBusiness, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultSearchLimit
	}

	// Occasional sweep keeps the cache bounded without a background timer.
	if u.randFloat() < cleanupProbability {
		u.cache.Cleanup()
	}

	if filters.Latitude != nil && filters.Longitude != nil {
		// Leave VerifiedOnly nil unless explicitly requested so the radius
		// search keeps its own verified-first default.
		var verifiedOnly *bool
		if filters.VerifiedOnly {
			v := true
			verifiedOnly = &v
		}
		return u.FindNearbyBusinesses(ctx, model.LocationSearchParams{
			Latitude:              *filters.Latitude,
			Longitude:             *filters.Longitude,
			RadiusKm:              filters.RadiusKm,
			BusinessTypes:         businessTypesFromFilter(filters.BusinessType),
			MinRating:             filters.MinRating,
			MaxPriceLevel:         filters.MaxPriceLevel,
			CulturalFocus:         filters.CulturalFocus,
			PortugueseSpecialties: filters.PortugueseSpecialties,
			VerifiedOnly:          verifiedOnly,
			OpenNow:               filters.OpenNow,
			Limit:                 filters.Limit,
			Offset:                filters.Offset,
		})
	}

	// Only the raw rows are cached; the open state depends on the wall clock
	// and is recomputed on every read, cache hit or not.
	key := cacheKey("getBusinesses", filters)
	var businesses []model.PortugueseBusiness
	if cached, ok := u.cache.Get(key); ok {
		businesses = cached.([]model.PortugueseBusiness)
	} else {
		loaded, err := u.storeRepo.List(ctx, filters)
		if err != nil {
			return nil, fmt.Errorf("failed to load Portuguese businesses: %w", err)
		}
		u.cache.Set(key, loaded, cache.DefaultTTL)
		businesses = loaded
	}

	return u.applyOpenNow(businesses, filters.OpenNow), nil
}

// applyOpenNow annotates every listing with its current open state and, when
// the filter is on, drops closed listings. Listings without configured hours
// count as open. Operates on copies so cached rows stay untouched.
func (u *BusinessDirectoryUsecase) applyOpenNow(businesses []model.PortugueseBusiness, filterOpen bool) []model.PortugueseBusiness {
	now := u.now()
	result := make([]model.PortugueseBusiness, 0, len(businesses))
	for _, business := range businesses {
		open := business.BusinessHours.IsOpenAt(now)
		isOpen := open
		business.IsOpen = &isOpen
		if filterOpen && !open {
			continue
		}
		result = append(result, business)
	}
	return result
}

func businessTypesFromFilter(businessType string) []string {
	if businessType == "" {
		return nil
	}
	return []string{businessType}
}

// SearchBusinesses free-text catalog search.
func (u *BusinessDirectoryUsecase) SearchBusinesses(ctx context.Context, query string, filters model.BusinessSearchFilters) ([]model.PortugueseBusiness, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultSearchLimit
	}

	type textSearch struct {
		Query   string                      `json:"query"`
		Filters model.BusinessSearchFilters `json:"filters"`
	}
	key := cacheKey("searchBusinesses", textSearch{Query: query, Filters: filters})
	if cached, ok := u.cache.Get(key); ok {
		return cached.([]model.PortugueseBusiness), nil
	}

	businesses, err := u.storeRepo.SearchByText(ctx, query, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search Portuguese businesses: %w", err)
	}

	u.cache.Set(key, businesses, cache.DefaultTTL)
	return businesses, nil
}

// defaultFeaturedLimit featured carousel size.
const defaultFeaturedLimit = 6

// GetFeaturedBusinesses premium listings still inside their featured window.
func (u *BusinessDirectoryUsecase) GetFeaturedBusinesses(ctx context.Context, limit int) ([]model.PortugueseBusiness, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}

	key := cacheKey("featuredBusinesses", limit)
	if cached, ok := u.cache.Get(key); ok {
		return cached.([]model.PortugueseBusiness), nil
	}

	businesses, err := u.storeRepo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load featured businesses: %w", err)
	}

	u.cache.Set(key, businesses, cache.DefaultTTL)
	return businesses, nil
}

// GetBusinessByID returns (nil, nil) when no listing matches. The cache holds
// the listing by value; every hit returns a private copy so callers can never
// mutate each other's responses.
func (u *BusinessDirectoryUsecase) GetBusinessByID(ctx context.Context, id string) (*model.PortugueseBusiness, error) {
	key := cacheKey("businessByID", id)
	if cached, ok := u.cache.Get(key); ok {
		business := cached.(model.PortugueseBusiness)
		return &business, nil
	}

	business, err := u.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	if business == nil {
		return nil, nil
	}

	u.cache.Set(key, *business, cache.DefaultTTL)
	return business, nil
}

// GetBusinessesByNeighborhood catalog listing scoped to one neighborhood.
func (u *BusinessDirectoryUsecase) GetBusinessesByNeighborhood(ctx context.Context, neighborhood string, limit int) ([]model.PortugueseBusiness, error) {
	return u.GetPortugueseBusinesses(ctx, model.BusinessSearchFilters{
		Neighborhood: neighborhood,
		Limit:        limit,
	})
}

// GetTopRatedBusinesses verified listings with enough reviews to rank.
func (u *BusinessDirectoryUsecase) GetTopRatedBusinesses(ctx context.Context, limit int) ([]model.PortugueseBusiness, error) {
	return u.GetPortugueseBusinesses(ctx, model.BusinessSearchFilters{
		MinRating:    4.0,
		VerifiedOnly: true,
		Limit:        limit,
	})
}

// GetBusinessCategories business types with listing counts and display metadata.
func (u *BusinessDirectoryUsecase) GetBusinessCategories(ctx context.Context) ([]model.BusinessCategory, error) {
	key := cacheKey("businessCategories", nil)
	if cached, ok := u.cache.Get(key); ok {
		return cached.([]model.BusinessCategory), nil
	}

	counts, err := u.storeRepo.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load business categories: %w", err)
	}

	var categories []model.BusinessCategory
	for businessType, count := range counts {
		meta := model.GetCategoryMetadata(businessType)
		categories = append(categories, model.BusinessCategory{
			Type:          businessType,
			Name:          meta.Name,
			Description:   meta.Description,
			Icon:          meta.Icon,
			BusinessCount: count,
		})
	}

	u.cache.Set(key, categories, cache.DefaultTTL)
	return categories, nil
}

// GetBusinessStatistics directory-wide aggregates computed from a minimal
// projection of all listings.
func (u *BusinessDirectoryUsecase) GetBusinessStatistics(ctx context.Context) (*model.BusinessStatistics, error) {
	key := cacheKey("businessStatistics", nil)
	if cached, ok := u.cache.Get(key); ok {
		return cached.(*model.BusinessStatistics), nil
	}

	rows, err := u.storeRepo.StatsRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load business statistics: %w", err)
	}

	stats := &model.BusinessStatistics{
		ByNeighborhood: make(map[string]int),
		ByType:         make(map[string]int),
	}

	var ratingSum float64
	var ratedCount int
	for _, row := range rows {
		if row.VerifiedStatus == model.StatusRejected {
			continue
		}
		stats.TotalBusinesses++
		if row.VerifiedStatus == model.StatusVerified || row.VerifiedStatus == model.StatusPremium {
			stats.VerifiedBusinesses++
		}
		stats.TotalReviews += row.ReviewCount
		if row.ReviewCount > 0 {
			ratingSum += row.AverageRating
			ratedCount++
		}
		if row.Neighborhood != "" {
			stats.ByNeighborhood[row.Neighborhood]++
		}
		stats.ByType[row.BusinessType]++
	}
	if ratedCount > 0 {
		stats.AverageRating = ratingSum / float64(ratedCount)
	}

	u.cache.Set(key, stats, cache.DefaultTTL)
	return stats, nil
}

// GetBusinessReviews approved reviews for a listing, newest first.
func (u *BusinessDirectoryUsecase) GetBusinessReviews(ctx context.Context, businessID string, limit int) ([]model.BusinessReview, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	reviews, err := u.reviewRepo.ListApprovedByBusiness(ctx, businessID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load business reviews: %w", err)
	}
	return reviews, nil
}

// GetUserReviewedBusinesses the caller's review history with businesses attached.
func (u *BusinessDirectoryUsecase) GetUserReviewedBusinesses(ctx context.Context, userID string) ([]model.UserReviewedBusiness, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	reviewed, err := u.reviewRepo.ListApprovedByReviewer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviewed businesses: %w", err)
	}
	return reviewed, nil
}

// RegisterBusiness creates a listing for the signed-in user. New listings
// always start pending with zeroed rating aggregates regardless of what the
// client sent.
func (u *BusinessDirectoryUsecase) RegisterBusiness(ctx context.Context, userID string, business model.PortugueseBusiness) (*model.PortugueseBusiness, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	business.OwnerID = userID
	business.VerifiedStatus = model.StatusPending
	business.AverageRating = 0
	business.ReviewCount = 0
	business.FeaturedUntil = ""

	created, err := u.storeRepo.Insert(ctx, &business)
	if err != nil {
		return nil, fmt.Errorf("failed to register business: %w", err)
	}
	return created, nil
}

// UpdateBusiness applies owner edits. Ownership is enforced by the update
// query itself; a nil result means the listing is missing or owned by
// someone else.
func (u *BusinessDirectoryUsecase) UpdateBusiness(ctx context.Context, userID, businessID string, updates model.BusinessUpdate) (*model.PortugueseBusiness, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	updated, err := u.storeRepo.UpdateOwned(ctx, businessID, userID, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update business: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("business not found or you are not the owner")
	}
	return updated, nil
}

// AddBusinessReview creates a review held for moderation.
func (u *BusinessDirectoryUsecase) AddBusinessReview(ctx context.Context, userID string, input model.NewBusinessReview) (*model.BusinessReview, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	review := &model.BusinessReview{
		BusinessID:                  input.BusinessID,
		ReviewerID:                  userID,
		Rating:                      input.Rating,
		ReviewText:                  input.ReviewText,
		CulturalAuthenticityRating:  input.CulturalAuthenticityRating,
		LanguageAccommodationRating: input.LanguageAccommodationRating,
		RecommendedDishes:           input.RecommendedDishes,
		VisitType:                   input.VisitType,
		VisitDate:                   input.VisitDate,
		ModerationStatus:            model.ModerationPending,
	}

	created, err := u.reviewRepo.Insert(ctx, review)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, fmt.Errorf("you have already reviewed this business")
		}
		return nil, fmt.Errorf("failed to add business review: %w", err)
	}
	return created, nil
}

// VoteHelpfulReview shifts a review's helpful vote count up or down.
func (u *BusinessDirectoryUsecase) VoteHelpfulReview(ctx context.Context, userID, reviewID string, helpful bool) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	delta := 1
	if !helpful {
		delta = -1
	}
	if err := u.reviewRepo.AddHelpfulVote(ctx, reviewID, delta); err != nil {
		return fmt.Errorf("failed to record helpful vote: %w", err)
	}
	return nil
}

// UploadBusinessImage stores an image under a generated name and returns its
// public URL.
func (u *BusinessDirectoryUsecase) UploadBusinessImage(ctx context.Context, userID, filename, contentType string, data io.Reader) (string, error) {
	if userID == "" {
		return "", ErrNotAuthenticated
	}

	ext := path.Ext(filename)
	objectPath := fmt.Sprintf("%s/%s%s", userID, uuid.New().String(), ext)

	url, err := u.storage.Upload(ctx, repository.BucketBusinessImages, objectPath, contentType, data)
	if err != nil {
		return "", fmt.Errorf("failed to upload business image: %w", err)
	}
	return url, nil
}
