package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/usecase"
)

// BusinessDirectoryHandler HTTP surface of the Portuguese business directory.
type BusinessDirectoryHandler struct {
	directory *usecase.BusinessDirectoryUsecase
}

func NewBusinessDirectoryHandler(directory *usecase.BusinessDirectoryUsecase) *BusinessDirectoryHandler {
	return &BusinessDirectoryHandler{
		directory: directory,
	}
}

// GetBusinesses lists the catalog with optional filters.
// GET /businesses
func (h *BusinessDirectoryHandler) GetBusinesses(c *gin.Context) {
	var filters model.BusinessSearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	businesses, err := h.directory.GetPortugueseBusinesses(c.Request.Context(), filters)
	if err != nil {
		serverError(c, "failed to load Portuguese businesses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

// SearchBusinesses free-text catalog search.
// GET /businesses/search?q=...
func (h *BusinessDirectoryHandler) SearchBusinesses(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "search query q is required",
		})
		return
	}

	var filters model.BusinessSearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	businesses, err := h.directory.SearchBusinesses(c.Request.Context(), query, filters)
	if err != nil {
		serverError(c, "failed to search Portuguese businesses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

// FindNearby radius search around a coordinate. The coordinate is bound
// through pointers so an absent parameter is distinguishable from a legal
// zero value.
// GET /businesses/nearby
func (h *BusinessDirectoryHandler) FindNearby(c *gin.Context) {
	var coords struct {
		Latitude  *float64 `form:"latitude"`
		Longitude *float64 `form:"longitude"`
	}
	if err := c.ShouldBindQuery(&coords); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid query parameters",
			"details": err.Error(),
		})
		return
	}
	if coords.Latitude == nil || coords.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "latitude and longitude are required",
		})
		return
	}

	var params model.LocationSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	if params.Latitude < -90 || params.Latitude > 90 || params.Longitude < -180 || params.Longitude > 180 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "latitude and longitude must be valid coordinates",
		})
		return
	}

	businesses, err := h.directory.FindNearbyBusinesses(c.Request.Context(), params)
	if err != nil {
		serverError(c, "failed to search nearby Portuguese businesses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

// SearchHybrid combined text + location ranking search.
// POST /businesses/search/hybrid
func (h *BusinessDirectoryHandler) SearchHybrid(c *gin.Context) {
	var params model.HybridSearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	if params.SearchQuery == "" && (params.Latitude == nil || params.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "either search_query or a coordinate pair is required",
		})
		return
	}

	businesses, err := h.directory.SearchBusinessesHybrid(c.Request.Context(), params)
	if err != nil {
		serverError(c, "failed to search Portuguese businesses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

// clustersRequest the map clustering request body.
type clustersRequest struct {
	Bounds    model.MapBounds      `json:"bounds" binding:"required"`
	ZoomLevel int                  `json:"zoom_level" binding:"required"`
	Filters   model.ClusterFilters `json:"filters"`
}

// GetClusters aggregates the viewport into map clusters.
// POST /businesses/clusters
func (h *BusinessDirectoryHandler) GetClusters(c *gin.Context) {
	var req clustersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	clusters, err := h.directory.GetBusinessClustersForMap(c.Request.Context(), req.Bounds, req.ZoomLevel, req.Filters)
	if err != nil {
		if strings.Contains(err.Error(), "bounds") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid map bounds",
				"details": err.Error(),
			})
			return
		}
		serverError(c, "failed to load business map clusters", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clusters": clusters})
}

// GetFeatured premium listings inside their featured window.
// GET /businesses/featured
func (h *BusinessDirectoryHandler) GetFeatured(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 0)

	businesses, err := h.directory.GetFeaturedBusinesses(c.Request.Context(), limit)
	if err != nil {
		serverError(c, "failed to load featured businesses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

// GetCategories business types with counts and display metadata.
// GET /businesses/categories
func (h *BusinessDirectoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.directory.GetBusinessCategories(c.Request.Context())
	if err != nil {
		serverError(c, "failed to load business categories", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetStatistics directory-wide aggregates.
// GET /businesses/statistics
func (h *BusinessDirectoryHandler) GetStatistics(c *gin.Context) {
	stats, err := h.directory.GetBusinessStatistics(c.Request.Context())
	if err != nil {
		serverError(c, "failed to load business statistics", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetTopRated best-rated verified listings.
// GET /businesses/top-rated
func (h *BusinessDirectoryHandler) GetTopRated(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 0)

	businesses, err := h.directory.GetTopRatedBusinesses(c.Request.Context(), limit)
	if err != nil {
		serverError(c, "failed to load top rated businesses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

// GetByNeighborhood catalog listing scoped to one neighborhood.
// GET /businesses/neighborhood/:name
func (h *BusinessDirectoryHandler) GetByNeighborhood(c *gin.Context) {
	neighborhood := c.Param("name")
	limit := parseIntQuery(c, "limit", 0)

	businesses, err := h.directory.GetBusinessesByNeighborhood(c.Request.Context(), neighborhood, limit)
	if err != nil {
		serverError(c, "failed to load Portuguese businesses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

// GetBusiness single listing lookup.
// GET /businesses/:id
func (h *BusinessDirectoryHandler) GetBusiness(c *gin.Context) {
	id := c.Param("id")

	business, err := h.directory.GetBusinessByID(c.Request.Context(), id)
	if err != nil {
		serverError(c, "failed to load business", err)
		return
	}
	if business == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "business not found",
		})
		return
	}

	c.JSON(http.StatusOK, business)
}

// GetBusinessReviews approved reviews for a listing.
// GET /businesses/:id/reviews
func (h *BusinessDirectoryHandler) GetBusinessReviews(c *gin.Context) {
	businessID := c.Param("id")
	limit := parseIntQuery(c, "limit", 0)

	reviews, err := h.directory.GetBusinessReviews(c.Request.Context(), businessID, limit)
	if err != nil {
		serverError(c, "failed to load business reviews", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// RegisterBusiness creates a listing for the signed-in user.
// POST /businesses
func (h *BusinessDirectoryHandler) RegisterBusiness(c *gin.Context) {
	var business model.PortugueseBusiness
	if err := c.ShouldBindJSON(&business); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	if business.BusinessName == "" || business.BusinessType == "" || business.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "business_name, business_type and address are required",
		})
		return
	}

	created, err := h.directory.RegisterBusiness(c.Request.Context(), currentUserID(c), business)
	if err != nil {
		h.writeUsecaseError(c, err, "failed to register business")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateBusiness applies owner edits to a listing.
// PUT /businesses/:id
func (h *BusinessDirectoryHandler) UpdateBusiness(c *gin.Context) {
	businessID := c.Param("id")

	var updates model.BusinessUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.directory.UpdateBusiness(c.Request.Context(), currentUserID(c), businessID, updates)
	if err != nil {
		if strings.Contains(err.Error(), "not the owner") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		h.writeUsecaseError(c, err, "failed to update business")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// AddReview creates a review held for moderation.
// POST /businesses/:id/reviews
func (h *BusinessDirectoryHandler) AddReview(c *gin.Context) {
	var input model.NewBusinessReview
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	input.BusinessID = c.Param("id")

	created, err := h.directory.AddBusinessReview(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		if strings.Contains(err.Error(), "already reviewed") {
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
			return
		}
		h.writeUsecaseError(c, err, "failed to add business review")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// helpfulVoteRequest body of a helpful vote.
type helpfulVoteRequest struct {
	Helpful *bool `json:"helpful" binding:"required"`
}

// VoteHelpful records a helpful / not helpful vote on a review.
// POST /reviews/:id/helpful
func (h *BusinessDirectoryHandler) VoteHelpful(c *gin.Context) {
	reviewID := c.Param("id")

	var req helpfulVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.directory.VoteHelpfulReview(c.Request.Context(), currentUserID(c), reviewID, *req.Helpful); err != nil {
		h.writeUsecaseError(c, err, "failed to record helpful vote")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// GetMyReviews the caller's review history with businesses attached.
// GET /me/reviews
func (h *BusinessDirectoryHandler) GetMyReviews(c *gin.Context) {
	reviewed, err := h.directory.GetUserReviewedBusinesses(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeUsecaseError(c, err, "failed to load reviewed businesses")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviewed_businesses": reviewed})
}

// UploadImage stores a business image and returns its public URL.
// POST /businesses/images
func (h *BusinessDirectoryHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "image file is required",
			"details": err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "failed to read uploaded file",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.directory.UploadBusinessImage(c.Request.Context(), currentUserID(c), fileHeader.Filename, contentType, file)
	if err != nil {
		h.writeUsecaseError(c, err, "failed to upload business image")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (h *BusinessDirectoryHandler) writeUsecaseError(c *gin.Context, err error, message string) {
	if errors.Is(err, usecase.ErrNotAuthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "user not authenticated",
		})
		return
	}
	serverError(c, message, err)
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
