package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/usecase"
)

// EventsHandler HTTP surface of the community events listing.
type EventsHandler struct {
	events *usecase.EventsUsecase
}

func NewEventsHandler(events *usecase.EventsUsecase) *EventsHandler {
	return &EventsHandler{
		events: events,
	}
}

// GetFeaturedEvents featured community events.
// GET /events/featured
func (h *EventsHandler) GetFeaturedEvents(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 0)

	events, err := h.events.GetFeaturedEvents(c.Request.Context(), limit)
	if err != nil {
		serverError(c, "failed to load featured events", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetUpcomingEvents upcoming events with optional filters.
// GET /events/upcoming
func (h *EventsHandler) GetUpcomingEvents(c *gin.Context) {
	var filters model.EventFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	events, err := h.events.GetUpcomingEvents(c.Request.Context(), filters)
	if err != nil {
		serverError(c, "failed to load upcoming events", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
