package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/domain/service"
)

// RiskAssessmentHandler scores SIA compliance questionnaires for
// close-protection bookings.
type RiskAssessmentHandler struct {
	scorer *service.RiskScoreService
}

func NewRiskAssessmentHandler(scorer *service.RiskScoreService) *RiskAssessmentHandler {
	return &RiskAssessmentHandler{
		scorer: scorer,
	}
}

// ScoreAssessment computes the risk score for a questionnaire.
// POST /risk-assessments/score
func (h *RiskAssessmentHandler) ScoreAssessment(c *gin.Context) {
	var assessment model.RiskAssessment
	if err := c.ShouldBindJSON(&assessment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	result := h.scorer.Calculate(assessment)
	c.JSON(http.StatusOK, result)
}
