package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lusotown-backend/internal/domain/model"
)

func TestRiskScore_TourLowThreatNoFlags(t *testing.T) {
	svc := NewRiskScoreService()

	result := svc.Calculate(model.RiskAssessment{
		ServicePurpose: "tour",
		ThreatLevel:    model.ThreatLow,
	})

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, "low", result.RiskLevel)
}

func TestRiskScore_DiplomaticHighThreatIsCapped(t *testing.T) {
	svc := NewRiskScoreService()

	// diplomatic (6) + known risks (3) + media attention (3) = 12, x4 = 48, capped.
	result := svc.Calculate(model.RiskAssessment{
		ServicePurpose: "diplomatic",
		KnownRisks:     true,
		MediaAttention: true,
		ThreatLevel:    model.ThreatHigh,
	})

	assert.Equal(t, MaxRiskScore, result.Score)
	assert.Equal(t, "high", result.RiskLevel)
}

func TestRiskScore_UnknownPurposeDefaultsToOther(t *testing.T) {
	svc := NewRiskScoreService()

	result := svc.Calculate(model.RiskAssessment{
		ServicePurpose: "something-new",
		ThreatLevel:    model.ThreatLow,
	})

	assert.Equal(t, 3, result.Score)
}

func TestRiskScore_UnknownThreatDoublesLikeMedium(t *testing.T) {
	svc := NewRiskScoreService()

	unknown := svc.Calculate(model.RiskAssessment{
		ServicePurpose: "family",
		ThreatLevel:    model.ThreatUnknown,
	})
	medium := svc.Calculate(model.RiskAssessment{
		ServicePurpose: "family",
		ThreatLevel:    model.ThreatMedium,
	})

	assert.Equal(t, medium.Score, unknown.Score)
	assert.Equal(t, 4, unknown.Score)
}

func TestRiskScore_AllFlagsAdditive(t *testing.T) {
	svc := NewRiskScoreService()

	// nightlife (4) + 3 + 2 + 3 + 4 + 5 = 21, x1 = 21, capped at 20.
	result := svc.Calculate(model.RiskAssessment{
		ServicePurpose:    "nightlife",
		KnownRisks:        true,
		PublicEvent:       true,
		MediaAttention:    true,
		PreviousIncidents: true,
		ArmedProtection:   true,
		ThreatLevel:       model.ThreatLow,
	})

	assert.Equal(t, MaxRiskScore, result.Score)
}
