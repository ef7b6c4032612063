package service

import (
	"lusotown-backend/internal/domain/model"
)

// MaxRiskScore hard cap on the computed score.
const MaxRiskScore = 20

// riskByPurpose base score per service purpose. Unknown purposes score as "other".
var riskByPurpose = map[string]int{
	"tour":                1,
	"shopping":            1,
	"airport-transfer":    2,
	"event-escort":        3,
	"business-meeting":    3,
	"family":              2,
	"nightlife":           4,
	"personal-protection": 5,
	"diplomatic":          6,
	"other":               3,
}

// threatMultiplier scales the additive score by the reported threat level.
// An unreported level is treated like medium.
var threatMultiplier = map[string]int{
	model.ThreatLow:     1,
	model.ThreatMedium:  2,
	model.ThreatHigh:    4,
	model.ThreatUnknown: 2,
}

// RiskScoreService computes the SIA compliance risk score for a protection
// booking. The formula is business policy encoded as arithmetic: a base score
// by purpose, additive penalties for risk flags, a threat-level multiplier
// and a hard cap.
type RiskScoreService struct{}

func NewRiskScoreService() *RiskScoreService {
	return &RiskScoreService{}
}

func (s *RiskScoreService) Calculate(assessment model.RiskAssessment) model.RiskScoreResult {
	score, ok := riskByPurpose[assessment.ServicePurpose]
	if !ok {
		score = riskByPurpose["other"]
	}

	if assessment.KnownRisks {
		score += 3
	}
	if assessment.PublicEvent {
		score += 2
	}
	if assessment.MediaAttention {
		score += 3
	}
	if assessment.PreviousIncidents {
		score += 4
	}
	if assessment.ArmedProtection {
		score += 5
	}

	multiplier, ok := threatMultiplier[assessment.ThreatLevel]
	if !ok {
		multiplier = threatMultiplier[model.ThreatUnknown]
	}
	score *= multiplier

	if score > MaxRiskScore {
		score = MaxRiskScore
	}

	return model.RiskScoreResult{
		Score:     score,
		RiskLevel: riskLevel(score),
	}
}

func riskLevel(score int) string {
	switch {
	case score >= 15:
		return "high"
	case score >= 8:
		return "medium"
	default:
		return "low"
	}
}
