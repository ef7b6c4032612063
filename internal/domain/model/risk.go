package model

// Threat levels reported by the client on an SIA compliance questionnaire.
const (
	ThreatLow     = "low"
	ThreatMedium  = "medium"
	ThreatHigh    = "high"
	ThreatUnknown = "unknown"
)

// RiskAssessment the answers relevant to scoring a close-protection booking.
type RiskAssessment struct {
	ServicePurpose    string `json:"service_purpose" binding:"required"`
	KnownRisks        bool   `json:"known_risks"`
	PublicEvent       bool   `json:"public_event"`
	MediaAttention    bool   `json:"media_attention"`
	PreviousIncidents bool   `json:"previous_incidents"`
	ArmedProtection   bool   `json:"armed_protection"`
	ThreatLevel       string `json:"threat_level" binding:"required"`
}

// RiskScoreResult the computed score with its presentation band.
type RiskScoreResult struct {
	Score     int    `json:"score"`
	RiskLevel string `json:"risk_level"` // low | medium | high
}
