package models

import "time"

// DetectionOptions are the caller-supplied toggles for a detection run.
// The zero value asks the service for its defaults.
type DetectionOptions struct {
	EnableMultimodal bool   `json:"enable_multimodal,omitempty"`
	EnableStatistics bool   `json:"enable_statistics,omitempty"`
	EnableSemantic   bool   `json:"enable_semantic,omitempty"`
	Language         string `json:"language,omitempty"`
}

// DetectionRequest is a single submission of text for AIGC detection.
// Options are copied per request; the request never changes after submission.
type DetectionRequest struct {
	Text    string           `json:"text"`
	Options DetectionOptions `json:"options"`
}

// RiskLevel is the coarse classification attached to a detection result.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelVeryHigh RiskLevel = "very_high"
)

// RiskLevelFromScore maps a total score (0-100) to a risk level.
// Lower scores mean the text looks more machine-generated.
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score <= 40:
		return RiskLevelVeryHigh
	case score <= 60:
		return RiskLevelHigh
	case score <= 75:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// DetectionResult is the aggregate root of a completed detection.
// Instances are immutable once received: callers replace them wholesale
// on re-fetch and never modify fields in place.
type DetectionResult struct {
	ID          string            `json:"id"`
	RequestID   string            `json:"request_id"`
	Text        string            `json:"text"`
	Score       Score             `json:"score"`
	RiskLevel   RiskLevel         `json:"risk_level"`
	RuleResults []RuleResult      `json:"rule_results"`
	Suggestions []Suggestion      `json:"suggestions"`
	Multimodal  *MultimodalResult `json:"multimodal,omitempty"`
	ProcessTime string            `json:"process_time"`
	DetectedAt  time.Time         `json:"detected_at"`
}
