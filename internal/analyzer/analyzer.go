// Package analyzer defines the boundary to the detection engine. Scoring
// is entirely the engine's business: the service consumes it as a black
// box through the Analyzer interface.
package analyzer

import (
	"context"

	"github.com/imleoo/aigc-check/internal/models"
)

// Analysis is everything the engine reports for one text. Identity and
// persistence are layered on top by the detection service.
type Analysis struct {
	Score       models.Score             `json:"score"`
	RiskLevel   models.RiskLevel         `json:"risk_level"`
	RuleResults []models.RuleResult      `json:"rule_results"`
	Suggestions []models.Suggestion      `json:"suggestions"`
	Multimodal  *models.MultimodalResult `json:"multimodal,omitempty"`
	ProcessTime string                   `json:"process_time"`
}

// Analyzer scores a detection request.
type Analyzer interface {
	Analyze(ctx context.Context, req models.DetectionRequest) (*Analysis, error)
}
