// Package display derives presentational facts from already-fetched
// detection data. Every function here is total: unknown enum values map to
// a defined fallback instead of failing.
package display

import "github.com/imleoo/aigc-check/internal/models"

// ColorDefault is the fallback color token for unrecognized enum values.
const ColorDefault = "default"

// RiskLevelLabel returns the display label for a risk level. An
// unrecognized level is shown as its raw text.
func RiskLevelLabel(level models.RiskLevel) string {
	switch level {
	case models.RiskLevelLow:
		return "低风险"
	case models.RiskLevelMedium:
		return "中等风险"
	case models.RiskLevelHigh:
		return "高风险"
	case models.RiskLevelVeryHigh:
		return "极高风险"
	default:
		return string(level)
	}
}

// RiskLevelColor returns the color token for a risk level.
func RiskLevelColor(level models.RiskLevel) string {
	switch level {
	case models.RiskLevelLow:
		return "green"
	case models.RiskLevelMedium:
		return "orange"
	case models.RiskLevelHigh, models.RiskLevelVeryHigh:
		return "red"
	default:
		return ColorDefault
	}
}

// SeverityColor returns the color token for a rule finding severity.
func SeverityColor(severity models.Severity) string {
	switch severity {
	case models.SeverityCritical:
		return "red"
	case models.SeverityHigh:
		return "orange"
	case models.SeverityMedium:
		return "gold"
	case models.SeverityLow:
		return "blue"
	default:
		return ColorDefault
	}
}

// Band is the qualitative bucket of a 0-100 score.
type Band string

const (
	BandSuccess   Band = "success"   // score >= 80
	BandNormal    Band = "normal"    // 60 <= score < 80
	BandException Band = "exception" // score < 60
)

// ScoreBand buckets any 0-100 score into its qualitative band.
func ScoreBand(score float64) Band {
	switch {
	case score >= 80:
		return BandSuccess
	case score >= 60:
		return BandNormal
	default:
		return BandException
	}
}

// RadarAxes names the five dimensions in charting order.
var RadarAxes = [5]string{"vocabulary", "sentence", "personalization", "logic", "emotion"}

// RadarSeries returns the five dimension scores in charting order,
// substituting 0 for every axis when the dimensions are absent.
func RadarSeries(dims *models.Dimensions) [5]float64 {
	if dims == nil {
		return [5]float64{}
	}
	return [5]float64{
		dims.Vocabulary,
		dims.Sentence,
		dims.Personalization,
		dims.Logic,
		dims.Emotion,
	}
}
