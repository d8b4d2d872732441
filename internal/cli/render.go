package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/imleoo/aigc-check/internal/display"
	"github.com/imleoo/aigc-check/internal/models"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// renderResult writes a human-readable view of a detection result using
// the presentation pipeline's derivations.
func renderResult(w io.Writer, result *models.DetectionResult) {
	fmt.Fprintf(w, "id:          %s\n", result.ID)
	fmt.Fprintf(w, "request id:  %s\n", result.RequestID)
	fmt.Fprintf(w, "score:       %.1f / 100 (%s)\n", result.Score.Total, display.ScoreBand(result.Score.Total))
	fmt.Fprintf(w, "risk level:  %s [%s]\n", display.RiskLevelLabel(result.RiskLevel), result.RiskLevel)
	if result.ProcessTime != "" {
		fmt.Fprintf(w, "process:     %s\n", result.ProcessTime)
	}

	if result.Score.Dimensions != nil {
		series := display.RadarSeries(result.Score.Dimensions)
		fmt.Fprintln(w, "dimensions:")
		for i, axis := range display.RadarAxes {
			fmt.Fprintf(w, "  %-16s %6.1f\n", axis, series[i])
		}
	}

	if len(result.RuleResults) > 0 {
		fmt.Fprintln(w, "rules:")
		for _, rr := range result.RuleResults {
			mark := " "
			if rr.Detected {
				mark = "!"
			}
			fmt.Fprintf(w, "  %s %-24s %6.1f  %-8s  %s\n",
				mark, rr.RuleName, rr.Score, rr.Severity, rr.Message)
			for _, m := range rr.Matches {
				fmt.Fprintf(w, "      @%d %q\n", m.Position, m.Text)
			}
		}
	}

	if len(result.Suggestions) > 0 {
		fmt.Fprintln(w, "suggestions:")
		for _, s := range result.Suggestions {
			fmt.Fprintf(w, "  [%s] %s\n", s.Severity, s.Message)
		}
	}

	if result.Multimodal != nil {
		mm := result.Multimodal
		fmt.Fprintf(w, "multimodal:  rule %.1f, statistics %.1f, semantic %.1f -> final %.1f (confidence %.2f, mode %s)\n",
			mm.RuleLayerScore, mm.StatisticsLayerScore, mm.SemanticLayerScore,
			mm.FinalScore, mm.Confidence, mm.DetectionMode)
	}
}
