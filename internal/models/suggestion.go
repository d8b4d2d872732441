package models

// Suggestion is an improvement hint derived from a finding. OriginalText,
// SuggestedText and Position are only set for rewrite-style suggestions
// anchored to a span of the input.
type Suggestion struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Severity      Severity `json:"severity"`
	Message       string   `json:"message"`
	OriginalText  string   `json:"original_text,omitempty"`
	SuggestedText string   `json:"suggested_text,omitempty"`
	Position      *int     `json:"position,omitempty"`
}
