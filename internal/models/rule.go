package models

// Severity grades an individual rule finding.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RuleResult is a single rule engine finding. Detected reflects the server's
// own threshold comparison; clients must not recompute it from Score and
// Threshold.
type RuleResult struct {
	RuleType    string   `json:"rule_type"`
	RuleName    string   `json:"rule_name"`
	Description string   `json:"description"`
	Detected    bool     `json:"detected"`
	Score       float64  `json:"score"`
	Severity    Severity `json:"severity"`
	Matches     []Match  `json:"matches"`
	Count       int      `json:"count"`
	Threshold   float64  `json:"threshold"`
	Message     string   `json:"message"`
}

// Match is one span the rule engine flagged. Position is a character offset
// into the original text.
type Match struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
	Context  string `json:"context"`
}
