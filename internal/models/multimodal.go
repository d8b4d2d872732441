package models

// MultimodalResult is the fusion of the three detection layers into one
// final score. Present on a DetectionResult only when multimodal fusion
// was requested and actually performed.
type MultimodalResult struct {
	RuleLayerScore       float64 `json:"rule_layer_score"`
	StatisticsLayerScore float64 `json:"statistics_layer_score"`
	SemanticLayerScore   float64 `json:"semantic_layer_score"`
	FinalScore           float64 `json:"final_score"`
	Confidence           float64 `json:"confidence"`
	DetectionMode        string  `json:"detection_mode"`
}
