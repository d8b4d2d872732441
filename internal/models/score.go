package models

// Score carries the composite detection score. Dimensions is nil when the
// statistical analyzer was disabled for the request; only Total is
// guaranteed to be present.
type Score struct {
	Total      float64     `json:"total"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
}

// Dimensions are the five per-axis scores (each 0-100) produced by the
// statistical layer, in the order they are charted.
type Dimensions struct {
	Vocabulary      float64 `json:"vocabulary"`
	Sentence        float64 `json:"sentence"`
	Personalization float64 `json:"personalization"`
	Logic           float64 `json:"logic"`
	Emotion         float64 `json:"emotion"`
}
