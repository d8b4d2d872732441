package models

// HistoryItem is the summary projection of a stored DetectionResult as it
// appears in history listings. Items are created by the server alongside the
// result and are never updated in place.
type HistoryItem struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	TextPreview string    `json:"text_preview"`
	Score       float64   `json:"score"`
	RiskLevel   RiskLevel `json:"risk_level"`
	CreatedAt   string    `json:"created_at"`
}

// HistoryListResult is one offset-paginated page of history items.
// len(Items) is always min(PageSize, max(0, Total-(Page-1)*PageSize)).
type HistoryListResult struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []HistoryItem `json:"items"`
}
