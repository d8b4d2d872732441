package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/v1", zap.NewNop(), opts...)
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, status, code int, message string, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(map[string]any{
		"code":    code,
		"message": message,
		"data":    data,
	})
	require.NoError(t, err)
}

func TestSubmitDetection(t *testing.T) {
	t.Run("decodes a successful result", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/detect", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req models.DetectionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "这是一段测试文本", req.Text)
			assert.True(t, req.Options.EnableStatistics)

			writeEnvelope(t, w, 200, 0, "success", models.DetectionResult{
				ID:        "id-1",
				RequestID: "req-1",
				Text:      req.Text,
				Score: models.Score{
					Total:      82.5,
					Dimensions: &models.Dimensions{Vocabulary: 80, Sentence: 85, Personalization: 81, Logic: 84, Emotion: 82},
				},
				RiskLevel: models.RiskLevelLow,
			})
		})

		result, err := c.SubmitDetection(context.Background(), models.DetectionRequest{
			Text:    "这是一段测试文本",
			Options: models.DetectionOptions{EnableStatistics: true},
		})
		require.NoError(t, err)
		assert.Equal(t, "id-1", result.ID)
		assert.GreaterOrEqual(t, result.Score.Total, 0.0)
		assert.LessOrEqual(t, result.Score.Total, 100.0)
		assert.Contains(t, []models.RiskLevel{
			models.RiskLevelLow, models.RiskLevelMedium, models.RiskLevelHigh, models.RiskLevelVeryHigh,
		}, result.RiskLevel)
		require.NotNil(t, result.Score.Dimensions)
	})

	t.Run("failure envelope surfaces as ServiceError verbatim", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, 500, 500, "detection failed: engine unavailable", nil)
		})

		_, err := c.SubmitDetection(context.Background(), models.DetectionRequest{Text: "x"})
		var se *ServiceError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 500, se.Code)
		assert.Equal(t, "detection failed: engine unavailable", se.Message)
	})

	t.Run("success code without data is a DecodeError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, 200, 0, "success", nil)
		})

		_, err := c.SubmitDetection(context.Background(), models.DetectionRequest{Text: "x"})
		var de *DecodeError
		require.ErrorAs(t, err, &de)
	})

	t.Run("malformed envelope is a DecodeError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(200)
			w.Write([]byte("<html>not json</html>"))
		})

		_, err := c.SubmitDetection(context.Background(), models.DetectionRequest{Text: "x"})
		var de *DecodeError
		require.ErrorAs(t, err, &de)
	})

	t.Run("timeout is a TransportError with the timeout flag", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}, WithTimeout(20*time.Millisecond))

		_, err := c.SubmitDetection(context.Background(), models.DetectionRequest{Text: "x"})
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.True(t, te.Timeout)
		assert.True(t, IsTimeout(err))
	})

	t.Run("connection refused is a TransportError", func(t *testing.T) {
		c := New("http://127.0.0.1:1/api/v1", zap.NewNop(), WithTimeout(time.Second))
		_, err := c.SubmitDetection(context.Background(), models.DetectionRequest{Text: "x"})
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.False(t, te.Timeout)
	})
}

func TestFetchDetection(t *testing.T) {
	t.Run("missing id maps to a NotFound ServiceError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, 404, 404, "result not found: nope", nil)
		})

		_, err := c.FetchDetection(context.Background(), "nope")
		assert.True(t, IsNotFound(err))
	})
}

func TestListHistory(t *testing.T) {
	t.Run("applies service defaults for zero params", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "1", q.Get("page"))
			assert.Equal(t, "20", q.Get("page_size"))
			assert.Equal(t, "created_at", q.Get("sort"))
			assert.Equal(t, "desc", q.Get("order"))

			writeEnvelope(t, w, 200, 0, "success", models.HistoryListResult{
				Total: 0, Page: 1, PageSize: 20, Items: []models.HistoryItem{},
			})
		})

		page, err := c.ListHistory(context.Background(), ListParams{})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Empty(t, page.Items)
	})

	t.Run("passes explicit params through", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "2", q.Get("page"))
			assert.Equal(t, "10", q.Get("page_size"))
			assert.Equal(t, "score", q.Get("sort"))
			assert.Equal(t, "asc", q.Get("order"))

			writeEnvelope(t, w, 200, 0, "success", models.HistoryListResult{
				Total: 15, Page: 2, PageSize: 10,
				Items: make([]models.HistoryItem, 5),
			})
		})

		page, err := c.ListHistory(context.Background(), ListParams{Page: 2, PageSize: 10, Sort: "score", Order: "asc"})
		require.NoError(t, err)
		assert.Len(t, page.Items, 5)
	})
}

func TestDeleteHistory(t *testing.T) {
	t.Run("deleting a missing id is not an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, 404, 404, "history entry not found", nil)
		})

		assert.NoError(t, c.DeleteHistory(context.Background(), "gone"))
	})

	t.Run("repeated deletes succeed", func(t *testing.T) {
		calls := 0
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			calls++
			writeEnvelope(t, w, 200, 0, "success", nil)
		})

		require.NoError(t, c.DeleteHistory(context.Background(), "id-1"))
		require.NoError(t, c.DeleteHistory(context.Background(), "id-1"))
		assert.Equal(t, 2, calls)
	})

	t.Run("other service failures still surface", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, 500, 500, "storage failure", nil)
		})

		err := c.DeleteHistory(context.Background(), "id-1")
		var se *ServiceError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 500, se.Code)
	})
}

func TestDeleteAllHistory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/history", r.URL.Path)
		writeEnvelope(t, w, 200, 0, "success", nil)
	})

	assert.NoError(t, c.DeleteAllHistory(context.Background()))
}
