package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/analyzer"
	"github.com/imleoo/aigc-check/internal/config"
	"github.com/imleoo/aigc-check/internal/models"
	"github.com/imleoo/aigc-check/internal/repository"
)

// fakeAnalyzer returns a canned analysis and records the last request.
type fakeAnalyzer struct {
	analysis *analyzer.Analysis
	err      error
	lastReq  models.DetectionRequest
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req models.DetectionRequest) (*analyzer.Analysis, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

func newTestRepo(t *testing.T) repository.DetectionRepository {
	t.Helper()
	db, err := repository.Open(config.DatabaseConfig{Type: "sqlite", DSN: ":memory:"}, false)
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(db) })
	return repository.New(db, zap.NewNop())
}

func statisticalAnalysis() *analyzer.Analysis {
	return &analyzer.Analysis{
		Score: models.Score{
			Total:      72.5,
			Dimensions: &models.Dimensions{Vocabulary: 70, Sentence: 75, Personalization: 68, Logic: 74, Emotion: 76},
		},
		RuleResults: []models.RuleResult{
			{
				RuleType: "high_frequency_words", RuleName: "高频词汇检测",
				Detected: true, Score: 65, Severity: models.SeverityMedium,
				Matches:   []models.Match{{Text: "综上所述", Position: 12, Context: "……综上所述……"}},
				Count:     1, Threshold: 3, Message: "检测到高频AI词汇",
			},
		},
		Suggestions: []models.Suggestion{
			{ID: "s1", Type: "rewrite", Severity: models.SeverityMedium, Message: "改写高频表达"},
		},
		ProcessTime: "150ms",
	}
}

func TestDetect(t *testing.T) {
	t.Run("statistical detection round-trip", func(t *testing.T) {
		repo := newTestRepo(t)
		fa := &fakeAnalyzer{analysis: statisticalAnalysis()}
		svc := NewDetectionService(fa, repo, nil, nil, zap.NewNop())

		result, err := svc.Detect(context.Background(), "这是一段测试文本", models.DetectionOptions{EnableStatistics: true})
		require.NoError(t, err)

		assert.NotEmpty(t, result.ID)
		assert.NotEmpty(t, result.RequestID)
		assert.True(t, fa.lastReq.Options.EnableStatistics)
		assert.GreaterOrEqual(t, result.Score.Total, 0.0)
		assert.LessOrEqual(t, result.Score.Total, 100.0)
		assert.Contains(t, []models.RiskLevel{
			models.RiskLevelLow, models.RiskLevelMedium, models.RiskLevelHigh, models.RiskLevelVeryHigh,
		}, result.RiskLevel)
		require.NotNil(t, result.Score.Dimensions)

		// The stored result keeps the request linkage.
		stored, err := svc.GetResult(context.Background(), result.ID)
		require.NoError(t, err)
		assert.Equal(t, result.RequestID, stored.RequestID)
		require.Len(t, stored.RuleResults, 1)
		assert.True(t, stored.RuleResults[0].Detected)
		assert.Equal(t, 12, stored.RuleResults[0].Matches[0].Position)
	})

	t.Run("risk level derived from score when the engine omits it", func(t *testing.T) {
		repo := newTestRepo(t)
		fa := &fakeAnalyzer{analysis: &analyzer.Analysis{Score: models.Score{Total: 35}}}
		svc := NewDetectionService(fa, repo, nil, nil, zap.NewNop())

		result, err := svc.Detect(context.Background(), "text", models.DetectionOptions{})
		require.NoError(t, err)
		assert.Equal(t, models.RiskLevelVeryHigh, result.RiskLevel)
	})

	t.Run("engine failure is surfaced, nothing persisted", func(t *testing.T) {
		repo := newTestRepo(t)
		fa := &fakeAnalyzer{err: assert.AnError}
		svc := NewDetectionService(fa, repo, nil, nil, zap.NewNop())

		_, err := svc.Detect(context.Background(), "text", models.DetectionOptions{})
		require.Error(t, err)

		_, total, err := repo.List(context.Background(), 1, 10, "created_at", "desc")
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
	})

	t.Run("missing result maps to not found", func(t *testing.T) {
		repo := newTestRepo(t)
		svc := NewDetectionService(&fakeAnalyzer{}, repo, nil, nil, zap.NewNop())

		_, err := svc.GetResult(context.Background(), "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestHistory(t *testing.T) {
	seed := func(t *testing.T, n int) (DetectionService, HistoryService) {
		t.Helper()
		repo := newTestRepo(t)
		detection := NewDetectionService(&fakeAnalyzer{analysis: statisticalAnalysis()}, repo, nil, nil, zap.NewNop())
		history := NewHistoryService(repo, zap.NewNop())
		for i := 0; i < n; i++ {
			_, err := detection.Detect(context.Background(), strings.Repeat("测试文本 ", i+1), models.DetectionOptions{})
			require.NoError(t, err)
		}
		return detection, history
	}

	t.Run("page length follows the pagination invariant", func(t *testing.T) {
		_, history := seed(t, 15)

		page, err := history.List(context.Background(), 2, 10, "created_at", "desc")
		require.NoError(t, err)
		assert.EqualValues(t, 15, page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Len(t, page.Items, 5)

		empty, err := history.List(context.Background(), 3, 10, "created_at", "desc")
		require.NoError(t, err)
		assert.Empty(t, empty.Items)
	})

	t.Run("items carry the summary projection", func(t *testing.T) {
		_, history := seed(t, 1)

		page, err := history.List(context.Background(), 1, 20, "created_at", "desc")
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		item := page.Items[0]
		assert.NotEmpty(t, item.ID)
		assert.NotEmpty(t, item.RequestID)
		assert.Equal(t, 72.5, item.Score)
		assert.NotEmpty(t, item.CreatedAt)
	})

	t.Run("get by id rebuilds the full result", func(t *testing.T) {
		detection, history := seed(t, 0)
		result, err := detection.Detect(context.Background(), "完整结果", models.DetectionOptions{})
		require.NoError(t, err)

		full, err := history.GetByID(context.Background(), result.ID)
		require.NoError(t, err)
		assert.Equal(t, result.RequestID, full.RequestID)
		assert.Len(t, full.Suggestions, 1)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		detection, history := seed(t, 0)
		result, err := detection.Detect(context.Background(), "将被删除", models.DetectionOptions{})
		require.NoError(t, err)

		require.NoError(t, history.Delete(context.Background(), result.ID))
		require.NoError(t, history.Delete(context.Background(), result.ID))

		_, err = history.GetByID(context.Background(), result.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete all clears the store", func(t *testing.T) {
		_, history := seed(t, 3)

		require.NoError(t, history.DeleteAll(context.Background()))
		page, err := history.List(context.Background(), 1, 20, "created_at", "desc")
		require.NoError(t, err)
		assert.EqualValues(t, 0, page.Total)
	})
}

func TestConfiguredPreviewLength(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewDetectionService(&fakeAnalyzer{analysis: statisticalAnalysis()}, repo, nil, nil, zap.NewNop(),
		WithPreviewLength(10))
	history := NewHistoryService(repo, zap.NewNop())

	_, err := svc.Detect(context.Background(), strings.Repeat("测", 150), models.DetectionOptions{})
	require.NoError(t, err)

	page, err := history.List(context.Background(), 1, 20, "created_at", "desc")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 13, utf8.RuneCountInString(page.Items[0].TextPreview)) // 10 runes + "..."
	assert.True(t, strings.HasSuffix(page.Items[0].TextPreview, "..."))
}

func TestPreview(t *testing.T) {
	t.Run("short text is kept whole", func(t *testing.T) {
		assert.Equal(t, "短文本", preview("短文本", 100))
	})

	t.Run("long text truncates on rune boundaries", func(t *testing.T) {
		long := strings.Repeat("测", 150)
		p := preview(long, 100)
		assert.Equal(t, 103, utf8.RuneCountInString(p)) // 100 runes + "..."
		assert.True(t, strings.HasSuffix(p, "..."))
		assert.True(t, utf8.ValidString(p))
	})
}
