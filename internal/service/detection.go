package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/analyzer"
	"github.com/imleoo/aigc-check/internal/cache"
	"github.com/imleoo/aigc-check/internal/metrics"
	"github.com/imleoo/aigc-check/internal/models"
	"github.com/imleoo/aigc-check/internal/repository"
)

// DefaultPreviewLength is how many characters of the text survive into the
// history projection.
const DefaultPreviewLength = 100

// DetectionService runs detections: it delegates scoring to the analyzer,
// assigns identity, persists the result and records metrics.
type DetectionService interface {
	Detect(ctx context.Context, text string, options models.DetectionOptions) (*models.DetectionResult, error)
	GetResult(ctx context.Context, id string) (*models.DetectionResult, error)
}

type detectionService struct {
	analyzer      analyzer.Analyzer
	repo          repository.DetectionRepository
	cache         *cache.AnalysisCache
	collector     *metrics.Collector
	logger        *zap.Logger
	previewLength int
}

// Option customizes a detection service.
type Option func(*detectionService)

// WithPreviewLength sets how many characters of the text survive into
// the history projection. Non-positive values keep the default.
func WithPreviewLength(n int) Option {
	return func(s *detectionService) {
		if n > 0 {
			s.previewLength = n
		}
	}
}

// NewDetectionService wires a detection service. cache and collector may
// be nil; the service then skips caching and instrumentation.
func NewDetectionService(
	a analyzer.Analyzer,
	repo repository.DetectionRepository,
	analysisCache *cache.AnalysisCache,
	collector *metrics.Collector,
	logger *zap.Logger,
	opts ...Option,
) DetectionService {
	s := &detectionService{
		analyzer:      a,
		repo:          repo,
		cache:         analysisCache,
		collector:     collector,
		logger:        logger.Named("detection_service"),
		previewLength: DefaultPreviewLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Detect scores text through the analyzer and persists the result.
func (s *detectionService) Detect(ctx context.Context, text string, options models.DetectionOptions) (*models.DetectionResult, error) {
	req := models.DetectionRequest{Text: text, Options: options}
	started := time.Now()

	analysis, fromCache, err := s.analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	riskLevel := analysis.RiskLevel
	if riskLevel == "" {
		riskLevel = models.RiskLevelFromScore(analysis.Score.Total)
	}

	result := &models.DetectionResult{
		ID:          uuid.New().String(),
		RequestID:   uuid.New().String(),
		Text:        text,
		Score:       analysis.Score,
		RiskLevel:   riskLevel,
		RuleResults: analysis.RuleResults,
		Suggestions: analysis.Suggestions,
		Multimodal:  analysis.Multimodal,
		ProcessTime: analysis.ProcessTime,
		DetectedAt:  time.Now().UTC(),
	}

	if err := s.save(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	if s.collector != nil {
		s.collector.ObserveDetection(string(result.RiskLevel), time.Since(started))
	}
	s.logger.Info("detection completed",
		zap.String("id", result.ID),
		zap.Float64("score", result.Score.Total),
		zap.String("risk_level", string(result.RiskLevel)),
		zap.Bool("cache_hit", fromCache))
	return result, nil
}

func (s *detectionService) analyze(ctx context.Context, req models.DetectionRequest) (*analyzer.Analysis, bool, error) {
	if s.cache != nil {
		if cached := s.cache.Get(ctx, req); cached != nil {
			if s.collector != nil {
				s.collector.ObserveCache(true)
			}
			return cached, true, nil
		}
		if s.collector != nil {
			s.collector.ObserveCache(false)
		}
	}

	analysis, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, req, analysis)
	}
	return analysis, false, nil
}

func (s *detectionService) save(ctx context.Context, result *models.DetectionResult) error {
	record, err := toRecord(result, s.previewLength)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, record)
}

// GetResult loads a stored detection result by id.
func (s *detectionService) GetResult(ctx context.Context, id string) (*models.DetectionResult, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromRecord(record)
}

// toRecord flattens a result into its persisted form, serializing the
// nested sequences as JSON text.
func toRecord(result *models.DetectionResult, previewLength int) (*repository.DetectionRecord, error) {
	ruleResults, err := json.Marshal(result.RuleResults)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rule results: %w", err)
	}
	suggestions, err := json.Marshal(result.Suggestions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	var multimodal []byte
	if result.Multimodal != nil {
		multimodal, err = json.Marshal(result.Multimodal)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal multimodal result: %w", err)
		}
	}

	return &repository.DetectionRecord{
		ID:          result.ID,
		RequestID:   result.RequestID,
		Text:        result.Text,
		TextPreview: preview(result.Text, previewLength),
		Score:       result.Score.Total,
		RiskLevel:   string(result.RiskLevel),
		RuleResults: string(ruleResults),
		Suggestions: string(suggestions),
		Multimodal:  string(multimodal),
		ProcessTime: result.ProcessTime,
		CreatedAt:   result.DetectedAt,
	}, nil
}

// fromRecord rebuilds a full detection result from its persisted form.
// Only the aggregate score survives storage; per-dimension scores are part
// of the serialized payloads when they were present.
func fromRecord(record *repository.DetectionRecord) (*models.DetectionResult, error) {
	var ruleResults []models.RuleResult
	if record.RuleResults != "" {
		if err := json.Unmarshal([]byte(record.RuleResults), &ruleResults); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rule results: %w", err)
		}
	}
	var suggestions []models.Suggestion
	if record.Suggestions != "" {
		if err := json.Unmarshal([]byte(record.Suggestions), &suggestions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal suggestions: %w", err)
		}
	}
	var multimodal *models.MultimodalResult
	if record.Multimodal != "" {
		if err := json.Unmarshal([]byte(record.Multimodal), &multimodal); err != nil {
			return nil, fmt.Errorf("failed to unmarshal multimodal result: %w", err)
		}
	}

	return &models.DetectionResult{
		ID:          record.ID,
		RequestID:   record.RequestID,
		Text:        record.Text,
		Score:       models.Score{Total: record.Score},
		RiskLevel:   models.RiskLevel(record.RiskLevel),
		RuleResults: ruleResults,
		Suggestions: suggestions,
		Multimodal:  multimodal,
		ProcessTime: record.ProcessTime,
		DetectedAt:  record.CreatedAt,
	}, nil
}

// preview truncates text to n characters without splitting a rune.
func preview(text string, n int) string {
	if n <= 0 {
		n = DefaultPreviewLength
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}
