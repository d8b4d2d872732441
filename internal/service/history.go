package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/models"
	"github.com/imleoo/aigc-check/internal/repository"
)

// createdAtLayout is the format history listings use for timestamps.
const createdAtLayout = "2006-01-02 15:04:05"

// HistoryService pages, fetches and deletes stored detection results.
type HistoryService interface {
	List(ctx context.Context, page, pageSize int, sortBy, order string) (*models.HistoryListResult, error)
	GetByID(ctx context.Context, id string) (*models.DetectionResult, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type historyService struct {
	repo   repository.DetectionRepository
	logger *zap.Logger
}

// NewHistoryService creates a history service over the detection store.
func NewHistoryService(repo repository.DetectionRepository, logger *zap.Logger) HistoryService {
	return &historyService{
		repo:   repo,
		logger: logger.Named("history_service"),
	}
}

// List returns one page of history projections.
func (s *historyService) List(ctx context.Context, page, pageSize int, sortBy, order string) (*models.HistoryListResult, error) {
	records, total, err := s.repo.List(ctx, page, pageSize, sortBy, order)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	items := make([]models.HistoryItem, len(records))
	for i, record := range records {
		items[i] = models.HistoryItem{
			ID:          record.ID,
			RequestID:   record.RequestID,
			TextPreview: record.TextPreview,
			Score:       record.Score,
			RiskLevel:   models.RiskLevel(record.RiskLevel),
			CreatedAt:   record.CreatedAt.Format(createdAtLayout),
		}
	}

	return &models.HistoryListResult{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	}, nil
}

// GetByID rebuilds one stored detection result.
func (s *historyService) GetByID(ctx context.Context, id string) (*models.DetectionResult, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromRecord(record)
}

// Delete removes one history entry. A missing id is a no-op, not an
// error: delete is idempotent end to end.
func (s *historyService) Delete(ctx context.Context, id string) error {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		s.logger.Debug("delete of missing history entry ignored", zap.String("id", id))
	}
	return nil
}

// DeleteAll clears the entire history.
func (s *historyService) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
