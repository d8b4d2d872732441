package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("detection record not found")

// DetectionRepository stores and pages detection records.
type DetectionRepository interface {
	Create(ctx context.Context, record *DetectionRecord) error
	GetByID(ctx context.Context, id string) (*DetectionRecord, error)
	List(ctx context.Context, page, pageSize int, sortBy, order string) ([]*DetectionRecord, int64, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
}

type detectionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a gorm-backed detection repository.
func New(db *gorm.DB, logger *zap.Logger) DetectionRepository {
	return &detectionRepository{
		db:     db,
		logger: logger.Named("repository"),
	}
}

func (r *detectionRepository) Create(ctx context.Context, record *DetectionRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create detection record: %w", err)
	}
	r.logger.Debug("record created", zap.String("id", record.ID))
	return nil
}

func (r *detectionRepository) GetByID(ctx context.Context, id string) (*DetectionRecord, error) {
	var record DetectionRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get detection record: %w", err)
	}
	return &record, nil
}

// List returns one page of records plus the unpaged total. Pages past the
// end yield an empty slice, not an error. sortBy and order must already be
// whitelisted by the caller.
func (r *detectionRepository) List(ctx context.Context, page, pageSize int, sortBy, order string) ([]*DetectionRecord, int64, error) {
	var (
		records []*DetectionRecord
		total   int64
	)

	query := r.db.WithContext(ctx).Model(&DetectionRecord{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	offset := (page - 1) * pageSize
	orderClause := fmt.Sprintf("%s %s", sortBy, order)
	if err := query.Order(orderClause).Offset(offset).Limit(pageSize).Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list records: %w", err)
	}
	return records, total, nil
}

// Delete removes one record and reports whether it existed. A missing id
// is not an error; delete is idempotent at this layer.
func (r *detectionRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DetectionRecord{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete detection record: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *detectionRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Exec("DELETE FROM detection_records").Error; err != nil {
		return fmt.Errorf("failed to delete all records: %w", err)
	}
	r.logger.Info("all detection records deleted")
	return nil
}
