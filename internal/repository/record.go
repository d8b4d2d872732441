package repository

import (
	"time"

	"gorm.io/gorm"
)

// DetectionRecord is the persisted form of a detection result. The nested
// sequences are stored as JSON text so the record stays portable across
// the sqlite and postgres dialectors.
type DetectionRecord struct {
	ID          string    `gorm:"primaryKey;type:text"`
	RequestID   string    `gorm:"uniqueIndex;type:text;not null"`
	Text        string    `gorm:"type:text;not null"`
	TextPreview string    `gorm:"type:text"`
	Score       float64   `gorm:"not null"`
	RiskLevel   string    `gorm:"type:text;not null;index"`
	RuleResults string    `gorm:"type:text"`
	Suggestions string    `gorm:"type:text"`
	Multimodal  string    `gorm:"type:text"`
	ProcessTime string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName pins the table name independent of gorm's pluralization.
func (DetectionRecord) TableName() string {
	return "detection_records"
}

// BeforeCreate backfills timestamps for records built outside gorm.
func (r *DetectionRecord) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	return nil
}
