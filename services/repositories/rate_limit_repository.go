package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/model"
)

type RateLimitRepository struct {
	BaseRepository
}

func NewRateLimitRepository(db *gorm.DB) *RateLimitRepository {
	return &RateLimitRepository{BaseRepository{db: db}}
}

func (ds *RateLimitRepository) GetRateLimit(identifier, endpointType string) (*model.RateLimit, error) {
	var rateLimit model.RateLimit
	err := ds.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).
		First(&rateLimit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rateLimit, nil
}

func (ds *RateLimitRepository) SaveRateLimit(rateLimit *model.RateLimit) error {
	if rateLimit.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		rateLimit.ID = id.String()
	}
	return ds.db.Save(rateLimit).Error
}

func (ds *RateLimitRepository) UpdateRateLimit(rateLimit *model.RateLimit) error {
	return ds.db.Save(rateLimit).Error
}

func (ds *RateLimitRepository) DeleteRateLimit(identifier, endpointType string) error {
	return ds.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).
		Delete(&model.RateLimit{}).Error
}

func (ds *RateLimitRepository) CountRateLimits() (int64, error) {
	var count int64
	err := ds.db.Model(&model.RateLimit{}).Count(&count).Error
	return count, err
}

func (ds *RateLimitRepository) CountBlocked(now time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.RateLimit{}).
		Where("blocked_until > ?", now).
		Count(&count).Error
	return count, err
}

// CleanupOldRecords drops windows that expired and are no longer blocked.
func (ds *RateLimitRepository) CleanupOldRecords(maxWindow time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxWindow)
	result := ds.db.Where("window_start < ? AND (blocked_until IS NULL OR blocked_until < ?)", cutoff, time.Now()).
		Delete(&model.RateLimit{})
	return result.RowsAffected, result.Error
}
