package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

// ProgressRepository handles per-user module progress records
type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ProgressRepository) CreateProgress(userID, moduleID string) (*model.Progress, error) {
	id, _ := uuid.NewV7()
	now := time.Now()
	progress := &model.Progress{
		ID:           id.String(),
		UserID:       userID,
		ModuleID:     moduleID,
		Status:       shared.StatusInProgress,
		StartedAt:    now,
		LastAccessed: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := ds.db.Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (ds *ProgressRepository) GetProgress(userID, moduleID string) (*model.Progress, error) {
	var progress model.Progress
	err := ds.db.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (ds *ProgressRepository) GetProgressWithModule(userID, moduleID string) (*model.Progress, error) {
	var progress model.Progress
	err := ds.db.Preload("Module").
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (ds *ProgressRepository) UpdateProgress(progress *model.Progress) error {
	progress.UpdatedAt = time.Now()
	return ds.db.Save(progress).Error
}

func (ds *ProgressRepository) ListUserProgress(userID, status string, page, limit int) ([]model.Progress, int64, error) {
	var records []model.Progress
	var total int64

	query := ds.db.Model(&model.Progress{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	query.Count(&total)

	err := query.Preload("Module").
		Order("last_accessed DESC").
		Scopes(paginate(page, limit)).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (ds *ProgressRepository) GetAllUserProgress(userID string) ([]model.Progress, error) {
	var records []model.Progress
	err := ds.db.Preload("Module").
		Where("user_id = ?", userID).
		Order("last_accessed DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (ds *ProgressRepository) GetEnrolledModuleIDs(userID string) ([]string, error) {
	var ids []string
	err := ds.db.Model(&model.Progress{}).
		Where("user_id = ?", userID).
		Pluck("module_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (ds *ProgressRepository) CountByStatus(userID, status string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Progress{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

func (ds *ProgressRepository) CountCompletedSince(userID string, since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Progress{}).
		Where("user_id = ? AND status = ? AND completed_at > ?", userID, shared.StatusCompleted, since).
		Count(&count).Error
	return count, err
}

func (ds *ProgressRepository) CountModuleEnrollments(moduleID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Progress{}).
		Where("module_id = ?", moduleID).
		Count(&count).Error
	return count, err
}

// DistinctProgressDays returns the days on which the user touched any
// progress row, newest first, truncated to midnight.
func (ds *ProgressRepository) DistinctProgressDays(userID string, limit int) ([]time.Time, error) {
	var days []time.Time
	err := ds.db.Model(&model.Progress{}).
		Where("user_id = ?", userID).
		Select("DATE_TRUNC('day', updated_at) AS day").
		Group("day").
		Order("day DESC").
		Limit(limit).
		Pluck("day", &days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

func (ds *ProgressRepository) DeleteUserProgress(userID string) error {
	return ds.db.Where("user_id = ?", userID).Delete(&model.Progress{}).Error
}

func (ds *ProgressRepository) DeleteModuleProgress(moduleID string) error {
	return ds.db.Where("module_id = ?", moduleID).Delete(&model.Progress{}).Error
}
