package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
)

// ActivityRepository handles the append-only activity log
type ActivityRepository struct {
	BaseRepository
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ActivityRepository) CreateActivity(activity *model.Activity) error {
	if activity.ID == "" {
		id, _ := uuid.NewV7()
		activity.ID = id.String()
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now()
	}
	activity.CreatedAt = time.Now()
	return ds.db.Create(activity).Error
}

func (ds *ActivityRepository) ListUserActivities(userID string, q dto.ActivityHistoryQuery) ([]model.Activity, int64, error) {
	var activities []model.Activity
	var total int64

	query := ds.db.Model(&model.Activity{}).Where("user_id = ?", userID)

	if q.Action != "" {
		query = query.Where("action = ?", q.Action)
	}
	if q.StartDate != nil {
		query = query.Where("timestamp >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		query = query.Where("timestamp <= ?", *q.EndDate)
	}

	query.Count(&total)

	err := query.Order("timestamp DESC").
		Scopes(paginate(q.Page, q.Limit)).
		Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (ds *ActivityRepository) RecentUserActivities(userID string, limit int) ([]model.Activity, error) {
	var activities []model.Activity
	err := ds.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// DistinctActivityDays returns the days on which the user logged any activity,
// newest first, as UTC dates truncated to midnight.
func (ds *ActivityRepository) DistinctActivityDays(userID string, limit int) ([]time.Time, error) {
	var days []time.Time
	err := ds.db.Model(&model.Activity{}).
		Where("user_id = ?", userID).
		Select("DATE_TRUNC('day', timestamp) AS day").
		Group("day").
		Order("day DESC").
		Limit(limit).
		Pluck("day", &days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

// ==================== ADMIN METHODS ====================

func (ds *ActivityRepository) AdminListActivities(userID, action string, start, end *time.Time, page, limit int) ([]model.Activity, int64, error) {
	var activities []model.Activity
	var total int64

	query := ds.db.Model(&model.Activity{})

	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if start != nil {
		query = query.Where("timestamp >= ?", *start)
	}
	if end != nil {
		query = query.Where("timestamp <= ?", *end)
	}

	query.Count(&total)

	err := query.Preload("User").
		Order("timestamp DESC").
		Scopes(paginate(page, limit)).
		Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (ds *ActivityRepository) UserActionStats(userID string, since time.Time) ([]dto.ActivityActionStat, error) {
	var stats []dto.ActivityActionStat
	err := ds.db.Model(&model.Activity{}).
		Select("action, COUNT(*) AS count").
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Group("action").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (ds *ActivityRepository) ActionStats(since time.Time) ([]dto.ActivityActionStat, error) {
	var stats []dto.ActivityActionStat
	err := ds.db.Model(&model.Activity{}).
		Select("action, COUNT(*) AS count, COUNT(DISTINCT user_id) AS unique_users").
		Where("timestamp >= ?", since).
		Group("action").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (ds *ActivityRepository) CountActivitiesSince(since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Activity{}).
		Where("timestamp >= ?", since).
		Count(&count).Error
	return count, err
}

func (ds *ActivityRepository) CountActiveUsersSince(since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Activity{}).
		Where("timestamp >= ?", since).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (ds *ActivityRepository) DeleteActivitiesBefore(cutoff time.Time) (int64, error) {
	result := ds.db.Where("timestamp < ?", cutoff).Delete(&model.Activity{})
	return result.RowsAffected, result.Error
}

func (ds *ActivityRepository) DeleteUserActivities(userID string) error {
	return ds.db.Where("user_id = ?", userID).Delete(&model.Activity{}).Error
}
