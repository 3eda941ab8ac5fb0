package repositories

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
)

// UserRepository handles user-related database operations
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) CreateUser(req dto.RegisterRequest, hashedPassword string) (*model.User, error) {
	id, _ := uuid.NewV7()
	user := &model.User{
		ID:        id.String(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashedPassword,
		Role:      model.RoleStudent,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := ds.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ds *UserRepository) UpdateUser(user *model.User) error {
	user.UpdatedAt = time.Now()
	return ds.db.Save(user).Error
}

func (ds *UserRepository) UpdateUserPassword(userID, hashedPassword string) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password":   hashedPassword,
		"updated_at": time.Now(),
	}).Error
}

func (ds *UserRepository) UpdateLastLogin(userID string) error {
	now := time.Now()
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"last_login": &now,
		"updated_at": now,
	}).Error
}

func (ds *UserRepository) IsEmailAvailable(email string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (ds *UserRepository) IsEmailAvailableForUser(email, userID string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).
		Where("LOWER(email) = LOWER(?) AND id != ?", email, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// ==================== STATS METHODS ====================

// RecordModuleCompletion bumps the completion counters in a single UPDATE so
// concurrent completions of different modules never lose points.
func (ds *UserRepository) RecordModuleCompletion(userID string, points int) error {
	now := time.Now()
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"stats_modules_completed": gorm.Expr("stats_modules_completed + 1"),
		"stats_total_points":      gorm.Expr("stats_total_points + ?", points),
		"stats_last_activity":     &now,
		"updated_at":              now,
	}).Error
}

func (ds *UserRepository) RecordChallengeCompletion(userID string, points int) error {
	now := time.Now()
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"stats_challenges_completed": gorm.Expr("stats_challenges_completed + 1"),
		"stats_total_points":         gorm.Expr("stats_total_points + ?", points),
		"stats_last_activity":        &now,
		"updated_at":                 now,
	}).Error
}

func (ds *UserRepository) AddPoints(userID string, points int) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"stats_total_points": gorm.Expr("stats_total_points + ?", points),
		"updated_at":         time.Now(),
	}).Error
}

func (ds *UserRepository) UpdateStreak(userID string, current, longest int) error {
	now := time.Now()
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"stats_current_streak": current,
		"stats_longest_streak": longest,
		"stats_last_activity":  &now,
		"updated_at":           now,
	}).Error
}

func (ds *UserRepository) TouchLastActivity(userID string) error {
	now := time.Now()
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"stats_last_activity": &now,
	}).Error
}

// ==================== LEADERBOARD METHODS ====================

func (ds *UserRepository) TopUsersByPoints(limit int) ([]model.User, error) {
	var users []model.User
	err := ds.db.Where("is_active = ?", true).
		Order("stats_total_points DESC, created_at ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// TopUsersByPointsSince limits the board to users active since the cutoff.
func (ds *UserRepository) TopUsersByPointsSince(since time.Time, limit int) ([]model.User, error) {
	var users []model.User
	err := ds.db.Where("is_active = ? AND stats_last_activity > ?", true, since).
		Order("stats_total_points DESC, created_at ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UserPointsRank returns the 1-based rank of a user on the global points board.
func (ds *UserRepository) UserPointsRank(points int) (int, error) {
	var higher int64
	err := ds.db.Model(&model.User{}).
		Where("is_active = ? AND stats_total_points > ?", true, points).
		Count(&higher).Error
	if err != nil {
		return 0, err
	}
	return int(higher) + 1, nil
}

// ==================== ADMIN USER MANAGEMENT ====================

func (ds *UserRepository) AdminGetUsers(q dto.ListUsersQuery) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := ds.db.Model(&model.User{})

	if q.Role != "" {
		query = query.Where("role = ?", q.Role)
	}
	if q.IsActive != nil {
		query = query.Where("is_active = ?", *q.IsActive)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	query.Count(&total)

	// Whitelisted sort columns only; anything else falls back to newest first
	column := ""
	switch q.SortBy {
	case "name":
		column = "name"
	case "email":
		column = "email"
	case "points":
		column = "stats_total_points"
	case "created_at":
		column = "created_at"
	}
	order := "created_at DESC"
	if column != "" {
		direction := "ASC"
		if strings.EqualFold(q.SortOrder, "desc") {
			direction = "DESC"
		}
		order = column + " " + direction
	}

	err := query.Order(order).
		Scopes(paginate(q.Page, q.Limit)).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (ds *UserRepository) UpdateUserRole(userID, role string) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"role":       role,
		"updated_at": time.Now(),
	}).Error
}

func (ds *UserRepository) SetUserActive(userID string, active bool) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_active":  active,
		"updated_at": time.Now(),
	}).Error
}

func (ds *UserRepository) DeleteUser(userID string) error {
	return ds.db.Where("id = ?", userID).Delete(&model.User{}).Error
}

func (ds *UserRepository) CountUsers() (int64, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

func (ds *UserRepository) CountActiveUsersSince(since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.User{}).
		Where("stats_last_activity > ?", since).
		Count(&count).Error
	return count, err
}

// ==================== ACHIEVEMENT METHODS ====================

func (ds *UserRepository) GetAchievementByType(achievementType string) (*model.Achievement, error) {
	var achievement model.Achievement
	err := ds.db.Where("type = ? AND is_active = ?", achievementType, true).First(&achievement).Error
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (ds *UserRepository) HasAchievement(userID, achievementID string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ds *UserRepository) GrantAchievement(userID, achievementID, moduleID string) (*model.UserAchievement, error) {
	id, _ := uuid.NewV7()
	grant := &model.UserAchievement{
		ID:            id.String(),
		UserID:        userID,
		AchievementID: achievementID,
		ModuleID:      moduleID,
		UnlockedAt:    time.Now(),
	}
	if err := ds.db.Create(grant).Error; err != nil {
		return nil, err
	}
	return grant, nil
}

func (ds *UserRepository) GetUserAchievements(userID string) ([]model.UserAchievement, error) {
	var grants []model.UserAchievement
	err := ds.db.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}
