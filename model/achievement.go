package model

import "time"

const (
	AchievementModuleCompleted = "module_completed"
	AchievementWeekStreak      = "week_streak"
)

// Achievement is a badge earned through progress milestones.
type Achievement struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Points      int       `json:"points" gorm:"default:0"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserAchievement struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_achievement"`
	AchievementID string    `json:"achievement_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	ModuleID      string    `json:"module_id,omitempty"`
	UnlockedAt    time.Time `json:"unlocked_at"`
	CreatedAt     time.Time `json:"created_at"`

	Achievement Achievement `json:"achievement" gorm:"foreignKey:AchievementID"`
}
