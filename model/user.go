package model

import "time"

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type UserStats struct {
	TotalPoints         int        `json:"total_points" gorm:"default:0"`
	ModulesCompleted    int        `json:"modules_completed" gorm:"default:0"`
	ChallengesCompleted int        `json:"challenges_completed" gorm:"default:0"`
	CurrentStreak       int        `json:"current_streak" gorm:"default:0"`
	LongestStreak       int        `json:"longest_streak" gorm:"default:0"`
	LastActivity        *time.Time `json:"last_activity"`
}

type UserPreferences struct {
	Theme         string `json:"theme" gorm:"default:dark"`
	Notifications bool   `json:"notifications" gorm:"default:true"`
	Language      string `json:"language" gorm:"default:en"`
}

type User struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Email       string          `json:"email" gorm:"unique;not null"`
	Password    string          `json:"-" gorm:"not null"`
	Role        string          `json:"role" gorm:"default:student"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
	Stats       UserStats       `json:"stats" gorm:"embedded;embeddedPrefix:stats_"`
	Preferences UserPreferences `json:"preferences" gorm:"embedded;embeddedPrefix:pref_"`
	LastLogin   *time.Time      `json:"last_login"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
