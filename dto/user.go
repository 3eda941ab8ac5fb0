package dto

import (
	"time"

	"github.com/aadidev-sraj/project-lyra/model"
)

// ==================== USER PROFILE DTOs ====================

type UpdateProfileRequest struct {
	Name        string              `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email       string              `json:"email,omitempty" validate:"omitempty,email"`
	Preferences *PreferencesRequest `json:"preferences,omitempty"`
}

func (u UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(u)
}

type PreferencesRequest struct {
	Theme         *string `json:"theme,omitempty" validate:"omitempty,oneof=light dark auto"`
	Notifications *bool   `json:"notifications,omitempty"`
	Language      *string `json:"language,omitempty" validate:"omitempty,min=2,max=5"`
}

type UserProfileResponse struct {
	User         UserInfo              `json:"user"`
	Preferences  model.UserPreferences `json:"preferences"`
	ProfileStats ProfileStats          `json:"profile_stats"`
}

// ProfileStats augments the denormalized user counters with live counts.
type ProfileStats struct {
	CompletedModules     int64 `json:"completed_modules"`
	SuccessfulChallenges int64 `json:"successful_challenges"`
}

type UserStatsResponse struct {
	Progress   []ProgressStatusStat   `json:"progress"`
	Challenges []ChallengeOutcomeStat `json:"challenges"`
	Categories []CategoryStat         `json:"categories"`
	Summary    UserStatsSummary       `json:"summary"`
}

type ProgressStatusStat struct {
	Status    string  `json:"status"`
	Count     int64   `json:"count"`
	TotalTime int64   `json:"total_time"`
	AvgScore  float64 `json:"avg_score"`
}

// ChallengeOutcomeStat groups attempt stats by success flag.
type ChallengeOutcomeStat struct {
	IsSuccessful bool    `json:"is_successful"`
	Count        int64   `json:"count"`
	AvgScore     float64 `json:"avg_score"`
	TotalTime    int64   `json:"total_time"`
}

type CategoryStat struct {
	Category   string `json:"category"`
	Completed  int64  `json:"completed"`
	InProgress int64  `json:"in_progress"`
	TotalTime  int64  `json:"total_time"`
}

type UserStatsSummary struct {
	TotalModulesStarted    int64 `json:"total_modules_started"`
	TotalChallengeAttempts int64 `json:"total_challenge_attempts"`
	TotalTimeSpent         int64 `json:"total_time_spent"`
}

// ==================== ADMIN USER DTOs ====================

type ListUsersQuery struct {
	Page      int
	Limit     int
	Search    string
	Role      string
	IsActive  *bool
	SortBy    string
	SortOrder string
}

type UserListResponse struct {
	Users      []UserInfo `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type AdminUserDetailResponse struct {
	User  UserInfo       `json:"user"`
	Stats AdminUserStats `json:"stats"`
}

type AdminUserStats struct {
	ProgressCount        int64 `json:"progress_count"`
	CompletedModules     int64 `json:"completed_modules"`
	ChallengeAttempts    int64 `json:"challenge_attempts"`
	SuccessfulChallenges int64 `json:"successful_challenges"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student instructor admin"`
}

func (u UpdateRoleRequest) Validate() error {
	return GetValidator().Struct(u)
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (s SetActiveRequest) Validate() error {
	return GetValidator().Struct(s)
}

// ==================== LEADERBOARD DTOs ====================

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"` // masked
	TotalPoints int    `json:"total_points"`
	Streak      int    `json:"streak"`
}

type LeaderboardResponse struct {
	Entries   []LeaderboardEntry `json:"entries"`
	UserEntry *LeaderboardEntry  `json:"user_entry,omitempty"`
	Period    string             `json:"period"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type AchievementResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}
