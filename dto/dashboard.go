package dto

import "github.com/aadidev-sraj/project-lyra/model"

// ==================== DASHBOARD DTOs ====================

type DashboardResponse struct {
	User           DashboardUser       `json:"user"`
	Overview       DashboardOverview   `json:"overview"`
	RecentActivity DashboardRecent     `json:"recent_activity"`
	WeeklyProgress int64               `json:"weekly_progress"`
	Recommended    []ModuleResponse    `json:"recommended_modules"`
}

type DashboardUser struct {
	Stats       model.UserStats       `json:"stats"`
	Preferences model.UserPreferences `json:"preferences"`
}

type DashboardOverview struct {
	CompletedModules       int64 `json:"completed_modules"`
	InProgressModules      int64 `json:"in_progress_modules"`
	TotalChallengeAttempts int64 `json:"total_challenge_attempts"`
	SuccessfulChallenges   int64 `json:"successful_challenges"`
	SuccessRate            int   `json:"success_rate"`
	CurrentStreak          int   `json:"current_streak"`
}

type DashboardRecent struct {
	Modules    []ProgressSummary `json:"modules"`
	Challenges []AttemptSummary  `json:"challenges"`
}

type LearningAnalyticsResponse struct {
	ProgressOverTime  []DailyProgressStat `json:"progress_over_time"`
	CategoryBreakdown []CategoryStat      `json:"category_breakdown"`
	TimeAnalysis      TimeAnalysis        `json:"time_analysis"`
}

type TimeAnalysis struct {
	TotalTime        int64   `json:"total_time"`
	AvgTimePerModule float64 `json:"avg_time_per_module"`
	TotalModules     int64   `json:"total_modules"`
}

// ==================== PLATFORM DTOs ====================

type HealthResponse struct {
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	Uptime      int64          `json:"uptime"`
	Environment string         `json:"environment"`
	Database    DatabaseHealth `json:"database"`
	Stats       PlatformStats  `json:"stats"`
	Memory      MemoryUsage    `json:"memory"`
}

type DatabaseHealth struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}

type PlatformStats struct {
	Users   int64 `json:"users"`
	Modules int64 `json:"modules"`
}

type MemoryUsage struct {
	UsedMB  uint64 `json:"used_mb"`
	TotalMB uint64 `json:"total_mb"`
}
