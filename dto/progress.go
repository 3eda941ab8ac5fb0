package dto

import (
	"encoding/json"
	"time"

	"github.com/aadidev-sraj/project-lyra/model"
)

// ==================== PROGRESS REQUEST DTOs ====================

type CompleteSectionRequest struct {
	ModuleID  string `json:"module_id" validate:"required"`
	SectionID string `json:"section_id" validate:"required"`
	TimeSpent int    `json:"time_spent" validate:"omitempty,gte=0"`
}

func (c CompleteSectionRequest) Validate() error {
	return GetValidator().Struct(c)
}

// QuizAnswerSubmission is one positional quiz answer, optionally carrying
// how long the question took.
type QuizAnswerSubmission struct {
	Answer    interface{} `json:"answer"`
	TimeSpent int         `json:"time_spent" validate:"omitempty,gte=0"`
}

type SubmitQuizRequest struct {
	ModuleID  string                 `json:"module_id" validate:"required"`
	Answers   []QuizAnswerSubmission `json:"answers" validate:"required"`
	TimeSpent int                    `json:"time_spent" validate:"omitempty,gte=0"`
}

func (s SubmitQuizRequest) Validate() error {
	return GetValidator().Struct(s)
}

type UpdateProgressRequest struct {
	ModuleID  string          `json:"module_id" validate:"required"`
	Action    string          `json:"action" validate:"required,oneof=start section_complete pause resume"`
	Data      json.RawMessage `json:"data,omitempty"`
	TimeSpent int             `json:"time_spent" validate:"omitempty,gte=0"`
}

func (u UpdateProgressRequest) Validate() error {
	return GetValidator().Struct(u)
}

type BookmarkRequest struct {
	ModuleID  string `json:"module_id" validate:"required"`
	SectionID string `json:"section_id" validate:"required"`
	Note      string `json:"note" validate:"omitempty,max=500"`
}

func (b BookmarkRequest) Validate() error {
	return GetValidator().Struct(b)
}

// ==================== PROGRESS RESPONSE DTOs ====================

type ProgressSummary struct {
	ID                string     `json:"id"`
	ModuleID          string     `json:"module_id"`
	Status            string     `json:"status"`
	Progress          int        `json:"progress"`
	BestQuizScore     int        `json:"best_quiz_score"`
	TimeSpent         int        `json:"time_spent"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	LastAccessed      time.Time  `json:"last_accessed"`
	CertificateIssued bool       `json:"certificate_issued"`
}

func NewProgressSummary(p *model.Progress) ProgressSummary {
	return ProgressSummary{
		ID:                p.ID,
		ModuleID:          p.ModuleID,
		Status:            p.Status,
		Progress:          p.Progress,
		BestQuizScore:     p.BestQuizScore,
		TimeSpent:         p.TimeSpent,
		StartedAt:         p.StartedAt,
		CompletedAt:       p.CompletedAt,
		LastAccessed:      p.LastAccessed,
		CertificateIssued: p.CertificateIssued,
	}
}

type ProgressDetailResponse struct {
	ProgressSummary
	SectionsCompleted []model.SectionCompletion `json:"sections_completed"`
	QuizAttempts      []model.QuizAttempt       `json:"quiz_attempts"`
	Bookmarks         []model.Bookmark          `json:"bookmarks"`
	Module            *ModuleResponse           `json:"module,omitempty"`
}

type ProgressListResponse struct {
	Progress   []ProgressDetailResponse `json:"progress"`
	Pagination Pagination               `json:"pagination"`
}

type CompleteSectionResponse struct {
	Progress        ProgressSummary       `json:"progress"`
	IsNewCompletion bool                  `json:"is_new_completion"`
	Achievements    []AchievementResponse `json:"achievements,omitempty"`
}

type QuizResultResponse struct {
	Score          int  `json:"score"`
	IsPassed       bool `json:"is_passed"`
	CorrectAnswers int  `json:"correct_answers"`
	TotalQuestions int  `json:"total_questions"`
	PassingScore   int  `json:"passing_score"`
	AttemptNumber  int  `json:"attempt_number"`
	TimeSpent      int  `json:"time_spent"`

	Progress        ProgressSummary       `json:"progress"`
	IsNewCompletion bool                  `json:"is_new_completion"`
	Achievements    []AchievementResponse `json:"achievements,omitempty"`
}

type UpdateProgressResponse struct {
	Success      bool                  `json:"success"`
	Message      string                `json:"message"`
	Progress     ProgressSummary       `json:"progress"`
	Achievements []AchievementResponse `json:"achievements,omitempty"`
}

type BookmarkListItem struct {
	ModuleID    string    `json:"module_id"`
	ModuleTitle string    `json:"module_title"`
	ModuleSlug  string    `json:"module_slug"`
	SectionID   string    `json:"section_id"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookmarkListResponse struct {
	Bookmarks []BookmarkListItem `json:"bookmarks"`
	Total     int                `json:"total"`
}

// ==================== ANALYTICS DTOs ====================

type ProgressAnalyticsResponse struct {
	StatusSummary  []ProgressStatusStat `json:"status_summary"`
	Categories     []CategoryStat       `json:"categories"`
	Recent         []ProgressSummary    `json:"recent"`
	DailyProgress  []DailyProgressStat  `json:"daily_progress"`
	LearningStreak StreakInfo           `json:"learning_streak"`
	Summary        UserStatsSummary     `json:"summary"`
}

type DailyProgressStat struct {
	Date        string  `json:"date"`
	Count       int64   `json:"count"`
	AvgProgress float64 `json:"avg_progress"`
}

type StreakInfo struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type RecommendationsResponse struct {
	Modules []ModuleResponse `json:"modules"`
}
