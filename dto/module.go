package dto

import (
	"time"

	"github.com/aadidev-sraj/project-lyra/model"
)

// ==================== MODULE REQUEST DTOs ====================

type CreateModuleRequest struct {
	Title         string               `json:"title" validate:"required,min=3,max=100"`
	Description   string               `json:"description" validate:"required,min=10,max=1000"`
	Category      string               `json:"category" validate:"required,module_category"`
	Difficulty    string               `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Points        int                  `json:"points" validate:"omitempty,gte=10,lte=1000"`
	EstimatedTime int                  `json:"estimated_time" validate:"omitempty,gte=0"`
	Sections      []model.Section      `json:"sections"`
	Quiz          *model.Quiz          `json:"quiz,omitempty"`
	Prerequisites []string             `json:"prerequisites,omitempty"`
	Tags          []string             `json:"tags,omitempty"`
	IsPublished   bool                 `json:"is_published"`
}

func (c CreateModuleRequest) Validate() error {
	return GetValidator().Struct(c)
}

type UpdateModuleRequest struct {
	Title         *string         `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description   *string         `json:"description,omitempty" validate:"omitempty,min=10,max=1000"`
	Category      *string         `json:"category,omitempty" validate:"omitempty,module_category"`
	Difficulty    *string         `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Points        *int            `json:"points,omitempty" validate:"omitempty,gte=10,lte=1000"`
	EstimatedTime *int            `json:"estimated_time,omitempty" validate:"omitempty,gte=0"`
	Sections      []model.Section `json:"sections,omitempty"`
	Quiz          *model.Quiz     `json:"quiz,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	IsPublished   *bool           `json:"is_published,omitempty"`
}

func (u UpdateModuleRequest) Validate() error {
	return GetValidator().Struct(u)
}

type ListModulesQuery struct {
	Category   string
	Difficulty string
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

// ==================== MODULE RESPONSE DTOs ====================

// ModuleResponse never carries quiz correct answers to students; the quiz
// payload is mapped through QuizView before serialization.
type ModuleResponse struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Difficulty     string            `json:"difficulty"`
	Points         int               `json:"points"`
	EstimatedTime  int               `json:"estimated_time"`
	Sections       []model.Section   `json:"sections"`
	Quiz           *QuizView         `json:"quiz,omitempty"`
	Prerequisites  []string          `json:"prerequisites,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	AuthorID       string            `json:"author_id"`
	IsPublished    bool              `json:"is_published"`
	Stats          model.ModuleStats `json:"stats"`
	CompletionRate int               `json:"completion_rate"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	UserProgress   *ProgressSummary  `json:"user_progress,omitempty"`
}

type QuizView struct {
	Questions    []QuizQuestionView `json:"questions"`
	PassingScore int                `json:"passing_score"`
}

type QuizQuestionView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Points   int      `json:"points"`
}

type ModuleListResponse struct {
	Modules    []ModuleResponse `json:"modules"`
	Pagination Pagination       `json:"pagination"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type CategoriesResponse struct {
	Categories []CategoryCount `json:"categories"`
}

type EnrollResponse struct {
	Message  string          `json:"message"`
	Progress ProgressSummary `json:"progress"`
}
