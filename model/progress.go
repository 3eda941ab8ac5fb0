package model

import (
	"encoding/json"
	"math"
	"time"
)

type SectionCompletion struct {
	SectionID   string    `json:"section_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type QuizAnswer struct {
	QuestionID string      `json:"question_id"`
	Answer     interface{} `json:"answer"`
	IsCorrect  bool        `json:"is_correct"`
	TimeSpent  int         `json:"time_spent"`
}

type QuizAttempt struct {
	AttemptNumber int          `json:"attempt_number"`
	Score         int          `json:"score"`
	Answers       []QuizAnswer `json:"answers"`
	TimeSpent     int          `json:"time_spent"`
	CompletedAt   time.Time    `json:"completed_at"`
}

type Bookmark struct {
	SectionID string    `json:"section_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type ProgressActivity struct {
	Action    string          `json:"action"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
	TimeSpent int             `json:"time_spent,omitempty"`
}

// Progress tracks one user's journey through one module. A (user, module)
// pair has at most one row.
type Progress struct {
	ID                string          `json:"id" gorm:"primaryKey"`
	UserID            string          `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_module"`
	ModuleID          string          `json:"module_id" gorm:"not null;index;uniqueIndex:idx_user_module"`
	Status            string          `json:"status" gorm:"default:not-started;index"`
	Progress          int             `json:"progress" gorm:"default:0"`
	SectionsCompleted json.RawMessage `json:"sections_completed" gorm:"type:jsonb"`
	QuizAttempts      json.RawMessage `json:"quiz_attempts" gorm:"type:jsonb"`
	BestQuizScore     int             `json:"best_quiz_score" gorm:"default:0"`
	TimeSpent         int             `json:"time_spent" gorm:"default:0"` // seconds
	Bookmarks         json.RawMessage `json:"bookmarks" gorm:"type:jsonb"`
	ActivityLog       json.RawMessage `json:"activity_log" gorm:"type:jsonb"`
	CertificateIssued bool            `json:"certificate_issued" gorm:"default:false"`
	CertificateID     string          `json:"certificate_id"`
	StartedAt         time.Time       `json:"started_at"`
	CompletedAt       *time.Time      `json:"completed_at"`
	LastAccessed      time.Time       `json:"last_accessed"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	Module *Module `json:"module,omitempty" gorm:"foreignKey:ModuleID"`
}

func (p *Progress) DecodeSectionsCompleted() []SectionCompletion {
	var sections []SectionCompletion
	if len(p.SectionsCompleted) > 0 {
		_ = json.Unmarshal(p.SectionsCompleted, &sections)
	}
	return sections
}

func (p *Progress) DecodeQuizAttempts() []QuizAttempt {
	var attempts []QuizAttempt
	if len(p.QuizAttempts) > 0 {
		_ = json.Unmarshal(p.QuizAttempts, &attempts)
	}
	return attempts
}

func (p *Progress) DecodeBookmarks() []Bookmark {
	var bookmarks []Bookmark
	if len(p.Bookmarks) > 0 {
		_ = json.Unmarshal(p.Bookmarks, &bookmarks)
	}
	return bookmarks
}

func (p *Progress) DecodeActivityLog() []ProgressActivity {
	var entries []ProgressActivity
	if len(p.ActivityLog) > 0 {
		_ = json.Unmarshal(p.ActivityLog, &entries)
	}
	return entries
}

func (p *Progress) HasCompletedSection(sectionID string) bool {
	for _, s := range p.DecodeSectionsCompleted() {
		if s.SectionID == sectionID {
			return true
		}
	}
	return false
}

// CalculateProgress returns completed sections as a rounded percentage of
// the module's total sections.
func CalculateProgress(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// IsQuizPassed reports whether any recorded attempt met the passing score.
func (p *Progress) IsQuizPassed(passingScore int) bool {
	return p.BestQuizScore >= passingScore
}
