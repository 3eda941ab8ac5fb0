package model

import (
	"encoding/json"
	"time"
)

// Section is a single learning unit inside a module. Sections are stored
// as a JSON array on the module row.
type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"` // text, video, interactive, quiz, lab
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// QuizQuestion is one question of a module quiz.
type QuizQuestion struct {
	ID            string      `json:"id"`
	Question      string      `json:"question"`
	Type          string      `json:"type"` // multiple-choice, true-false, fill-blank
	Options       []string    `json:"options,omitempty"`
	CorrectAnswer interface{} `json:"correctAnswer"`
	Explanation   string      `json:"explanation,omitempty"`
	Points        int         `json:"points"`
}

type Quiz struct {
	Questions    []QuizQuestion `json:"questions"`
	PassingScore int            `json:"passingScore"`
}

type ModuleStats struct {
	Enrollments   int     `json:"enrollments" gorm:"default:0"`
	Completions   int     `json:"completions" gorm:"default:0"`
	AverageRating float64 `json:"average_rating" gorm:"default:0"`
	TotalRatings  int     `json:"total_ratings" gorm:"default:0"`
}

type Module struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	Title         string          `json:"title" gorm:"not null"`
	Slug          string          `json:"slug" gorm:"unique;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Category      string          `json:"category" gorm:"not null;index"`
	Difficulty    string          `json:"difficulty" gorm:"default:beginner"`
	Points        int             `json:"points" gorm:"default:100"`
	EstimatedTime int             `json:"estimated_time"` // minutes
	Sections      json.RawMessage `json:"sections" gorm:"type:jsonb"`
	Quiz          json.RawMessage `json:"quiz" gorm:"type:jsonb"`
	Prerequisites json.RawMessage `json:"prerequisites" gorm:"type:jsonb"`
	Tags          json.RawMessage `json:"tags" gorm:"type:jsonb"`
	AuthorID      string          `json:"author_id" gorm:"index"`
	IsPublished   bool            `json:"is_published" gorm:"default:false;index"`
	Stats         ModuleStats     `json:"stats" gorm:"embedded;embeddedPrefix:stats_"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CompletionRate reports completions as a percentage of enrollments.
func (m *Module) CompletionRate() int {
	if m.Stats.Enrollments == 0 {
		return 0
	}
	return int(float64(m.Stats.Completions) / float64(m.Stats.Enrollments) * 100)
}

func (m *Module) DecodeSections() ([]Section, error) {
	var sections []Section
	if len(m.Sections) == 0 {
		return sections, nil
	}
	if err := json.Unmarshal(m.Sections, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (m *Module) DecodeQuiz() (*Quiz, error) {
	if len(m.Quiz) == 0 || string(m.Quiz) == "null" {
		return nil, nil
	}
	var quiz Quiz
	if err := json.Unmarshal(m.Quiz, &quiz); err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, nil
	}
	if quiz.PassingScore == 0 {
		quiz.PassingScore = 70
	}
	return &quiz, nil
}
