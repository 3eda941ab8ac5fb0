package model

import (
	"encoding/json"
	"time"
)

// ChallengeContent holds the scenario shown to the user and the solution
// used for grading. Solution must never be serialized in API responses.
type ChallengeContent struct {
	Scenario string          `json:"scenario"`
	Data     json.RawMessage `json:"data,omitempty"`
	Hints    []string        `json:"hints,omitempty"`
	Solution json.RawMessage `json:"solution,omitempty"`
}

type ChallengeStats struct {
	Attempts     int `json:"attempts" gorm:"default:0"`
	Successes    int `json:"successes" gorm:"default:0"`
	AverageTime  int `json:"average_time" gorm:"default:0"`
	AverageScore int `json:"average_score" gorm:"default:0"`
}

type Challenge struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Type        string          `json:"type" gorm:"not null;index"`
	Category    string          `json:"category" gorm:"index"`
	Difficulty  string          `json:"difficulty" gorm:"default:easy"`
	Points      int             `json:"points" gorm:"default:10"`
	TimeLimit   int             `json:"time_limit" gorm:"default:300"` // seconds
	Content     json.RawMessage `json:"content" gorm:"type:jsonb"`
	IsActive    bool            `json:"is_active" gorm:"default:true;index"`
	AuthorID    string          `json:"author_id" gorm:"index"`
	Stats       ChallengeStats  `json:"stats" gorm:"embedded;embeddedPrefix:stats_"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (c *Challenge) DecodeContent() (*ChallengeContent, error) {
	var content ChallengeContent
	if len(c.Content) == 0 {
		return &content, nil
	}
	if err := json.Unmarshal(c.Content, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// SuccessRate reports successes as a percentage of attempts.
func (c *Challenge) SuccessRate() int {
	if c.Stats.Attempts == 0 {
		return 0
	}
	return int(float64(c.Stats.Successes) / float64(c.Stats.Attempts) * 100)
}

type ChallengeAttempt struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"not null;index"`
	ChallengeID string          `json:"challenge_id" gorm:"not null;index"`
	Answers     json.RawMessage `json:"answers" gorm:"type:jsonb"`
	Score       int             `json:"score" gorm:"default:0"`
	TimeSpent   int             `json:"time_spent" gorm:"default:0"` // seconds
	IsSuccessful bool           `json:"is_successful" gorm:"default:false;index"`
	HintsUsed   int             `json:"hints_used" gorm:"default:0"`
	Feedback    string          `json:"feedback"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Challenge *Challenge `json:"challenge,omitempty" gorm:"foreignKey:ChallengeID"`
}
