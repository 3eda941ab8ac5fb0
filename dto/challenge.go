package dto

import (
	"encoding/json"
	"time"

	"github.com/aadidev-sraj/project-lyra/model"
)

// ==================== CHALLENGE REQUEST DTOs ====================

type CreateChallengeRequest struct {
	Title       string          `json:"title" validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"required,min=10,max=500"`
	Type        string          `json:"type" validate:"required,oneof=phishing-detection password-strength network-analysis malware-identification"`
	Category    string          `json:"category" validate:"omitempty,module_category"`
	Difficulty  string          `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Points      int             `json:"points" validate:"required,gte=10,lte=1000"`
	TimeLimit   int             `json:"time_limit" validate:"omitempty,gte=60,lte=3600"`
	Content     ChallengeContentRequest `json:"content" validate:"required"`
	IsActive    bool            `json:"is_active"`
}

type ChallengeContentRequest struct {
	Scenario string          `json:"scenario" validate:"required"`
	Data     json.RawMessage `json:"data,omitempty"`
	Hints    []string        `json:"hints,omitempty"`
	Solution json.RawMessage `json:"solution" validate:"required"`
}

func (c CreateChallengeRequest) Validate() error {
	return GetValidator().Struct(c)
}

type SubmitAttemptRequest struct {
	Answers   json.RawMessage `json:"answers" validate:"required"`
	StartedAt time.Time       `json:"started_at" validate:"required"`
	HintsUsed int             `json:"hints_used" validate:"omitempty,gte=0"`
	TimeSpent int             `json:"time_spent" validate:"omitempty,gte=0"`
}

func (s SubmitAttemptRequest) Validate() error {
	return GetValidator().Struct(s)
}

type ListChallengesQuery struct {
	Type       string
	Difficulty string
	Category   string
	Page       int
	Limit      int
}

// ==================== CHALLENGE RESPONSE DTOs ====================

// ChallengeResponse strips the solution from the content payload.
type ChallengeResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Type        string               `json:"type"`
	Category    string               `json:"category"`
	Difficulty  string               `json:"difficulty"`
	Points      int                  `json:"points"`
	TimeLimit   int                  `json:"time_limit"`
	Content     ChallengeContentView `json:"content"`
	IsActive    bool                 `json:"is_active"`
	Stats       model.ChallengeStats `json:"stats"`
	SuccessRate int                  `json:"success_rate"`
	CreatedAt   time.Time            `json:"created_at"`
}

type ChallengeContentView struct {
	Scenario string          `json:"scenario"`
	Data     json.RawMessage `json:"data,omitempty"`
	Hints    []string        `json:"hints,omitempty"`
}

type ChallengeListResponse struct {
	Challenges []ChallengeResponse `json:"challenges"`
	Pagination Pagination          `json:"pagination"`
}

type AttemptResultResponse struct {
	Results AttemptResults `json:"results"`
}

type AttemptResults struct {
	Score         int    `json:"score"`
	OriginalScore int    `json:"original_score"`
	IsSuccessful  bool   `json:"is_successful"`
	Feedback      string `json:"feedback"`
	PointsEarned  int    `json:"points_earned"`
	HintsUsed     int    `json:"hints_used"`
	TimeSpent     int    `json:"time_spent"`
	Rank          int    `json:"rank"`
}

type TimeLimitExceededResponse struct {
	Message   string `json:"message"`
	TimeLimit int    `json:"time_limit"`
	TimeTaken int    `json:"time_taken"`
}

type AttemptSummary struct {
	ID           string    `json:"id"`
	ChallengeID  string    `json:"challenge_id"`
	Challenge    *ChallengeBrief `json:"challenge,omitempty"`
	Score        int       `json:"score"`
	TimeSpent    int       `json:"time_spent"`
	IsSuccessful bool      `json:"is_successful"`
	HintsUsed    int       `json:"hints_used"`
	Feedback     string    `json:"feedback"`
	CompletedAt  time.Time `json:"completed_at"`
}

type ChallengeBrief struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
	Points     int    `json:"points"`
}

type AttemptListResponse struct {
	Attempts   []AttemptSummary `json:"attempts"`
	Pagination Pagination       `json:"pagination"`
}

type ChallengeLeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	BestScore   int       `json:"best_score"`
	BestTime    int       `json:"best_time"`
	Attempts    int       `json:"attempts"`
	LastAttempt time.Time `json:"last_attempt"`
}

type ChallengeLeaderboardResponse struct {
	ChallengeID string                      `json:"challenge_id"`
	Entries     []ChallengeLeaderboardEntry `json:"entries"`
}

type ChallengeStatsResponse struct {
	ChallengeID   string  `json:"challenge_id"`
	TotalAttempts int64   `json:"total_attempts"`
	Successes     int64   `json:"successes"`
	SuccessRate   int     `json:"success_rate"`
	AverageScore  float64 `json:"average_score"`
	AverageTime   float64 `json:"average_time"`
}
