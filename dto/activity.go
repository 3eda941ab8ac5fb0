package dto

import (
	"encoding/json"
	"time"

	"github.com/aadidev-sraj/project-lyra/model"
)

// ==================== ACTIVITY REQUEST DTOs ====================

type TrackActivityRequest struct {
	Action    string          `json:"action" validate:"required"`
	Page      string          `json:"page" validate:"required"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
	Duration  int             `json:"duration,omitempty" validate:"omitempty,gte=0"`
}

func (t TrackActivityRequest) Validate() error {
	return GetValidator().Struct(t)
}

type ActivityHistoryQuery struct {
	Page      int
	Limit     int
	Action    string
	StartDate *time.Time
	EndDate   *time.Time
	Timeframe string
	UserID    string // admin listing only
}

// ==================== ACTIVITY RESPONSE DTOs ====================

type TrackActivityResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ActivityID string `json:"activity_id"`
}

type ActivityHistoryResponse struct {
	Activities []model.Activity    `json:"activities"`
	Stats      []ActivityActionStat `json:"stats"`
	Pagination Pagination          `json:"pagination"`
}

type ActivityActionStat struct {
	Action      string `json:"action"`
	Count       int64  `json:"count"`
	UniqueUsers int64  `json:"unique_users,omitempty"`
}

type AdminActivityResponse struct {
	Activities []model.Activity     `json:"activities"`
	Summary    []ActivityActionStat `json:"summary"`
	Pagination Pagination           `json:"pagination"`
}
