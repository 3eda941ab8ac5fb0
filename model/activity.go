package model

import (
	"encoding/json"
	"time"
)

// ActivityRetention is how long activity rows are kept before the
// cleanup job removes them.
const ActivityRetention = 90 * 24 * time.Hour

type Activity struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	UserID    string          `json:"user_id" gorm:"not null;index"`
	Action    string          `json:"action" gorm:"not null;index"`
	Data      json.RawMessage `json:"data,omitempty" gorm:"type:jsonb"`
	Page      string          `json:"page"`
	Timestamp time.Time       `json:"timestamp" gorm:"index"`
	SessionID string          `json:"session_id"`
	UserAgent string          `json:"user_agent"`
	IPAddress string          `json:"ip_address"`
	Duration  int             `json:"duration"`
	Metadata  json.RawMessage `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time       `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
