package model

import "time"

// RateLimit is one counter window for an identifier (IP or user id) on an
// endpoint class. A set BlockedUntil overrides the window entirely.
type RateLimit struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Identifier   string     `json:"identifier" gorm:"not null;index;size:255"`
	EndpointType string     `json:"endpoint_type" gorm:"not null;index;size:50"`
	RequestCount int        `json:"request_count" gorm:"default:0;not null"`
	WindowStart  time.Time  `json:"window_start" gorm:"not null;index"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty" gorm:"index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsBlocked reports whether the identifier is inside an active block.
func (r *RateLimit) IsBlocked(now time.Time) bool {
	return r.BlockedUntil != nil && r.BlockedUntil.After(now)
}

// RateLimitConfig is the persisted form of an endpoint-class policy. The
// runtime works off an in-memory copy; this table exists for operators.
type RateLimitConfig struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	EndpointType string    `json:"endpoint_type" gorm:"uniqueIndex;not null;size:50"`
	MaxRequests  int       `json:"max_requests" gorm:"not null"`
	WindowSize   int       `json:"window_size" gorm:"not null"` // seconds
	BlockTime    int       `json:"block_time" gorm:"not null"`  // seconds
	Description  string    `json:"description" gorm:"type:text"`
	IsActive     bool      `json:"is_active" gorm:"default:true;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
