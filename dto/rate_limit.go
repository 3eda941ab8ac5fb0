package dto

import "time"

type RateLimitInfo struct {
	Allowed      bool       `json:"allowed"`
	Remaining    int        `json:"remaining"`
	ResetTime    *time.Time `json:"reset_time,omitempty"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
}

type UpdateRateLimitConfigRequest struct {
	MaxRequests int    `json:"max_requests"`
	WindowSize  string `json:"window_size"` // e.g. "15m", "1h"
	BlockTime   string `json:"block_time"`  // e.g. "30m", "2h"
	IsActive    *bool  `json:"is_active"`
}
