package services

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type RateLimitService struct {
	context.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	sqlSvc *PostgresService
}

// RateLimitConfig holds the in-memory limit settings for one endpoint type.
type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	BlockTime    time.Duration
	Description  string
	IsActive     bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.initDefaultConfigs()

	go svc.startCleanupJob()

	return nil
}

// ==================== CONFIGURATION MANAGEMENT ====================

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		// Authentication endpoints
		"login": {
			EndpointType: "login",
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			BlockTime:    30 * time.Minute,
			Description:  "Login attempts rate limit",
			IsActive:     true,
		},
		"register": {
			EndpointType: "register",
			MaxRequests:  5,
			WindowSize:   15 * time.Minute,
			BlockTime:    60 * time.Minute,
			Description:  "Registration rate limit",
			IsActive:     true,
		},

		// Learning endpoints
		"quiz_submit": {
			EndpointType: "quiz_submit",
			MaxRequests:  30,
			WindowSize:   time.Hour,
			BlockTime:    time.Hour,
			Description:  "Quiz submission rate limit",
			IsActive:     true,
		},
		"challenge_attempt": {
			EndpointType: "challenge_attempt",
			MaxRequests:  30,
			WindowSize:   time.Hour,
			BlockTime:    time.Hour,
			Description:  "Challenge attempt rate limit",
			IsActive:     true,
		},
		"activity_track": {
			EndpointType: "activity_track",
			MaxRequests:  300,
			WindowSize:   time.Hour,
			BlockTime:    30 * time.Minute,
			Description:  "Activity tracking rate limit",
			IsActive:     true,
		},

		// API endpoints
		"api_general": {
			EndpointType: "api_general",
			MaxRequests:  1000,
			WindowSize:   time.Hour,
			BlockTime:    time.Hour,
			Description:  "General API rate limit per IP",
			IsActive:     true,
		},
		"api_strict": {
			EndpointType: "api_strict",
			MaxRequests:  100,
			WindowSize:   10 * time.Minute,
			BlockTime:    24 * time.Hour,
			Description:  "Strict rate limit for abuse prevention",
			IsActive:     true,
		},

		// User-specific endpoints
		"change_password": {
			EndpointType: "change_password",
			MaxRequests:  3,
			WindowSize:   time.Hour,
			BlockTime:    2 * time.Hour,
			Description:  "Password change rate limit",
			IsActive:     true,
		},
		"profile_update": {
			EndpointType: "profile_update",
			MaxRequests:  10,
			WindowSize:   time.Hour,
			BlockTime:    30 * time.Minute,
			Description:  "Profile update rate limit",
			IsActive:     true,
		},
	}
}

// ==================== CORE RATE LIMITING LOGIC ====================

func (svc *RateLimitService) IsAllowed(identifier, endpointType string) (bool, *dto.RateLimitInfo, error) {
	svc.mutex.RLock()
	config, exists := svc.configs[endpointType]
	svc.mutex.RUnlock()

	if !exists || !config.IsActive {
		// If no config exists or inactive, allow the request
		return true, &dto.RateLimitInfo{
			Allowed:   true,
			Remaining: -1,
		}, nil
	}

	now := time.Now()
	windowStart := now.Add(-config.WindowSize)

	rateLimit, err := svc.sqlSvc.RateLimits().GetRateLimit(identifier, endpointType)
	if err != nil {
		return false, nil, err
	}

	// Check if currently blocked
	if rateLimit != nil && rateLimit.IsBlocked(now) {
		return false, &dto.RateLimitInfo{
			Allowed:      false,
			Remaining:    0,
			ResetTime:    rateLimit.BlockedUntil,
			BlockedUntil: rateLimit.BlockedUntil,
		}, nil
	}

	// If no existing record or window has passed, create/reset
	if rateLimit == nil || rateLimit.WindowStart.Before(windowStart) {
		if rateLimit == nil {
			rateLimit = &model.RateLimit{
				Identifier:   identifier,
				EndpointType: endpointType,
				CreatedAt:    now,
			}
		}
		rateLimit.RequestCount = 1
		rateLimit.WindowStart = now
		rateLimit.BlockedUntil = nil
		rateLimit.UpdatedAt = now

		if err := svc.sqlSvc.RateLimits().SaveRateLimit(rateLimit); err != nil {
			return false, nil, err
		}

		resetTime := now.Add(config.WindowSize)
		return true, &dto.RateLimitInfo{
			Allowed:   true,
			Remaining: config.MaxRequests - 1,
			ResetTime: &resetTime,
		}, nil
	}

	// Check if limit exceeded
	if rateLimit.RequestCount >= config.MaxRequests {
		blockedUntil := now.Add(config.BlockTime)
		rateLimit.BlockedUntil = &blockedUntil
		rateLimit.UpdatedAt = now

		if err := svc.sqlSvc.RateLimits().UpdateRateLimit(rateLimit); err != nil {
			return false, nil, err
		}

		return false, &dto.RateLimitInfo{
			Allowed:      false,
			Remaining:    0,
			ResetTime:    &blockedUntil,
			BlockedUntil: &blockedUntil,
		}, nil
	}

	// Increment request count
	rateLimit.RequestCount++
	rateLimit.UpdatedAt = now

	if err := svc.sqlSvc.RateLimits().UpdateRateLimit(rateLimit); err != nil {
		return false, nil, err
	}

	resetTime := rateLimit.WindowStart.Add(config.WindowSize)
	return true, &dto.RateLimitInfo{
		Allowed:   true,
		Remaining: config.MaxRequests - rateLimit.RequestCount,
		ResetTime: &resetTime,
	}, nil
}

// ==================== MIDDLEWARE FUNCTIONS ====================

// RateLimit creates a rate limiting middleware for specific endpoint types
func (svc *RateLimitService) RateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := svc.getIdentifier(c, endpointType)

		allowed, info, err := svc.IsAllowed(identifier, endpointType)
		if err != nil {
			log.Printf("Rate limit check error for %s (%s): %v", endpointType, identifier, err)
			// Continue with request on error to avoid blocking users due to system issues
			return c.Next()
		}

		svc.addRateLimitHeaders(c, info)

		if !allowed {
			return svc.handleRateLimitExceeded(c, endpointType, info)
		}

		return c.Next()
	}
}

// IPRateLimit applies general rate limiting by IP address
func (svc *RateLimitService) IPRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := getClientIP(c)

		allowed, info, err := svc.IsAllowed(ip, "api_general")
		if err != nil {
			log.Printf("IP rate limit check error for %s: %v", ip, err)
			return c.Next()
		}

		svc.addRateLimitHeaders(c, info)

		if !allowed {
			return svc.handleRateLimitExceeded(c, "api_general", info)
		}

		return c.Next()
	}
}

// StrictRateLimit applies strict rate limiting for sensitive endpoints
func (svc *RateLimitService) StrictRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := getClientIP(c)

		allowed, info, err := svc.IsAllowed(ip, "api_strict")
		if err != nil {
			log.Printf("Strict rate limit check error for %s: %v", ip, err)
			return shared.ResponseJSON(c, http.StatusInternalServerError, "Rate limit service unavailable", nil)
		}

		if !allowed {
			return svc.handleRateLimitExceeded(c, "api_strict", info)
		}

		return c.Next()
	}
}

// UserBasedRateLimit applies rate limiting based on authenticated user
func (svc *RateLimitService) UserBasedRateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals(shared.UserID)
		userIDStr := ""
		if userID != nil {
			userIDStr, _ = userID.(string)
		}
		if userIDStr == "" {
			// Fall back to IP if user not authenticated
			userIDStr = getClientIP(c)
		}

		allowed, info, err := svc.IsAllowed(userIDStr, endpointType)
		if err != nil {
			log.Printf("User rate limit check error for %s (%s): %v", endpointType, userIDStr, err)
			return c.Next()
		}

		svc.addRateLimitHeaders(c, info)

		if !allowed {
			return svc.handleRateLimitExceeded(c, endpointType, info)
		}

		return c.Next()
	}
}

// ==================== HELPER FUNCTIONS ====================

func (svc *RateLimitService) getIdentifier(c *fiber.Ctx, endpointType string) string {
	switch endpointType {
	case "login", "register":
		// For auth endpoints, use IP + email if available
		email := svc.getEmailFromRequest(c)
		if email != "" {
			return fmt.Sprintf("%s:%s", getClientIP(c), email)
		}
		return getClientIP(c)

	case "quiz_submit", "challenge_attempt", "activity_track", "change_password", "profile_update":
		// For authenticated actions, use user ID
		userID := c.Locals(shared.UserID)
		if userID != nil {
			if userIDStr, ok := userID.(string); ok && userIDStr != "" {
				return userIDStr
			}
		}
		return getClientIP(c)

	default:
		return getClientIP(c)
	}
}

func (svc *RateLimitService) getEmailFromRequest(c *fiber.Ctx) string {
	var reqBody map[string]interface{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&reqBody); err == nil {
			if email, exists := reqBody["email"]; exists {
				if emailStr, ok := email.(string); ok {
					return emailStr
				}
			}
		}
	}
	return ""
}

func (svc *RateLimitService) addRateLimitHeaders(c *fiber.Ctx, info *dto.RateLimitInfo) {
	if info == nil {
		return
	}

	if info.Remaining >= 0 {
		c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	}

	if info.ResetTime != nil {
		c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}

	if info.BlockedUntil != nil {
		retryAfter := int(time.Until(*info.BlockedUntil).Seconds())
		if retryAfter > 0 {
			c.Set("Retry-After", strconv.Itoa(retryAfter))
		}
	}
}

func (svc *RateLimitService) handleRateLimitExceeded(c *fiber.Ctx, endpointType string, info *dto.RateLimitInfo) error {
	message := svc.getRateLimitMessage(endpointType)

	response := map[string]interface{}{
		"error":   "Rate limit exceeded",
		"message": message,
	}

	if info.BlockedUntil != nil {
		response["blocked_until"] = info.BlockedUntil.Unix()
		response["retry_after"] = int(time.Until(*info.BlockedUntil).Seconds())
	}

	return shared.ResponseJSON(c, http.StatusTooManyRequests, message, response)
}

func (svc *RateLimitService) getRateLimitMessage(endpointType string) string {
	messages := map[string]string{
		"login":             "Too many login attempts. Please try again later.",
		"register":          "Too many registration attempts. Please try again later.",
		"quiz_submit":       "Too many quiz submissions. Please take a break.",
		"challenge_attempt": "Too many challenge attempts. Please take a break.",
		"activity_track":    "Too many activity events. Please slow down.",
		"change_password":   "Too many password change attempts. Please try again later.",
		"profile_update":    "Too many profile updates. Please try again later.",
		"api_general":       "Too many requests. Please slow down.",
		"api_strict":        "Rate limit exceeded. Access temporarily blocked.",
	}

	if message, exists := messages[endpointType]; exists {
		return message
	}

	return "Too many requests. Please try again later."
}

// ==================== UTILITY FUNCTIONS ====================

func getClientIP(c *fiber.Ctx) string {
	// Check for forwarded IP first (for load balancers/proxies)
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if ip != "" {
				return ip
			}
		}
	}

	realIP := c.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	cfIP := c.Get("CF-Connecting-IP")
	if cfIP != "" {
		return cfIP
	}

	ip, _, err := net.SplitHostPort(c.Context().RemoteAddr().String())
	if err != nil {
		return c.Context().RemoteAddr().String()
	}

	return ip
}

// ==================== ADMIN FUNCTIONS ====================

func (svc *RateLimitService) GetRateLimitStats() (map[string]interface{}, error) {
	svc.mutex.RLock()
	configs := make(map[string]*RateLimitConfig)
	for k, v := range svc.configs {
		configs[k] = v
	}
	svc.mutex.RUnlock()

	totalRecords, err := svc.sqlSvc.RateLimits().CountRateLimits()
	if err != nil {
		return nil, err
	}

	blockedRecords, err := svc.sqlSvc.RateLimits().CountBlocked(time.Now())
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"configs":         configs,
		"total_records":   totalRecords,
		"blocked_records": blockedRecords,
		"timestamp":       time.Now(),
	}, nil
}

func (svc *RateLimitService) RemoveRateLimit(identifier, endpointType string) error {
	return svc.sqlSvc.RateLimits().DeleteRateLimit(identifier, endpointType)
}

func (svc *RateLimitService) UpdateConfig(endpointType string, req dto.UpdateRateLimitConfigRequest) (*RateLimitConfig, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	config, exists := svc.configs[endpointType]
	if !exists {
		return nil, shared.NewNotFoundError(nil, "Endpoint type not found")
	}

	if req.MaxRequests > 0 {
		config.MaxRequests = req.MaxRequests
	}

	if req.WindowSize != "" {
		if duration, err := time.ParseDuration(req.WindowSize); err == nil {
			config.WindowSize = duration
		}
	}

	if req.BlockTime != "" {
		if duration, err := time.ParseDuration(req.BlockTime); err == nil {
			config.BlockTime = duration
		}
	}

	if req.IsActive != nil {
		config.IsActive = *req.IsActive
	}

	return config, nil
}

// ==================== BACKGROUND JOBS ====================

func (svc *RateLimitService) CleanupOldRecords() error {
	svc.mutex.RLock()
	maxWindow := time.Hour
	for _, config := range svc.configs {
		if config.WindowSize > maxWindow {
			maxWindow = config.WindowSize
		}
	}
	svc.mutex.RUnlock()

	deleted, err := svc.sqlSvc.RateLimits().CleanupOldRecords(maxWindow)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("Rate limit cleanup removed %d expired records", deleted)
	}
	return nil
}

func (svc *RateLimitService) startCleanupJob() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := svc.CleanupOldRecords(); err != nil {
			log.Printf("Rate limit cleanup error: %v", err)
		}
	}
}
