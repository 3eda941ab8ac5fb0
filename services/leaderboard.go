package services

import (
	goContext "context"
	"fmt"
	"strings"
	"time"

	"github.com/alphabatem/common/context"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

const (
	leaderboardCacheTTL = 5 * time.Minute

	PeriodAllTime = "all"
	PeriodWeekly  = "weekly"
)

type LeaderboardService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	redisSvc *RedisService
}

const LEADERBOARD_SVC = "leaderboard_svc"

func (svc LeaderboardService) Id() string {
	return LEADERBOARD_SVC
}

func (svc *LeaderboardService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *LeaderboardService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// maskEmail hides most of the local part so the board never exposes full
// addresses.
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at+1:]
	visible := 2
	if len(local) < 2 {
		visible = 1
	}
	return local[:visible] + "***@" + domain
}

// GetLeaderboard returns the points board for a period, cached in Redis
// for a few minutes since it is the hottest read on the platform.
func (svc *LeaderboardService) GetLeaderboard(period string, limit int, userID string) (*dto.LeaderboardResponse, error) {
	if period != PeriodWeekly {
		period = PeriodAllTime
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("leaderboard:%s:%d", period, limit)
	ctx := goContext.Background()

	var resp dto.LeaderboardResponse
	if svc.redisSvc.GetJSON(ctx, cacheKey, &resp) && len(resp.Entries) > 0 {
		svc.attachUserEntry(&resp, userID)
		return &resp, nil
	}

	var users []model.User
	var err error
	if period == PeriodWeekly {
		users, err = svc.sqlSvc.Users().TopUsersByPointsSince(time.Now().AddDate(0, 0, -7), limit)
	} else {
		users, err = svc.sqlSvc.Users().TopUsersByPoints(limit)
	}
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load leaderboard")
	}

	resp = dto.LeaderboardResponse{
		Entries:   make([]dto.LeaderboardEntry, 0, len(users)),
		Period:    period,
		UpdatedAt: time.Now(),
	}
	for i := range users {
		resp.Entries = append(resp.Entries, dto.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      users[i].ID,
			Name:        users[i].Name,
			Email:       maskEmail(users[i].Email),
			TotalPoints: users[i].Stats.TotalPoints,
			Streak:      users[i].Stats.CurrentStreak,
		})
	}

	svc.redisSvc.SetJSON(ctx, cacheKey, resp, leaderboardCacheTTL)

	svc.attachUserEntry(&resp, userID)
	return &resp, nil
}

// attachUserEntry adds the caller's own rank when they are not in the top
// slice. Computed per caller, never cached.
func (svc *LeaderboardService) attachUserEntry(resp *dto.LeaderboardResponse, userID string) {
	if userID == "" {
		return
	}
	for _, entry := range resp.Entries {
		if entry.UserID == userID {
			return
		}
	}

	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		return
	}
	rank, err := svc.sqlSvc.Users().UserPointsRank(user.Stats.TotalPoints)
	if err != nil {
		return
	}

	resp.UserEntry = &dto.LeaderboardEntry{
		Rank:        rank,
		UserID:      user.ID,
		Name:        user.Name,
		Email:       maskEmail(user.Email),
		TotalPoints: user.Stats.TotalPoints,
		Streak:      user.Stats.CurrentStreak,
	}
}

// InvalidateCache drops every cached board variant.
func (svc *LeaderboardService) InvalidateCache() {
	svc.redisSvc.DeletePattern(goContext.Background(), "leaderboard:*")
}
