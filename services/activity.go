package services

import (
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type ActivityService struct {
	context.DefaultService

	sqlSvc      *PostgresService
	progressSvc *ProgressService
}

const ACTIVITY_SVC = "activity_svc"

func (svc ActivityService) Id() string {
	return ACTIVITY_SVC
}

func (svc *ActivityService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ActivityService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	return nil
}

// ==================== TRACKING ====================

func (svc *ActivityService) Track(userID string, req dto.TrackActivityRequest, sessionID, userAgent, ip string) (*dto.TrackActivityResponse, error) {
	activity := &model.Activity{
		UserID:    userID,
		Action:    req.Action,
		Data:      req.Data,
		Page:      req.Page,
		SessionID: sessionID,
		UserAgent: userAgent,
		IPAddress: ip,
		Duration:  req.Duration,
	}
	if req.Timestamp != nil {
		activity.Timestamp = *req.Timestamp
	}

	if err := svc.sqlSvc.Activities().CreateActivity(activity); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to record activity")
	}

	svc.progressSvc.RefreshStreak(userID)

	return &dto.TrackActivityResponse{
		Success:    true,
		Message:    "Activity tracked",
		ActivityID: activity.ID,
	}, nil
}

// computeStreak counts consecutive calendar days of activity ending today
// or yesterday. Any older anchor breaks the streak to zero.
func computeStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	truncate := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}

	seen := map[time.Time]bool{}
	for _, d := range days {
		seen[truncate(d)] = true
	}

	today := truncate(now)
	anchor := today
	if !seen[anchor] {
		anchor = today.AddDate(0, 0, -1)
		if !seen[anchor] {
			return 0
		}
	}

	streak := 0
	for day := anchor; seen[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// ==================== HISTORY ====================

func (svc *ActivityService) History(userID string, q dto.ActivityHistoryQuery) (*dto.ActivityHistoryResponse, error) {
	activities, total, err := svc.sqlSvc.Activities().ListUserActivities(userID, q)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load activity history")
	}

	since := timeframeStart(q.Timeframe)
	stats, err := svc.sqlSvc.Activities().UserActionStats(userID, since)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to load activity stats")
	}

	return &dto.ActivityHistoryResponse{
		Activities: activities,
		Stats:      stats,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func timeframeStart(timeframe string) time.Time {
	now := time.Now()
	switch timeframe {
	case "24h":
		return now.Add(-24 * time.Hour)
	case "30d":
		return now.AddDate(0, 0, -30)
	case "90d":
		return now.AddDate(0, 0, -90)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// ==================== ADMIN ====================

func (svc *ActivityService) AdminList(q dto.ActivityHistoryQuery) (*dto.AdminActivityResponse, error) {
	activities, total, err := svc.sqlSvc.Activities().AdminListActivities(q.UserID, q.Action, q.StartDate, q.EndDate, q.Page, q.Limit)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load activities")
	}

	summary, err := svc.sqlSvc.Activities().ActionStats(timeframeStart(q.Timeframe))
	if err != nil {
		log.WithError(err).Warn("Failed to load activity summary")
	}

	// Strip password hashes before the rows leave the service
	for i := range activities {
		if activities[i].User != nil {
			activities[i].User.Password = ""
		}
	}

	return &dto.AdminActivityResponse{
		Activities: activities,
		Summary:    summary,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}
