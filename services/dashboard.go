package services

import (
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type DashboardService struct {
	context.DefaultService

	sqlSvc      *PostgresService
	progressSvc *ProgressService
}

const DASHBOARD_SVC = "dashboard_svc"

func (svc DashboardService) Id() string {
	return DASHBOARD_SVC
}

func (svc *DashboardService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *DashboardService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	return nil
}

func (svc *DashboardService) GetDashboard(userID string) (*dto.DashboardResponse, error) {
	// Recompute the streak on every dashboard read so learning done through
	// the progress endpoints is reflected without a separate tracking call.
	svc.progressSvc.RefreshStreak(userID)

	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "User not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load user")
	}

	completed, _ := svc.sqlSvc.Progress().CountByStatus(userID, shared.StatusCompleted)
	inProgress, _ := svc.sqlSvc.Progress().CountByStatus(userID, shared.StatusInProgress)
	attempts, _ := svc.sqlSvc.Challenges().CountUserAttempts(userID)
	successful, _ := svc.sqlSvc.Challenges().CountUserSuccessfulAttempts(userID)
	weekly, _ := svc.sqlSvc.Progress().CountCompletedSince(userID, time.Now().AddDate(0, 0, -7))

	successRate := 0
	if attempts > 0 {
		successRate = int(float64(successful) / float64(attempts) * 100)
	}

	resp := &dto.DashboardResponse{
		User: dto.DashboardUser{
			Stats:       user.Stats,
			Preferences: user.Preferences,
		},
		Overview: dto.DashboardOverview{
			CompletedModules:       completed,
			InProgressModules:      inProgress,
			TotalChallengeAttempts: attempts,
			SuccessfulChallenges:   successful,
			SuccessRate:            successRate,
			CurrentStreak:          user.Stats.CurrentStreak,
		},
		WeeklyProgress: weekly,
	}

	recentProgress, _, err := svc.sqlSvc.Progress().ListUserProgress(userID, "", 1, 3)
	if err == nil {
		for i := range recentProgress {
			resp.RecentActivity.Modules = append(resp.RecentActivity.Modules, dto.NewProgressSummary(&recentProgress[i]))
		}
	}

	recentAttempts, _, err := svc.sqlSvc.Challenges().ListUserAttempts(userID, 1, 3)
	if err == nil {
		for i := range recentAttempts {
			a := &recentAttempts[i]
			summary := dto.AttemptSummary{
				ID:           a.ID,
				ChallengeID:  a.ChallengeID,
				Score:        a.Score,
				TimeSpent:    a.TimeSpent,
				IsSuccessful: a.IsSuccessful,
				HintsUsed:    a.HintsUsed,
				Feedback:     a.Feedback,
				CompletedAt:  a.CompletedAt,
			}
			if a.Challenge != nil {
				summary.Challenge = &dto.ChallengeBrief{
					ID:         a.Challenge.ID,
					Title:      a.Challenge.Title,
					Type:       a.Challenge.Type,
					Difficulty: a.Challenge.Difficulty,
					Points:     a.Challenge.Points,
				}
			}
			resp.RecentActivity.Challenges = append(resp.RecentActivity.Challenges, summary)
		}
	}

	if recommended, err := svc.progressSvc.GetRecommendations(userID, 3); err == nil {
		resp.Recommended = recommended.Modules
	}

	return resp, nil
}

func (svc *DashboardService) GetLearningAnalytics(userID string) (*dto.LearningAnalyticsResponse, error) {
	analytics, err := svc.progressSvc.GetAnalytics(userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.LearningAnalyticsResponse{
		ProgressOverTime:  analytics.DailyProgress,
		CategoryBreakdown: analytics.Categories,
		TimeAnalysis: dto.TimeAnalysis{
			TotalTime:    analytics.Summary.TotalTimeSpent,
			TotalModules: analytics.Summary.TotalModulesStarted,
		},
	}
	if resp.TimeAnalysis.TotalModules > 0 {
		resp.TimeAnalysis.AvgTimePerModule = float64(resp.TimeAnalysis.TotalTime) / float64(resp.TimeAnalysis.TotalModules)
	}

	return resp, nil
}
