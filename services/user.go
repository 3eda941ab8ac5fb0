package services

import (
	"errors"
	"strings"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type UserService struct {
	context.DefaultService

	sqlSvc *PostgresService
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ==================== PROFILE ====================

func (svc *UserService) GetProfile(userID string) (*dto.UserProfileResponse, error) {
	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "User not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load user")
	}

	completed, _ := svc.sqlSvc.Progress().CountByStatus(userID, shared.StatusCompleted)
	solved, _ := svc.sqlSvc.Challenges().CountDistinctSolvedChallenges(userID)

	return &dto.UserProfileResponse{
		User:        dto.NewUserInfo(user),
		Preferences: user.Preferences,
		ProfileStats: dto.ProfileStats{
			CompletedModules:     completed,
			SuccessfulChallenges: solved,
		},
	}, nil
}

func (svc *UserService) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "User not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load user")
	}

	if req.Email != "" && !strings.EqualFold(req.Email, user.Email) {
		available, err := svc.sqlSvc.Users().IsEmailAvailableForUser(req.Email, userID)
		if err != nil {
			return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to check email availability")
		}
		if !available {
			return nil, shared.NewBadRequestError(nil, "Email already in use by another account")
		}
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Preferences != nil {
		if req.Preferences.Theme != nil {
			user.Preferences.Theme = *req.Preferences.Theme
		}
		if req.Preferences.Notifications != nil {
			user.Preferences.Notifications = *req.Preferences.Notifications
		}
		if req.Preferences.Language != nil {
			user.Preferences.Language = *req.Preferences.Language
		}
	}

	if err := svc.sqlSvc.Users().UpdateUser(user); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to update profile")
	}

	return svc.GetProfile(userID)
}

func (svc *UserService) ChangePassword(userID string, req dto.ChangePasswordRequest) error {
	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(nil, "User not found")
		}
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return shared.NewBadRequestError(nil, "Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return shared.NewInternalError(err, "Failed to hash password")
	}

	if err := svc.sqlSvc.Users().UpdateUserPassword(userID, string(hashed)); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to update password")
	}

	log.WithField("user_id", userID).Info("Password changed")
	return nil
}

// ==================== STATS & ACHIEVEMENTS ====================

func (svc *UserService) GetStats(userID string) (*dto.UserStatsResponse, error) {
	records, err := svc.sqlSvc.Progress().GetAllUserProgress(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load progress")
	}

	statusAgg := map[string]*dto.ProgressStatusStat{}
	categoryAgg := map[string]*dto.CategoryStat{}
	var totalTime int64
	for i := range records {
		p := &records[i]
		totalTime += int64(p.TimeSpent)

		stat, ok := statusAgg[p.Status]
		if !ok {
			stat = &dto.ProgressStatusStat{Status: p.Status}
			statusAgg[p.Status] = stat
		}
		stat.Count++
		stat.TotalTime += int64(p.TimeSpent)
		stat.AvgScore += float64(p.BestQuizScore)

		if p.Module != nil {
			cat, ok := categoryAgg[p.Module.Category]
			if !ok {
				cat = &dto.CategoryStat{Category: p.Module.Category}
				categoryAgg[p.Module.Category] = cat
			}
			switch p.Status {
			case shared.StatusCompleted:
				cat.Completed++
			case shared.StatusInProgress:
				cat.InProgress++
			}
			cat.TotalTime += int64(p.TimeSpent)
		}
	}

	resp := &dto.UserStatsResponse{
		Progress:   []dto.ProgressStatusStat{},
		Challenges: []dto.ChallengeOutcomeStat{},
		Categories: []dto.CategoryStat{},
	}
	for _, stat := range statusAgg {
		if stat.Count > 0 {
			stat.AvgScore /= float64(stat.Count)
		}
		resp.Progress = append(resp.Progress, *stat)
	}
	for _, cat := range categoryAgg {
		resp.Categories = append(resp.Categories, *cat)
	}

	attempts, _, err := svc.sqlSvc.Challenges().ListUserAttempts(userID, 1, 10000)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load attempts")
	}

	outcomeAgg := map[bool]*dto.ChallengeOutcomeStat{}
	for _, a := range attempts {
		stat, ok := outcomeAgg[a.IsSuccessful]
		if !ok {
			stat = &dto.ChallengeOutcomeStat{IsSuccessful: a.IsSuccessful}
			outcomeAgg[a.IsSuccessful] = stat
		}
		stat.Count++
		stat.AvgScore += float64(a.Score)
		stat.TotalTime += int64(a.TimeSpent)
	}
	for _, stat := range outcomeAgg {
		if stat.Count > 0 {
			stat.AvgScore /= float64(stat.Count)
		}
		resp.Challenges = append(resp.Challenges, *stat)
	}

	resp.Summary = dto.UserStatsSummary{
		TotalModulesStarted:    int64(len(records)),
		TotalChallengeAttempts: int64(len(attempts)),
		TotalTimeSpent:         totalTime,
	}

	return resp, nil
}

func (svc *UserService) GetAchievements(userID string) ([]dto.AchievementResponse, error) {
	grants, err := svc.sqlSvc.Users().GetUserAchievements(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load achievements")
	}

	achievements := make([]dto.AchievementResponse, 0, len(grants))
	for _, grant := range grants {
		achievements = append(achievements, dto.AchievementResponse{
			ID:          grant.Achievement.ID,
			Type:        grant.Achievement.Type,
			Title:       grant.Achievement.Title,
			Description: grant.Achievement.Description,
			Points:      grant.Achievement.Points,
			UnlockedAt:  grant.UnlockedAt,
		})
	}
	return achievements, nil
}

// ==================== ADMIN ====================

func (svc *UserService) AdminListUsers(q dto.ListUsersQuery) (*dto.UserListResponse, error) {
	users, total, err := svc.sqlSvc.Users().AdminGetUsers(q)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to list users")
	}

	resp := &dto.UserListResponse{
		Users:      make([]dto.UserInfo, 0, len(users)),
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}
	for i := range users {
		resp.Users = append(resp.Users, dto.NewUserInfo(&users[i]))
	}
	return resp, nil
}

func (svc *UserService) AdminGetUser(userID string) (*dto.AdminUserDetailResponse, error) {
	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "User not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load user")
	}

	progressCount := int64(0)
	if records, err := svc.sqlSvc.Progress().GetEnrolledModuleIDs(userID); err == nil {
		progressCount = int64(len(records))
	}
	completed, _ := svc.sqlSvc.Progress().CountByStatus(userID, shared.StatusCompleted)
	attempts, _ := svc.sqlSvc.Challenges().CountUserAttempts(userID)
	successful, _ := svc.sqlSvc.Challenges().CountUserSuccessfulAttempts(userID)

	return &dto.AdminUserDetailResponse{
		User: dto.NewUserInfo(user),
		Stats: dto.AdminUserStats{
			ProgressCount:        progressCount,
			CompletedModules:     completed,
			ChallengeAttempts:    attempts,
			SuccessfulChallenges: successful,
		},
	}, nil
}

func (svc *UserService) AdminUpdateRole(adminID, userID, role string) error {
	if adminID == userID {
		return shared.NewBadRequestError(nil, "Cannot change your own role")
	}

	if _, err := svc.sqlSvc.Users().GetUser(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(nil, "User not found")
		}
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load user")
	}

	if err := svc.sqlSvc.Users().UpdateUserRole(userID, role); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to update role")
	}

	log.WithFields(log.Fields{"user_id": userID, "role": role}).Info("User role updated")
	return nil
}

func (svc *UserService) AdminSetActive(adminID, userID string, active bool) error {
	if adminID == userID && !active {
		return shared.NewBadRequestError(nil, "Cannot deactivate your own account")
	}

	if _, err := svc.sqlSvc.Users().GetUser(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(nil, "User not found")
		}
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load user")
	}

	if err := svc.sqlSvc.Users().SetUserActive(userID, active); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to update account status")
	}
	return nil
}

// AdminDeleteUser removes the account and every record tied to it.
func (svc *UserService) AdminDeleteUser(adminID, userID string) error {
	if adminID == userID {
		return shared.NewBadRequestError(nil, "Cannot delete your own account")
	}

	if _, err := svc.sqlSvc.Users().GetUser(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(nil, "User not found")
		}
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load user")
	}

	if err := svc.sqlSvc.Progress().DeleteUserProgress(userID); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to delete user progress")
	}
	if err := svc.sqlSvc.Challenges().DeleteUserAttempts(userID); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to delete user attempts")
	}
	if err := svc.sqlSvc.Activities().DeleteUserActivities(userID); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to delete user activity")
	}
	if err := svc.sqlSvc.Users().DeleteUser(userID); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to delete user")
	}

	log.WithField("user_id", userID).Info("User deleted")
	return nil
}
