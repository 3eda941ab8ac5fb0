package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/aadidev-sraj/project-lyra/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	Me(userID string) (*dto.UserInfo, error)
	Logout(userID string) error
	Verify(token string) (*dto.VerifyResponse, error)
	RequiredAuth() fiber.Handler
	OptionalAuth() fiber.Handler
	RequireRole(roles ...string) fiber.Handler
	RequireAdmin() fiber.Handler
}

type JWTServiceInterface interface {
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type UserServiceInterface interface {
	GetProfile(userID string) (*dto.UserProfileResponse, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	ChangePassword(userID string, req dto.ChangePasswordRequest) error
	GetStats(userID string) (*dto.UserStatsResponse, error)
	GetAchievements(userID string) ([]dto.AchievementResponse, error)
	AdminListUsers(q dto.ListUsersQuery) (*dto.UserListResponse, error)
	AdminGetUser(userID string) (*dto.AdminUserDetailResponse, error)
	AdminUpdateRole(adminID, userID, role string) error
	AdminSetActive(adminID, userID string, active bool) error
	AdminDeleteUser(adminID, userID string) error
}

type ModuleServiceInterface interface {
	ListModules(q dto.ListModulesQuery, userID string, includeUnpublished bool) (*dto.ModuleListResponse, error)
	GetModule(moduleID, userID string) (*dto.ModuleResponse, error)
	GetCategories() (*dto.CategoriesResponse, error)
	Enroll(userID, moduleID string) (*dto.EnrollResponse, error)
	CreateModule(authorID string, req dto.CreateModuleRequest) (*dto.ModuleResponse, error)
	UpdateModule(moduleID, actorID, actorRole string, req dto.UpdateModuleRequest) (*dto.ModuleResponse, error)
	DeleteModule(moduleID, actorID, actorRole string) error
}

type ProgressServiceInterface interface {
	ListProgress(userID, status string, page, limit int) (*dto.ProgressListResponse, error)
	GetModuleProgress(userID, moduleID string) (*dto.ProgressDetailResponse, error)
	CompleteSection(userID string, req dto.CompleteSectionRequest) (*dto.CompleteSectionResponse, error)
	SubmitQuiz(userID string, req dto.SubmitQuizRequest) (*dto.QuizResultResponse, error)
	UpdateProgress(userID string, req dto.UpdateProgressRequest) (*dto.UpdateProgressResponse, error)
	AddBookmark(userID string, req dto.BookmarkRequest) (*dto.ProgressDetailResponse, error)
	RemoveBookmark(userID, moduleID, sectionID string) (*dto.ProgressDetailResponse, error)
	ListBookmarks(userID string) (*dto.BookmarkListResponse, error)
	GetAnalytics(userID string) (*dto.ProgressAnalyticsResponse, error)
	GetRecommendations(userID string, limit int) (*dto.RecommendationsResponse, error)
}

type ChallengeServiceInterface interface {
	ListChallenges(q dto.ListChallengesQuery, includeInactive bool) (*dto.ChallengeListResponse, error)
	GetChallenge(challengeID string) (*dto.ChallengeResponse, error)
	CreateChallenge(authorID string, req dto.CreateChallengeRequest) (*dto.ChallengeResponse, error)
	DeleteChallenge(challengeID, actorID, actorRole string) error
	SubmitAttempt(userID, challengeID string, req dto.SubmitAttemptRequest) (*dto.AttemptResultResponse, error)
	ListUserAttempts(userID string, page, limit int) (*dto.AttemptListResponse, error)
	GetLeaderboard(challengeID string, limit int) (*dto.ChallengeLeaderboardResponse, error)
	GetStats(challengeID string) (*dto.ChallengeStatsResponse, error)
}

type ActivityServiceInterface interface {
	Track(userID string, req dto.TrackActivityRequest, sessionID, userAgent, ip string) (*dto.TrackActivityResponse, error)
	History(userID string, q dto.ActivityHistoryQuery) (*dto.ActivityHistoryResponse, error)
	AdminList(q dto.ActivityHistoryQuery) (*dto.AdminActivityResponse, error)
}

type DashboardServiceInterface interface {
	GetDashboard(userID string) (*dto.DashboardResponse, error)
	GetLearningAnalytics(userID string) (*dto.LearningAnalyticsResponse, error)
}

type LeaderboardServiceInterface interface {
	GetLeaderboard(period string, limit int, userID string) (*dto.LeaderboardResponse, error)
}

type MediaServiceInterface interface {
	UploadSectionVideo(moduleID, sectionID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	UploadSectionAttachment(moduleID, sectionID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	UploadModuleThumbnail(moduleID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	GetSectionMedia(moduleID, sectionID string) (*dto.SectionMediaResponse, error)
	RefreshAssetURL(mediaAssetID string) (*dto.MediaAssetResponse, error)
	DeleteMediaAsset(assetID string) error
}
