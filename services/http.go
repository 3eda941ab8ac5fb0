package services

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	docs "github.com/aadidev-sraj/project-lyra/docs"
	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/services/handlers"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type HttpService struct {
	context.DefaultService

	sqlSvc         *PostgresService
	jwtSvc         *JWTService
	authSvc        *AuthService
	userSvc        *UserService
	moduleSvc      *ModuleService
	progressSvc    *ProgressService
	challengeSvc   *ChallengeService
	activitySvc    *ActivityService
	dashboardSvc   *DashboardService
	leaderboardSvc *LeaderboardService
	mediaSvc       *MediaService
	rateLimitSvc   *RateLimitService
	monitoringSvc  *MonitoringService

	port      int
	app       *fiber.App
	startedAt time.Time
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.moduleSvc = svc.Service(MODULE_SVC).(*ModuleService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.challengeSvc = svc.Service(CHALLENGE_SVC).(*ChallengeService)
	svc.activitySvc = svc.Service(ACTIVITY_SVC).(*ActivityService)
	svc.dashboardSvc = svc.Service(DASHBOARD_SVC).(*DashboardService)
	svc.leaderboardSvc = svc.Service(LEADERBOARD_SVC).(*LeaderboardService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.startedAt = time.Now()

	docs.SwaggerInfo.BasePath = ""

	svc.app = fiber.New(fiber.Config{
		AppName:      "project-lyra",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: svc.errorHandler,
		BodyLimit:    256 * 1024 * 1024,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "X-RateLimit-Remaining, X-RateLimit-Reset, Retry-After",
	}))
	svc.app.Use(MonitoringMiddleware(svc.monitoringSvc))

	svc.registerRoutes()

	log.Printf("HTTP server listening on :%d", svc.port)
	return svc.app.Listen(fmt.Sprintf(":%d", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) registerRoutes() {
	authHandler := handlers.NewAuthHandler(svc.authSvc, svc.jwtSvc)
	userHandler := handlers.NewUserHandler(svc.userSvc)
	adminHandler := handlers.NewAdminHandler(svc.userSvc)
	moduleHandler := handlers.NewModuleHandler(svc.moduleSvc)
	progressHandler := handlers.NewProgressHandler(svc.progressSvc)
	challengeHandler := handlers.NewChallengeHandler(svc.challengeSvc)
	activityHandler := handlers.NewActivityHandler(svc.activitySvc)
	dashboardHandler := handlers.NewDashboardHandler(svc.dashboardSvc)
	leaderboardHandler := handlers.NewLeaderboardHandler(svc.leaderboardSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)

	svc.app.Get("/ping", svc.ping)
	svc.app.Get("/health", svc.health)
	svc.app.Get("/swagger/*", swagger.HandlerDefault)

	requireAuth := svc.authSvc.RequiredAuth()
	optionalAuth := svc.authSvc.OptionalAuth()
	requireAdmin := svc.authSvc.RequireAdmin()
	requireStaff := svc.authSvc.RequireRole(model.RoleAdmin, model.RoleInstructor)

	v1 := svc.app.Group("/api/v1", svc.rateLimitSvc.IPRateLimit())

	v1.Get("/ping", svc.ping)
	v1.Get("/status", svc.status)

	// Auth
	auth := v1.Group("/auth")
	auth.Post("/register", svc.rateLimitSvc.RateLimit("register"), authHandler.Register)
	auth.Post("/login", svc.rateLimitSvc.RateLimit("login"), authHandler.Login)
	auth.Post("/logout", requireAuth, authHandler.Logout)
	auth.Get("/me", requireAuth, authHandler.Me)
	auth.Get("/verify", authHandler.Verify)

	// Users
	users := v1.Group("/users", requireAuth)
	users.Get("/profile", userHandler.GetProfile)
	users.Put("/profile", svc.rateLimitSvc.UserBasedRateLimit("profile_update"), userHandler.UpdateProfile)
	users.Put("/password", svc.rateLimitSvc.UserBasedRateLimit("change_password"), userHandler.ChangePassword)
	users.Get("/stats", userHandler.GetStats)
	users.Get("/achievements", userHandler.GetAchievements)

	// Modules
	modules := v1.Group("/modules", optionalAuth)
	modules.Get("/", moduleHandler.ListModules)
	modules.Get("/categories", moduleHandler.GetCategories)
	modules.Get("/:moduleId", moduleHandler.GetModule)
	modules.Post("/:moduleId/enroll", requireAuth, moduleHandler.Enroll)
	modules.Get("/:moduleId/sections/:sectionId/media", requireAuth, mediaHandler.GetSectionMedia)

	// Progress
	progress := v1.Group("/progress", requireAuth)
	progress.Get("/", progressHandler.ListProgress)
	progress.Post("/", progressHandler.UpdateProgress)
	progress.Get("/analytics", progressHandler.GetAnalytics)
	progress.Get("/recommendations", progressHandler.GetRecommendations)
	progress.Get("/bookmarks", progressHandler.ListBookmarks)
	progress.Post("/bookmarks", progressHandler.AddBookmark)
	progress.Delete("/bookmarks/:moduleId/:sectionId", progressHandler.RemoveBookmark)
	progress.Post("/section", progressHandler.CompleteSection)
	progress.Post("/quiz", svc.rateLimitSvc.UserBasedRateLimit("quiz_submit"), progressHandler.SubmitQuiz)
	progress.Get("/:moduleId", progressHandler.GetModuleProgress)

	// Challenges
	challenges := v1.Group("/challenges", optionalAuth)
	challenges.Get("/", challengeHandler.ListChallenges)
	challenges.Get("/attempts", requireAuth, challengeHandler.ListUserAttempts)
	challenges.Get("/:challengeId", challengeHandler.GetChallenge)
	challenges.Post("/:challengeId/attempt", requireAuth,
		svc.rateLimitSvc.UserBasedRateLimit("challenge_attempt"), challengeHandler.SubmitAttempt)
	challenges.Get("/:challengeId/leaderboard", challengeHandler.GetLeaderboard)
	challenges.Get("/:challengeId/stats", challengeHandler.GetStats)

	// Activity
	activity := v1.Group("/activity", requireAuth)
	activity.Post("/track", svc.rateLimitSvc.UserBasedRateLimit("activity_track"), activityHandler.Track)
	activity.Get("/history", activityHandler.History)

	// Dashboard
	dashboard := v1.Group("/dashboard", requireAuth)
	dashboard.Get("/", dashboardHandler.GetDashboard)
	dashboard.Get("/analytics", dashboardHandler.GetLearningAnalytics)

	// Leaderboard
	v1.Get("/leaderboard", optionalAuth, leaderboardHandler.GetLeaderboard)

	// Media
	v1.Get("/media/:assetId/url", requireAuth, mediaHandler.RefreshAssetURL)

	// Admin
	admin := v1.Group("/admin", requireAuth, requireAdmin)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:userId", adminHandler.GetUser)
	admin.Put("/users/:userId/role", adminHandler.UpdateRole)
	admin.Put("/users/:userId/active", adminHandler.SetActive)
	admin.Delete("/users/:userId", adminHandler.DeleteUser)

	// Authoring routes take instructors too; the services enforce
	// author-or-admin on edits and deletes.
	staff := v1.Group("/admin", requireAuth, requireStaff)
	staff.Post("/modules", moduleHandler.CreateModule)
	staff.Put("/modules/:moduleId", moduleHandler.UpdateModule)
	staff.Delete("/modules/:moduleId", moduleHandler.DeleteModule)
	staff.Post("/modules/:moduleId/thumbnail", mediaHandler.UploadModuleThumbnail)
	staff.Post("/modules/:moduleId/sections/:sectionId/video", mediaHandler.UploadSectionVideo)
	staff.Post("/modules/:moduleId/sections/:sectionId/attachment", mediaHandler.UploadSectionAttachment)

	staff.Post("/challenges", challengeHandler.CreateChallenge)
	staff.Delete("/challenges/:challengeId", challengeHandler.DeleteChallenge)

	admin.Get("/activity", activityHandler.AdminList)

	admin.Delete("/media/:assetId", mediaHandler.DeleteMediaAsset)

	admin.Get("/rate-limits", svc.rateLimitStats)
	admin.Put("/rate-limits/:endpointType", svc.updateRateLimitConfig)
	admin.Delete("/rate-limits/:identifier/:endpointType", svc.removeRateLimit)

	svc.app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})
}

func (svc *HttpService) errorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return shared.ResponseInternalError(c, err)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

// @Summary Health check
// @Description Report service, database and memory health with platform counters
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=dto.HealthResponse}
// @Router /health [get]
func (svc *HttpService) health(c *fiber.Ctx) error {
	dbStatus := "up"
	if sqlDB, err := svc.sqlSvc.Db().DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	userCount, _ := svc.sqlSvc.Users().CountUsers()
	moduleCount, _ := svc.sqlSvc.Modules().CountModules(true)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	status := "healthy"
	if dbStatus != "up" {
		status = "degraded"
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.HealthResponse{
		Status:      status,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      int64(time.Since(svc.startedAt).Seconds()),
		Environment: env,
		Database: dto.DatabaseHealth{
			Status: dbStatus,
			Name:   "postgres",
		},
		Stats: dto.PlatformStats{
			Users:   userCount,
			Modules: moduleCount,
		},
		Memory: dto.MemoryUsage{
			UsedMB:  mem.Alloc / 1024 / 1024,
			TotalMB: mem.Sys / 1024 / 1024,
		},
	})
}

// @Summary Platform status
// @Description Lightweight platform counters
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=dto.PlatformStats}
// @Router /api/v1/status [get]
func (svc *HttpService) status(c *fiber.Ctx) error {
	userCount, _ := svc.sqlSvc.Users().CountUsers()
	moduleCount, _ := svc.sqlSvc.Modules().CountModules(true)

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.PlatformStats{
		Users:   userCount,
		Modules: moduleCount,
	})
}

// @Summary Rate limit stats (Admin)
// @Description Current rate limit configuration and record counts
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=map[string]interface{}}
// @Router /api/v1/admin/rate-limits [get]
func (svc *HttpService) rateLimitStats(c *fiber.Ctx) error {
	stats, err := svc.rateLimitSvc.GetRateLimitStats()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", stats)
}

// @Summary Update rate limit config (Admin)
// @Description Tune limits for one endpoint type at runtime
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param endpointType path string true "Endpoint type"
// @Param configRequest body dto.UpdateRateLimitConfigRequest true "New limits"
// @Success 200 {object} shared.Response{data=services.RateLimitConfig}
// @Router /api/v1/admin/rate-limits/{endpointType} [put]
func (svc *HttpService) updateRateLimitConfig(c *fiber.Ctx) error {
	var req dto.UpdateRateLimitConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	config, err := svc.rateLimitSvc.UpdateConfig(c.Params("endpointType"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Configuration updated successfully", config)
}

// @Summary Remove rate limit (Admin)
// @Description Clear the tracked window for one identifier and endpoint type
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param identifier path string true "Identifier (user ID or IP)"
// @Param endpointType path string true "Endpoint type"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/rate-limits/{identifier}/{endpointType} [delete]
func (svc *HttpService) removeRateLimit(c *fiber.Ctx) error {
	identifier := c.Params("identifier")
	endpointType := c.Params("endpointType")

	if identifier == "" || endpointType == "" {
		return shared.NewBadRequestError(nil, "Missing identifier or endpoint type")
	}

	if err := svc.rateLimitSvc.RemoveRateLimit(identifier, endpointType); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK,
		fmt.Sprintf("Rate limit removed for %s/%s", identifier, endpointType), nil)
}
