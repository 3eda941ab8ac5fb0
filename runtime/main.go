package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/aadidev-sraj/project-lyra/services"
)

// @title project-lyra API
// @version 1.0
// @description Cybersecurity learning platform backend
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.JWTService{},
		&services.MonitoringService{},
		&services.MinIOService{},

		&services.AuthService{},
		&services.UserService{},
		&services.ModuleService{},
		&services.ProgressService{},
		&services.ChallengeService{},
		&services.ActivityService{},
		&services.DashboardService{},
		&services.LeaderboardService{},
		&services.MediaService{},
		&services.RateLimitService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	if err = ctx.Run(); err != nil {
		log.Fatal().Err(err).Msg("Service context exited")
		return
	}
}
