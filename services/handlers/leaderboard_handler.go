package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aadidev-sraj/project-lyra/shared"
)

type LeaderboardHandler struct {
	leaderboardSvc LeaderboardServiceInterface
}

func NewLeaderboardHandler(leaderboardSvc LeaderboardServiceInterface) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardSvc: leaderboardSvc,
	}
}

// @Summary Get leaderboard
// @Description Platform leaderboard by total points, all-time or weekly
// @Tags leaderboard
// @Produce json
// @Param period query string false "Leaderboard period (all, weekly)" default(all)
// @Param limit query int false "Maximum entries" default(10)
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	period := c.Query("period", "all")
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	resp, err := h.leaderboardSvc.GetLeaderboard(period, limit, currentUserID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
