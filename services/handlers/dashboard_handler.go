package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aadidev-sraj/project-lyra/shared"
)

type DashboardHandler struct {
	dashboardSvc DashboardServiceInterface
}

func NewDashboardHandler(dashboardSvc DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
	}
}

// @Summary Get dashboard
// @Description Aggregate overview, recent activity and recommendations for the user
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.DashboardResponse}
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.dashboardSvc.GetDashboard(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Learning analytics
// @Description Progress over time, category breakdown and time analysis for the user
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.LearningAnalyticsResponse}
// @Router /api/v1/dashboard/analytics [get]
func (h *DashboardHandler) GetLearningAnalytics(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.dashboardSvc.GetLearningAnalytics(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
