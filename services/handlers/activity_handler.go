package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type ActivityHandler struct {
	activitySvc ActivityServiceInterface
}

func NewActivityHandler(activitySvc ActivityServiceInterface) *ActivityHandler {
	return &ActivityHandler{
		activitySvc: activitySvc,
	}
}

// @Summary Track activity
// @Description Record a user activity event and update the daily streak
// @Tags activity
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param trackRequest body dto.TrackActivityRequest true "Activity event"
// @Success 201 {object} shared.Response{data=dto.TrackActivityResponse}
// @Router /api/v1/activity/track [post]
func (h *ActivityHandler) Track(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.TrackActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.activitySvc.Track(userID, req, c.Get("X-Session-ID"), c.Get("User-Agent"), c.IP())
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Success", resp)
}

func parseActivityQuery(c *fiber.Ctx) dto.ActivityHistoryQuery {
	page, limit := parsePagination(c, 50)

	q := dto.ActivityHistoryQuery{
		Page:      page,
		Limit:     limit,
		Action:    c.Query("action"),
		Timeframe: c.Query("timeframe"),
	}

	if v := c.Query("start_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.StartDate = &t
		}
	}
	if v := c.Query("end_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.EndDate = &t
		}
	}

	return q
}

// @Summary Activity history
// @Description List the authenticated user's activity log with per-action stats
// @Tags activity
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param action query string false "Filter by action"
// @Param timeframe query string false "Stats window (24h, 7d, 30d, 90d)"
// @Param start_date query string false "RFC3339 lower bound"
// @Param end_date query string false "RFC3339 upper bound"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} shared.Response{data=dto.ActivityHistoryResponse}
// @Router /api/v1/activity/history [get]
func (h *ActivityHandler) History(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.activitySvc.History(userID, parseActivityQuery(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary List all activity (Admin)
// @Description List activity events across all users
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param user_id query string false "Filter by user"
// @Param action query string false "Filter by action"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} shared.Response{data=dto.AdminActivityResponse}
// @Router /api/v1/admin/activity [get]
func (h *ActivityHandler) AdminList(c *fiber.Ctx) error {
	q := parseActivityQuery(c)
	q.UserID = c.Query("user_id")

	resp, err := h.activitySvc.AdminList(q)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
