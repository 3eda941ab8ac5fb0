package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type ChallengeHandler struct {
	challengeSvc ChallengeServiceInterface
}

func NewChallengeHandler(challengeSvc ChallengeServiceInterface) *ChallengeHandler {
	return &ChallengeHandler{
		challengeSvc: challengeSvc,
	}
}

// @Summary List challenges
// @Description List active challenges with optional filters
// @Tags challenges
// @Produce json
// @Param type query string false "Filter by challenge type"
// @Param difficulty query string false "Filter by difficulty"
// @Param category query string false "Filter by category"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} shared.Response{data=dto.ChallengeListResponse}
// @Router /api/v1/challenges [get]
func (h *ChallengeHandler) ListChallenges(c *fiber.Ctx) error {
	page, limit := parsePagination(c, 20)

	q := dto.ListChallengesQuery{
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
		Category:   c.Query("category"),
		Page:       page,
		Limit:      limit,
	}

	challenges, err := h.challengeSvc.ListChallenges(q, isStaff(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", challenges)
}

// @Summary Get challenge
// @Description Get a single challenge without its solution
// @Tags challenges
// @Produce json
// @Param challengeId path string true "Challenge ID"
// @Success 200 {object} shared.Response{data=dto.ChallengeResponse}
// @Router /api/v1/challenges/{challengeId} [get]
func (h *ChallengeHandler) GetChallenge(c *fiber.Ctx) error {
	challenge, err := h.challengeSvc.GetChallenge(c.Params("challengeId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", challenge)
}

// @Summary Submit challenge attempt
// @Description Grade a challenge attempt and award points on first solve
// @Tags challenges
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param challengeId path string true "Challenge ID"
// @Param attemptRequest body dto.SubmitAttemptRequest true "Answers and timing"
// @Success 200 {object} shared.Response{data=dto.AttemptResultResponse}
// @Router /api/v1/challenges/{challengeId}/attempt [post]
func (h *ChallengeHandler) SubmitAttempt(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	challengeID := c.Params("challengeId")

	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result, err := h.challengeSvc.SubmitAttempt(userID, challengeID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", result)
}

// @Summary List own attempts
// @Description List the authenticated user's challenge attempts, newest first
// @Tags challenges
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} shared.Response{data=dto.AttemptListResponse}
// @Router /api/v1/challenges/attempts [get]
func (h *ChallengeHandler) ListUserAttempts(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	page, limit := parsePagination(c, 20)

	attempts, err := h.challengeSvc.ListUserAttempts(userID, page, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", attempts)
}

// @Summary Challenge leaderboard
// @Description Best successful attempt per user for one challenge
// @Tags challenges
// @Produce json
// @Param challengeId path string true "Challenge ID"
// @Param limit query int false "Maximum entries" default(10)
// @Success 200 {object} shared.Response{data=dto.ChallengeLeaderboardResponse}
// @Router /api/v1/challenges/{challengeId}/leaderboard [get]
func (h *ChallengeHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	leaderboard, err := h.challengeSvc.GetLeaderboard(c.Params("challengeId"), limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", leaderboard)
}

// @Summary Challenge stats
// @Description Aggregate attempt statistics for one challenge
// @Tags challenges
// @Produce json
// @Param challengeId path string true "Challenge ID"
// @Success 200 {object} shared.Response{data=dto.ChallengeStatsResponse}
// @Router /api/v1/challenges/{challengeId}/stats [get]
func (h *ChallengeHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.challengeSvc.GetStats(c.Params("challengeId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", stats)
}

// @Summary Create challenge (Admin)
// @Description Create a new challenge with typed content and solution
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param createRequest body dto.CreateChallengeRequest true "Challenge definition"
// @Success 201 {object} shared.Response{data=dto.ChallengeResponse}
// @Router /api/v1/admin/challenges [post]
func (h *ChallengeHandler) CreateChallenge(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	challenge, err := h.challengeSvc.CreateChallenge(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Challenge created successfully", challenge)
}

// @Summary Delete challenge (Admin)
// @Description Delete a challenge and all recorded attempts
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param challengeId path string true "Challenge ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/challenges/{challengeId} [delete]
func (h *ChallengeHandler) DeleteChallenge(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	role, _ := c.Locals(shared.UserRole).(string)

	if err := h.challengeSvc.DeleteChallenge(c.Params("challengeId"), userID, role); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Challenge deleted successfully", nil)
}
