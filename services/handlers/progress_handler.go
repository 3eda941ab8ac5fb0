package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{
		progressSvc: progressSvc,
	}
}

// @Summary List progress
// @Description List the authenticated user's module progress records
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param status query string false "Filter by status (not-started, in-progress, completed)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} shared.Response{data=dto.ProgressListResponse}
// @Router /api/v1/progress [get]
func (h *ProgressHandler) ListProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	page, limit := parsePagination(c, 20)

	progress, err := h.progressSvc.ListProgress(userID, c.Query("status"), page, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", progress)
}

// @Summary Get module progress
// @Description Get detailed progress for one module, including sections and quiz attempts
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param moduleId path string true "Module ID"
// @Success 200 {object} shared.Response{data=dto.ProgressDetailResponse}
// @Router /api/v1/progress/{moduleId} [get]
func (h *ProgressHandler) GetModuleProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	moduleID := c.Params("moduleId")

	progress, err := h.progressSvc.GetModuleProgress(userID, moduleID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", progress)
}

// @Summary Complete section
// @Description Mark a section of an enrolled module as completed
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param completeRequest body dto.CompleteSectionRequest true "Module and section"
// @Success 200 {object} shared.Response{data=dto.CompleteSectionResponse}
// @Router /api/v1/progress/section [post]
func (h *ProgressHandler) CompleteSection(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CompleteSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progressSvc.CompleteSection(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Submit quiz
// @Description Grade a quiz submission for an enrolled module
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param quizRequest body dto.SubmitQuizRequest true "Quiz answers"
// @Success 200 {object} shared.Response{data=dto.QuizResultResponse}
// @Router /api/v1/progress/quiz [post]
func (h *ProgressHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progressSvc.SubmitQuiz(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Update progress
// @Description Record a progress action (start, pause, resume, section_complete)
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param updateRequest body dto.UpdateProgressRequest true "Module and action"
// @Success 200 {object} shared.Response{data=dto.UpdateProgressResponse}
// @Router /api/v1/progress [post]
func (h *ProgressHandler) UpdateProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progressSvc.UpdateProgress(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Add bookmark
// @Description Bookmark a section of an enrolled module
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param bookmarkRequest body dto.BookmarkRequest true "Module, section and note"
// @Success 200 {object} shared.Response{data=dto.ProgressDetailResponse}
// @Router /api/v1/progress/bookmarks [post]
func (h *ProgressHandler) AddBookmark(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.BookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progressSvc.AddBookmark(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Bookmark added", resp)
}

// @Summary Remove bookmark
// @Description Remove a bookmarked section from an enrolled module
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param moduleId path string true "Module ID"
// @Param sectionId path string true "Section ID"
// @Success 200 {object} shared.Response{data=dto.ProgressDetailResponse}
// @Router /api/v1/progress/bookmarks/{moduleId}/{sectionId} [delete]
func (h *ProgressHandler) RemoveBookmark(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressSvc.RemoveBookmark(userID, c.Params("moduleId"), c.Params("sectionId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Bookmark removed", resp)
}

// @Summary List bookmarks
// @Description List all bookmarks across the user's enrolled modules
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.BookmarkListResponse}
// @Router /api/v1/progress/bookmarks [get]
func (h *ProgressHandler) ListBookmarks(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressSvc.ListBookmarks(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get progress analytics
// @Description Get per-user learning analytics (status, category and daily breakdowns)
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ProgressAnalyticsResponse}
// @Router /api/v1/progress/analytics [get]
func (h *ProgressHandler) GetAnalytics(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressSvc.GetAnalytics(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get recommendations
// @Description Recommend modules the user has not enrolled in yet
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param limit query int false "Maximum results" default(5)
// @Success 200 {object} shared.Response{data=dto.RecommendationsResponse}
// @Router /api/v1/progress/recommendations [get]
func (h *ProgressHandler) GetRecommendations(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	limit, _ := strconv.Atoi(c.Query("limit", "5"))

	resp, err := h.progressSvc.GetRecommendations(userID, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
