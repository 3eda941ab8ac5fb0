package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type UserHandler struct {
	userSvc UserServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

// @Summary Get user profile
// @Description Get profile and learning stats for the authenticated user
// @Tags users
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UserProfileResponse}
// @Router /api/v1/users/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	profile, err := h.userSvc.GetProfile(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", profile)
}

// @Summary Update user profile
// @Description Update name, email or preferences for the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param updateRequest body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} shared.Response{data=dto.UserProfileResponse}
// @Router /api/v1/users/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	profile, err := h.userSvc.UpdateProfile(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Profile updated successfully", profile)
}

// @Summary Change password
// @Description Change password for the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param changeRequest body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/users/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.userSvc.ChangePassword(userID, req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Password changed successfully", nil)
}

// @Summary Get user stats
// @Description Get aggregated learning statistics for the authenticated user
// @Tags users
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UserStatsResponse}
// @Router /api/v1/users/stats [get]
func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	stats, err := h.userSvc.GetStats(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", stats)
}

// @Summary Get user achievements
// @Description List achievements unlocked by the authenticated user
// @Tags users
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]dto.AchievementResponse}
// @Router /api/v1/users/achievements [get]
func (h *UserHandler) GetAchievements(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	achievements, err := h.userSvc.GetAchievements(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", achievements)
}
