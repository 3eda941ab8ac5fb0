package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type AdminHandler struct {
	userSvc UserServiceInterface
}

func NewAdminHandler(userSvc UserServiceInterface) *AdminHandler {
	return &AdminHandler{
		userSvc: userSvc,
	}
}

// @Summary List users (Admin)
// @Description List user accounts with role, status and search filters
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search in name and email"
// @Param role query string false "Filter by role"
// @Param is_active query bool false "Filter by active status"
// @Success 200 {object} shared.Response{data=dto.UserListResponse}
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, limit := parsePagination(c, 20)

	q := dto.ListUsersQuery{
		Page:      page,
		Limit:     limit,
		Search:    c.Query("search"),
		Role:      c.Query("role"),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}

	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		q.IsActive = &active
	}

	users, err := h.userSvc.AdminListUsers(q)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", users)
}

// @Summary Get user (Admin)
// @Description Get one user account with learning counters
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param userId path string true "User ID"
// @Success 200 {object} shared.Response{data=dto.AdminUserDetailResponse}
// @Router /api/v1/admin/users/{userId} [get]
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return shared.NewBadRequestError(nil, "User ID is required")
	}

	user, err := h.userSvc.AdminGetUser(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", user)
}

// @Summary Update user role (Admin)
// @Description Change a user's role; admins cannot change their own role
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param userId path string true "User ID"
// @Param roleRequest body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/users/{userId}/role [put]
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	adminID := c.Locals(shared.UserID).(string)
	userID := c.Params("userId")

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.userSvc.AdminUpdateRole(adminID, userID, req.Role); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Role updated successfully", nil)
}

// @Summary Activate or deactivate user (Admin)
// @Description Toggle a user's active flag; admins cannot deactivate themselves
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param userId path string true "User ID"
// @Param activeRequest body dto.SetActiveRequest true "Active flag"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/users/{userId}/active [put]
func (h *AdminHandler) SetActive(c *fiber.Ctx) error {
	adminID := c.Locals(shared.UserID).(string)
	userID := c.Params("userId")

	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.userSvc.AdminSetActive(adminID, userID, *req.IsActive); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "User status updated successfully", nil)
}

// @Summary Delete user (Admin)
// @Description Delete a user account with all progress, attempts and activity
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param userId path string true "User ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/users/{userId} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	adminID := c.Locals(shared.UserID).(string)
	userID := c.Params("userId")
	if userID == "" {
		return shared.NewBadRequestError(nil, "User ID is required")
	}

	if err := h.userSvc.AdminDeleteUser(adminID, userID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "User deleted successfully", nil)
}
