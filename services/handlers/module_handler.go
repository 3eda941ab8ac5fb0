package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type ModuleHandler struct {
	moduleSvc ModuleServiceInterface
}

func NewModuleHandler(moduleSvc ModuleServiceInterface) *ModuleHandler {
	return &ModuleHandler{
		moduleSvc: moduleSvc,
	}
}

func parsePagination(c *fiber.Ctx, defaultLimit int) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

// currentUserID returns the authenticated user ID, or "" for anonymous access.
func currentUserID(c *fiber.Ctx) string {
	if v := c.Locals(shared.UserID); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func isStaff(c *fiber.Ctx) bool {
	if v := c.Locals(shared.UserRole); v != nil {
		if role, ok := v.(string); ok {
			return role == model.RoleAdmin || role == model.RoleInstructor
		}
	}
	return false
}

// @Summary List modules
// @Description List published learning modules with optional filters
// @Tags modules
// @Produce json
// @Param category query string false "Filter by category"
// @Param difficulty query string false "Filter by difficulty"
// @Param search query string false "Search in title and description"
// @Param sort query string false "Sort order (newest, oldest, title, points, popular)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} shared.Response{data=dto.ModuleListResponse}
// @Router /api/v1/modules [get]
func (h *ModuleHandler) ListModules(c *fiber.Ctx) error {
	page, limit := parsePagination(c, 20)

	q := dto.ListModulesQuery{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort"),
		Page:       page,
		Limit:      limit,
	}

	modules, err := h.moduleSvc.ListModules(q, currentUserID(c), isStaff(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", modules)
}

// @Summary Get module
// @Description Get a single module by ID or slug, with the caller's progress if enrolled
// @Tags modules
// @Produce json
// @Param moduleId path string true "Module ID or slug"
// @Success 200 {object} shared.Response{data=dto.ModuleResponse}
// @Router /api/v1/modules/{moduleId} [get]
func (h *ModuleHandler) GetModule(c *fiber.Ctx) error {
	moduleID := c.Params("moduleId")

	module, err := h.moduleSvc.GetModule(moduleID, currentUserID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", module)
}

// @Summary List module categories
// @Description List categories with published module counts
// @Tags modules
// @Produce json
// @Success 200 {object} shared.Response{data=dto.CategoriesResponse}
// @Router /api/v1/modules/categories [get]
func (h *ModuleHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.moduleSvc.GetCategories()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", categories)
}

// @Summary Enroll in module
// @Description Enroll the authenticated user in a published module
// @Tags modules
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param moduleId path string true "Module ID"
// @Success 200 {object} shared.Response{data=dto.EnrollResponse}
// @Router /api/v1/modules/{moduleId}/enroll [post]
func (h *ModuleHandler) Enroll(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	moduleID := c.Params("moduleId")

	resp, err := h.moduleSvc.Enroll(userID, moduleID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Create module (Admin)
// @Description Create a new learning module
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param createRequest body dto.CreateModuleRequest true "Module definition"
// @Success 201 {object} shared.Response{data=dto.ModuleResponse}
// @Router /api/v1/admin/modules [post]
func (h *ModuleHandler) CreateModule(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	module, err := h.moduleSvc.CreateModule(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Module created successfully", module)
}

// @Summary Update module (Admin)
// @Description Update fields of an existing module
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param moduleId path string true "Module ID"
// @Param updateRequest body dto.UpdateModuleRequest true "Fields to update"
// @Success 200 {object} shared.Response{data=dto.ModuleResponse}
// @Router /api/v1/admin/modules/{moduleId} [put]
func (h *ModuleHandler) UpdateModule(c *fiber.Ctx) error {
	moduleID := c.Params("moduleId")
	userID := c.Locals(shared.UserID).(string)
	role, _ := c.Locals(shared.UserRole).(string)

	var req dto.UpdateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	module, err := h.moduleSvc.UpdateModule(moduleID, userID, role, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Module updated successfully", module)
}

// @Summary Delete module (Admin)
// @Description Delete a module and all enrollment progress for it
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param moduleId path string true "Module ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/modules/{moduleId} [delete]
func (h *ModuleHandler) DeleteModule(c *fiber.Ctx) error {
	moduleID := c.Params("moduleId")
	userID := c.Locals(shared.UserID).(string)
	role, _ := c.Locals(shared.UserRole).(string)

	if err := h.moduleSvc.DeleteModule(moduleID, userID, role); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Module deleted successfully", nil)
}
