package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface
	jwtSvc  JWTServiceInterface
}

func NewAuthHandler(authSvc AuthServiceInterface, jwtSvc JWTServiceInterface) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
		jwtSvc:  jwtSvc,
	}
}

// @Summary Register a new user
// @Description Create a new user account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body dto.RegisterRequest true "Registration details"
// @Success 201 {object} shared.Response{data=dto.AuthResponse}
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.Register(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "User registered successfully", resp)
}

// @Summary Login user
// @Description Authenticate user and return access token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Login credentials"
// @Success 200 {object} shared.Response{data=dto.AuthResponse}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.authSvc.Login(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Login successful", resp)
}

// @Summary Current user
// @Description Return the profile of the authenticated user
// @Tags auth
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UserInfo}
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	user, err := h.authSvc.Me(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", user)
}

// @Summary Logout user
// @Description Record the end of the session; tokens simply expire
// @Tags auth
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.authSvc.Logout(userID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Logged out successfully", nil)
}

// @Summary Verify token
// @Description Check whether the bearer token is still valid
// @Tags auth
// @Produce json
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.VerifyResponse}
// @Router /api/v1/auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	token, err := h.jwtSvc.ExtractTokenFromHeader(c.Get("Authorization"))
	if err != nil {
		return shared.NewUnauthorizedError(err, "Missing or malformed token")
	}

	resp, err := h.authSvc.Verify(token)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
