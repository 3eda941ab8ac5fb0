package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

const bcryptCost = 12

type AuthService struct {
	context.DefaultService

	sqlSvc        *PostgresService
	jwtSvc        *JWTService
	monitoringSvc *MonitoringService
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	available, err := svc.sqlSvc.Users().IsEmailAvailable(req.Email)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to check email availability")
	}
	if !available {
		return nil, shared.NewBadRequestError(nil, "Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	user, err := svc.sqlSvc.Users().CreateUser(req, string(hashed))
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to create user")
	}

	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate token")
	}

	svc.monitoringSvc.RecordRegistration()
	log.WithField("user_id", user.ID).Info("User registered")

	return &dto.AuthResponse{
		Token: tokens.AccessToken,
		User:  dto.NewUserInfo(user),
	}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := svc.sqlSvc.Users().GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError(nil, "Invalid email or password")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to look up user")
	}

	if !user.IsActive {
		return nil, shared.NewUnauthorizedError(nil, "Account has been deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(nil, "Invalid email or password")
	}

	if err := svc.sqlSvc.Users().UpdateLastLogin(user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to update last login")
	}

	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate token")
	}

	return &dto.AuthResponse{
		Token: tokens.AccessToken,
		User:  dto.NewUserInfo(user),
	}, nil
}

func (svc *AuthService) Me(userID string) (*dto.UserInfo, error) {
	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "User not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load user")
	}

	info := dto.NewUserInfo(user)
	return &info, nil
}

// Logout is stateless on the token side; it only records the activity so
// streaks and dashboards see the session end.
func (svc *AuthService) Logout(userID string) error {
	if err := svc.sqlSvc.Users().TouchLastActivity(userID); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to log out")
	}
	return nil
}

func (svc *AuthService) Verify(token string) (*dto.VerifyResponse, error) {
	claims, err := svc.jwtSvc.VerifyJWTToken(token)
	if err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid or expired token")
	}

	user, err := svc.sqlSvc.Users().GetUser(claims.UserID)
	if err != nil {
		return nil, shared.NewUnauthorizedError(nil, "Invalid or expired token")
	}
	if !user.IsActive {
		return nil, shared.NewUnauthorizedError(nil, "Account has been deactivated")
	}

	info := dto.NewUserInfo(user)
	return &dto.VerifyResponse{Valid: true, User: info}, nil
}

// ==================== MIDDLEWARE ====================

// RequiredAuth rejects requests without a valid bearer token and stores the
// caller's id and role on the request context.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}

		claims, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil || claims.UserID == "" {
			return shared.ResponseUnauthorized(c)
		}

		user, err := svc.sqlSvc.Users().GetUser(claims.UserID)
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}
		if !user.IsActive {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Account has been deactivated", nil)
		}

		c.Locals(shared.UserID, user.ID)
		c.Locals(shared.UserRole, user.Role)
		return c.Next()
	}
}

// OptionalAuth stores the caller's id and role when a valid bearer token is
// present, and lets the request through anonymously otherwise.
func (svc *AuthService) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get("Authorization"))
		if err != nil {
			return c.Next()
		}

		claims, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil || claims.UserID == "" {
			return c.Next()
		}

		user, err := svc.sqlSvc.Users().GetUser(claims.UserID)
		if err != nil || !user.IsActive {
			return c.Next()
		}

		c.Locals(shared.UserID, user.ID)
		c.Locals(shared.UserRole, user.Role)
		return c.Next()
	}
}

// RequireRole restricts a route to the given roles. Must run after RequiredAuth.
func (svc *AuthService) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(shared.UserRole).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return shared.ResponseForbidden(c)
	}
}

// RequireAdmin is shorthand for the admin-only routes.
func (svc *AuthService) RequireAdmin() fiber.Handler {
	return svc.RequireRole(model.RoleAdmin)
}
