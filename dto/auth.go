package dto

import (
	"time"

	"github.com/aadidev-sraj/project-lyra/model"
)

// ==================== AUTHENTICATION REQUEST DTOs ====================

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50" example:"Ada Lovelace"`
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"SecurePass123"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"SecurePass123"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required" example:"OldPass123"`
	NewPassword     string `json:"new_password" validate:"required,min=6" example:"NewPass123"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword" example:"NewPass123"`
}

func (c ChangePasswordRequest) Validate() error {
	return GetValidator().Struct(c)
}

// ==================== AUTHENTICATION RESPONSE DTOs ====================

type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in" example:"86400"`
}

type UserInfo struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      string          `json:"role" example:"student"`
	Stats     model.UserStats `json:"stats"`
	LastLogin *time.Time      `json:"last_login,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type VerifyResponse struct {
	Valid bool     `json:"valid"`
	User  UserInfo `json:"user"`
}

func NewUserInfo(user *model.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Stats:     user.Stats,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}
}
