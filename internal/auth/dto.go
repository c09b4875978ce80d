package auth

import (
	"errors"
	"strings"
)

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (dto LoginDTO) Validate() error {
	if !strings.Contains(dto.Email, "@") {
		return errors.New("a valid email is required")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type RegisterDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=Admin Manager Employee"`
}

func (dto RegisterDTO) Validate() error {
	if !strings.Contains(dto.Email, "@") {
		return errors.New("a valid email is required")
	}
	if len(strings.TrimSpace(dto.Name)) < 3 {
		return errors.New("name must be at least 3 characters")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	switch dto.Role {
	case RoleAdmin, RoleManager, RoleEmployee:
	default:
		return errors.New("role must be Admin, Manager or Employee")
	}
	return nil
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
