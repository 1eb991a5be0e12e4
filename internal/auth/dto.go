package auth

import (
	"github.com/mjdelrosario/bpo-portal/internal"
	"github.com/mjdelrosario/bpo-portal/internal/core/common/validation"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if err := validation.ValidateCredentials(d.Email, d.Password); err != nil {
		return err
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return internal.NewValidationFieldError("refresh_token", "refresh token is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type MeResponse struct {
	User    *User  `json:"user"`
	Modules any    `json:"modules"`
	Role    string `json:"role,omitempty"`
}
