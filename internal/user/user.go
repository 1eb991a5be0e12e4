package user

import (
	"errors"
	"time"

	"github.com/mjdelrosario/bpo-portal/internal/core/common/validation"
)

// CreateUserDTO provisions a portal account for an employee.
type CreateUserDTO struct {
	EmployeeNo    string     `json:"employee_no"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	Password      string     `json:"password"`
	RoleName      string     `json:"role_name,omitempty"`
	Campaign      string     `json:"campaign,omitempty"`
	Department    string     `json:"department,omitempty"`
	DateOfJoining *time.Time `json:"date_of_joining,omitempty"`
}

func (dto CreateUserDTO) Validate() error {
	if err := validation.ValidateNewAccount(dto.EmployeeNo, dto.Email, dto.FullName, dto.Password); err != nil {
		return err
	}
	return nil
}

// AssignRoleDTO changes a user's role. An empty role name clears the
// role, leaving only per-user overrides in effect.
type AssignRoleDTO struct {
	RoleName string `json:"role_name"`
}

// SetActiveDTO toggles the account's active flag. Deactivated accounts
// fail authentication and in-flight token checks.
type SetActiveDTO struct {
	IsActive bool `json:"is_active"`
}

// ChangePasswordDTO updates the caller's own password.
type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (dto ChangePasswordDTO) Validate() error {
	if dto.CurrentPassword == "" {
		return errors.New("current_password is required")
	}
	if len(dto.NewPassword) < 8 {
		return errors.New("new_password must be at least 8 characters")
	}
	return nil
}

// ListFilter narrows account listings.
type ListFilter struct {
	Query    string
	RoleID   *int64
	IsActive *bool
	Limit    int
	Offset   int
}

// AccountView is the management view of a user account, without the
// password hash.
type AccountView struct {
	ID             int64      `json:"id"`
	EmployeeNo     string     `json:"employee_no"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	RoleID         *int64     `json:"role_id,omitempty"`
	RoleName       string     `json:"role_name,omitempty"`
	Campaign       string     `json:"campaign,omitempty"`
	Department     string     `json:"department,omitempty"`
	EmployeeStatus string     `json:"employee_status"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	DateOfJoining  *time.Time `json:"date_of_joining,omitempty"`
}
