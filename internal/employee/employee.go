package employee

import (
	"errors"
	"time"

	"github.com/mjdelrosario/bpo-portal/internal"
)

var ErrEmployeeNotFound = internal.ErrEmployeeNotFound

var employeeStatuses = map[string]bool{
	"Active":     true,
	"On Leave":   true,
	"Suspended":  true,
	"Resigned":   true,
	"Terminated": true,
}

// Profile is the directory view of a user: employment data without
// credentials or account flags.
type Profile struct {
	ID             int64      `json:"id"`
	EmployeeNo     string     `json:"employee_no"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Campaign       string     `json:"campaign"`
	Department     string     `json:"department"`
	DateOfJoining  *time.Time `json:"date_of_joining,omitempty"`
	LastWorkingDay *time.Time `json:"last_working_day,omitempty"`
	PhoneNo        string     `json:"phone_no,omitempty"`
	PersonalEmail  string     `json:"personal_email,omitempty"`
	EmployeeStatus string     `json:"employee_status"`
}

// UpdateProfileDTO carries the editable employment fields. Pointers
// distinguish "leave unchanged" from "set empty".
type UpdateProfileDTO struct {
	FullName       *string    `json:"full_name,omitempty"`
	Campaign       *string    `json:"campaign,omitempty"`
	Department     *string    `json:"department,omitempty"`
	DateOfJoining  *time.Time `json:"date_of_joining,omitempty"`
	LastWorkingDay *time.Time `json:"last_working_day,omitempty"`
	PhoneNo        *string    `json:"phone_no,omitempty"`
	PersonalEmail  *string    `json:"personal_email,omitempty"`
	EmployeeStatus *string    `json:"employee_status,omitempty"`
}

func (dto UpdateProfileDTO) Validate() error {
	if dto.FullName != nil && *dto.FullName == "" {
		return errors.New("full_name cannot be empty")
	}
	if dto.EmployeeStatus != nil && !employeeStatuses[*dto.EmployeeStatus] {
		return errors.New("invalid employee_status")
	}
	return nil
}

// SearchFilter narrows directory listings.
type SearchFilter struct {
	Query      string
	Campaign   string
	Department string
	Status     string
	Limit      int
	Offset     int
}
