package employee

import (
	"log/slog"

	"github.com/mjdelrosario/bpo-portal/internal"
	userDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/user"
)

// Repository defines the data access methods for the directory.
type Repository interface {
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmployeeNo(employeeNo string) (*userDatamodel.User, error)
	Search(filter SearchFilter) ([]*userDatamodel.User, error)
	Update(u *userDatamodel.User) error
	Campaigns() ([]string, error)
	Departments() ([]string, error)
}

// Service exposes the employee directory: a read-mostly view over the
// users table with HR-editable employment fields.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func toProfile(u *userDatamodel.User) *Profile {
	return &Profile{
		ID:             u.ID,
		EmployeeNo:     u.EmployeeNo,
		FullName:       u.FullName,
		Email:          u.Email,
		Campaign:       u.Campaign,
		Department:     u.Department,
		DateOfJoining:  u.DateOfJoining,
		LastWorkingDay: u.LastWorkingDay,
		PhoneNo:        u.PhoneNo,
		PersonalEmail:  u.PersonalEmail,
		EmployeeStatus: u.EmployeeStatus,
	}
}

// GetProfile returns the directory profile of one employee.
func (s *Service) GetProfile(id int64) (*Profile, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProfile(u), nil
}

// Search lists directory profiles matching the filter.
func (s *Service) Search(filter SearchFilter) ([]*Profile, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	users, err := s.repo.Search(filter)
	if err != nil {
		s.logger.Error("directory search failed", "error", err)
		return nil, err
	}

	profiles := make([]*Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, toProfile(u))
	}
	return profiles, nil
}

// UpdateProfile applies the provided employment fields.
func (s *Service) UpdateProfile(id int64, dto UpdateProfileDTO) (*Profile, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.FullName != nil {
		u.FullName = *dto.FullName
	}
	if dto.Campaign != nil {
		u.Campaign = *dto.Campaign
	}
	if dto.Department != nil {
		u.Department = *dto.Department
	}
	if dto.DateOfJoining != nil {
		u.DateOfJoining = dto.DateOfJoining
	}
	if dto.LastWorkingDay != nil {
		u.LastWorkingDay = dto.LastWorkingDay
	}
	if dto.PhoneNo != nil {
		u.PhoneNo = *dto.PhoneNo
	}
	if dto.PersonalEmail != nil {
		u.PersonalEmail = *dto.PersonalEmail
	}
	if dto.EmployeeStatus != nil {
		u.EmployeeStatus = *dto.EmployeeStatus
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update profile", "error", err, "employee_id", id)
		return nil, err
	}

	s.logger.Info("profile updated", "employee_id", id)
	return toProfile(u), nil
}

// Facets returns the distinct campaigns and departments for directory
// filter dropdowns.
func (s *Service) Facets() (campaigns, departments []string, err error) {
	campaigns, err = s.repo.Campaigns()
	if err != nil {
		return nil, nil, err
	}
	departments, err = s.repo.Departments()
	if err != nil {
		return nil, nil, err
	}
	return campaigns, departments, nil
}
