package user

import (
	"log/slog"

	"github.com/mjdelrosario/bpo-portal/internal"
	rbacDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/rbac"
	userDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

var ErrDuplicateAccount = internal.NewConflictError("Employee number or email already in use", internal.ErrCodeDuplicateEmployee)

// Repository defines the data access methods for user accounts.
type Repository interface {
	Create(u *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	List(filter ListFilter) ([]*userDatamodel.User, error)
	Update(u *userDatamodel.User) error
	RoleByID(id int64) (*rbacDatamodel.Role, error)
}

// RoleDirectory resolves role names to catalog rows. Wired to the rbac
// repository.
type RoleDirectory interface {
	RoleByName(name string) (*rbacDatamodel.Role, error)
}

// PasswordHasher hashes credentials. Wired to the auth service so the
// bcrypt cost is configured once.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Service handles account management: provisioning, role assignment and
// activation.
type Service struct {
	repo   Repository
	roles  RoleDirectory
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, roles RoleDirectory, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		roles:  roles,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) toView(u *userDatamodel.User) *AccountView {
	view := &AccountView{
		ID:             u.ID,
		EmployeeNo:     u.EmployeeNo,
		Email:          u.Email,
		FullName:       u.FullName,
		RoleID:         u.RoleID,
		Campaign:       u.Campaign,
		Department:     u.Department,
		EmployeeStatus: u.EmployeeStatus,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		DateOfJoining:  u.DateOfJoining,
	}
	if u.RoleID != nil {
		if role, err := s.repo.RoleByID(*u.RoleID); err == nil && role != nil {
			view.RoleName = role.Name
		}
	}
	return view
}

// CreateUser provisions an account. The employee number and email are
// both unique; a clash is reported as a conflict.
func (s *Service) CreateUser(dto CreateUserDTO) (*AccountView, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	u := &userDatamodel.User{
		EmployeeNo:    dto.EmployeeNo,
		Email:         dto.Email,
		FullName:      dto.FullName,
		PasswordHash:  hash,
		Campaign:      dto.Campaign,
		Department:    dto.Department,
		DateOfJoining: dto.DateOfJoining,
		IsActive:      true,
	}

	if dto.RoleName != "" {
		role, err := s.roles.RoleByName(dto.RoleName)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, internal.ErrRoleNotFound
		}
		u.RoleID = &role.ID
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create account", "error", err, "employee_no", dto.EmployeeNo)
		return nil, err
	}

	s.logger.Info("account created", "user_id", u.ID, "employee_no", u.EmployeeNo, "role", dto.RoleName)
	return s.toView(u), nil
}

// GetAccount returns the management view of one account.
func (s *Service) GetAccount(id int64) (*AccountView, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.toView(u), nil
}

// ListAccounts returns accounts matching the filter.
func (s *Service) ListAccounts(filter ListFilter) ([]*AccountView, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	users, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}

	views := make([]*AccountView, 0, len(users))
	for _, u := range users {
		views = append(views, s.toView(u))
	}
	return views, nil
}

// AssignRole changes the user's role, or clears it when the name is
// empty. Effective permissions change on the user's next request.
func (s *Service) AssignRole(userID int64, dto AssignRoleDTO) (*AccountView, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if dto.RoleName == "" {
		u.RoleID = nil
	} else {
		role, err := s.roles.RoleByName(dto.RoleName)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, internal.ErrRoleNotFound
		}
		u.RoleID = &role.ID
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to assign role", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("role assigned", "user_id", userID, "role", dto.RoleName)
	return s.toView(u), nil
}

// SetActive toggles the account. Deactivation takes effect on the
// user's next authenticated request.
func (s *Service) SetActive(userID int64, dto SetActiveDTO) (*AccountView, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	u.IsActive = dto.IsActive
	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to toggle account", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("account toggled", "user_id", userID, "is_active", dto.IsActive)
	return s.toView(u), nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(userID int64, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.CurrentPassword)); err != nil {
		return internal.ErrInvalidCredentials
	}

	hash, err := s.hasher.HashPassword(dto.NewPassword)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to change password", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}
