package postgres

import (
	"errors"
	"time"

	"github.com/mjdelrosario/bpo-portal/internal"
	rbacDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/rbac"
	userDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/user"
	"github.com/mjdelrosario/bpo-portal/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	if err := r.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.ErrDuplicateAccount
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(filter user.ListFilter) ([]*userDatamodel.User, error) {
	q := r.db.Model(&userDatamodel.User{})
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("full_name LIKE ? OR employee_no LIKE ? OR email LIKE ?", like, like, like)
	}
	if filter.RoleID != nil {
		q = q.Where("role_id = ?", *filter.RoleID)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	var users []*userDatamodel.User
	err := q.Order("full_name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Save(u).Error
}

func (r *UserRepository) RoleByID(id int64) (*rbacDatamodel.Role, error) {
	var role rbacDatamodel.Role
	err := r.db.Where("id = ?", id).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}
