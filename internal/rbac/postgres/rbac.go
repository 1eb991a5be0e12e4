package postgres

import (
	"errors"

	rbacDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/rbac"
	"github.com/mjdelrosario/bpo-portal/internal/rbac"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RBACRepository implements rbac.RepositoryAPI using GORM.
type RBACRepository struct {
	db *gorm.DB
}

func NewRBACRepository(db *gorm.DB) rbac.RepositoryAPI {
	return &RBACRepository{db: db}
}

func (r *RBACRepository) RoleDefaults(roleID int64) ([]*rbacDatamodel.RoleModulePermission, error) {
	var perms []*rbacDatamodel.RoleModulePermission
	err := r.db.Preload("Module").
		Where("role_id = ?", roleID).
		Find(&perms).Error
	return perms, err
}

func (r *RBACRepository) UserOverrides(userID int64) ([]*rbacDatamodel.UserModulePermission, error) {
	var perms []*rbacDatamodel.UserModulePermission
	err := r.db.Preload("Module").
		Where("user_id = ?", userID).
		Find(&perms).Error
	return perms, err
}

func (r *RBACRepository) ActiveModules() ([]*rbacDatamodel.Module, error) {
	var modules []*rbacDatamodel.Module
	err := r.db.Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&modules).Error
	return modules, err
}

func (r *RBACRepository) AllModules() ([]*rbacDatamodel.Module, error) {
	var modules []*rbacDatamodel.Module
	err := r.db.Order("sort_order ASC").Find(&modules).Error
	return modules, err
}

func (r *RBACRepository) ModuleByName(name string) (*rbacDatamodel.Module, error) {
	var module rbacDatamodel.Module
	err := r.db.Where("name = ?", name).First(&module).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &module, nil
}

func (r *RBACRepository) Roles() ([]*rbacDatamodel.Role, error) {
	var roles []*rbacDatamodel.Role
	err := r.db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RBACRepository) RoleByName(name string) (*rbacDatamodel.Role, error) {
	var role rbacDatamodel.Role
	err := r.db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// UpsertOverride keeps the (user_id, module_id) invariant: re-granting
// updates the existing row in place, never inserts a duplicate.
func (r *RBACRepository) UpsertOverride(perm *rbacDatamodel.UserModulePermission) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"can_view", "can_create", "can_edit", "can_delete", "granted_by", "updated_at",
		}),
	}).Create(perm).Error
}

func (r *RBACRepository) DeleteOverride(userID, moduleID int64) (bool, error) {
	res := r.db.Where("user_id = ? AND module_id = ?", userID, moduleID).
		Delete(&rbacDatamodel.UserModulePermission{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *RBACRepository) SetModuleActive(name string, active bool) (bool, error) {
	res := r.db.Model(&rbacDatamodel.Module{}).
		Where("name = ?", name).
		Update("is_active", active)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
