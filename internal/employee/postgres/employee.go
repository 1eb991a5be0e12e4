package postgres

import (
	"time"

	userDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/user"
	"github.com/mjdelrosario/bpo-portal/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *EmployeeRepository) GetByEmployeeNo(employeeNo string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("employee_no = ?", employeeNo).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *EmployeeRepository) Search(filter employee.SearchFilter) ([]*userDatamodel.User, error) {
	q := r.db.Model(&userDatamodel.User{})
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("full_name LIKE ? OR employee_no LIKE ? OR email LIKE ?", like, like, like)
	}
	if filter.Campaign != "" {
		q = q.Where("campaign = ?", filter.Campaign)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		q = q.Where("employee_status = ?", filter.Status)
	}

	var users []*userDatamodel.User
	err := q.Order("full_name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&users).Error
	return users, err
}

func (r *EmployeeRepository) Update(u *userDatamodel.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Save(u).Error
}

func (r *EmployeeRepository) Campaigns() ([]string, error) {
	var campaigns []string
	err := r.db.Model(&userDatamodel.User{}).
		Where("campaign <> ''").
		Distinct("campaign").
		Order("campaign ASC").
		Pluck("campaign", &campaigns).Error
	return campaigns, err
}

func (r *EmployeeRepository) Departments() ([]string, error) {
	var departments []string
	err := r.db.Model(&userDatamodel.User{}).
		Where("department <> ''").
		Distinct("department").
		Order("department ASC").
		Pluck("department", &departments).Error
	return departments, err
}
