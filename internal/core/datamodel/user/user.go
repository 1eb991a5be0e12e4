package user

import "time"

type User struct {
	ID             int64      `gorm:"primaryKey"`
	EmployeeNo     string     `gorm:"column:employee_no;uniqueIndex;not null"`
	Email          string     `gorm:"column:email;uniqueIndex;not null"`
	FullName       string     `gorm:"column:full_name;not null"`
	PasswordHash   string     `gorm:"column:password_hash;not null"`
	RoleID         *int64     `gorm:"column:role_id"`
	Campaign       string     `gorm:"column:campaign"`
	Department     string     `gorm:"column:department"`
	DateOfJoining  *time.Time `gorm:"column:date_of_joining;type:date"`
	LastWorkingDay *time.Time `gorm:"column:last_working_date;type:date"`
	PhoneNo        string     `gorm:"column:phone_no"`
	PersonalEmail  string     `gorm:"column:personal_email"`
	EmployeeStatus string     `gorm:"column:employee_status;default:Active"`
	IsActive       bool       `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
