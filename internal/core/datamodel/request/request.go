package request

import "time"

type Request struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	Type      string    `gorm:"column:type;not null"`
	Status    string    `gorm:"column:status;default:pending"`
	Details   string    `gorm:"column:details"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Request) TableName() string {
	return "requests"
}
