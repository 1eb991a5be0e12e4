package schedule

import "time"

type ShiftSchedule struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_schedule_date"`
	ScheduleDate time.Time `gorm:"column:schedule_date;type:date;not null;uniqueIndex:idx_user_schedule_date"`
	DayOfWeek    string    `gorm:"column:day_of_week"`
	ShiftTime    string    `gorm:"column:shift_time"`
	Campaign     string    `gorm:"column:campaign"`
	Notes        string    `gorm:"column:notes"`
	IsPublished  bool      `gorm:"column:is_published;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ShiftSchedule) TableName() string {
	return "shift_schedules"
}
