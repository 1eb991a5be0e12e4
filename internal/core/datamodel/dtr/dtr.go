package dtr

import "time"

type DailyTimeRecord struct {
	ID             int64      `gorm:"primaryKey"`
	UserID         int64      `gorm:"column:user_id;not null;uniqueIndex:idx_user_date"`
	Date           time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:idx_user_date"`
	ScheduledShift string     `gorm:"column:scheduled_shift"`
	TimeIn         *time.Time `gorm:"column:time_in"`
	TimeOut        *time.Time `gorm:"column:time_out"`
	BreakIn        *time.Time `gorm:"column:break_in"`
	BreakOut       *time.Time `gorm:"column:break_out"`
	TotalHours     string     `gorm:"column:total_hours"`
	OvertimeHours  string     `gorm:"column:overtime_hours"`
	Status         string     `gorm:"column:status;default:Present"`
	Remarks        string     `gorm:"column:remarks"`
	IsManualEntry  bool       `gorm:"column:is_manual_entry;default:false"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (DailyTimeRecord) TableName() string {
	return "daily_time_records"
}
