package postgres

import (
	"time"

	scheduleDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/schedule"
	"github.com/mjdelrosario/bpo-portal/internal/schedule"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleRepository implements the schedule.Repository interface using GORM
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) schedule.Repository {
	return &ScheduleRepository{db: db}
}

// Upsert inserts the shift or replaces the existing row for the same
// (user_id, schedule_date). Re-upserting a published shift reverts it to
// draft so edits go through publish again.
func (r *ScheduleRepository) Upsert(shift *scheduleDatamodel.ShiftSchedule) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "schedule_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"day_of_week", "shift_time", "campaign", "notes", "is_published", "updated_at",
		}),
	}).Create(shift).Error
}

func (r *ScheduleRepository) List(filter schedule.ListFilter) ([]*scheduleDatamodel.ShiftSchedule, error) {
	q := r.db.Model(&scheduleDatamodel.ShiftSchedule{})
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Campaign != "" {
		q = q.Where("campaign = ?", filter.Campaign)
	}
	if filter.DateFrom != "" {
		q = q.Where("schedule_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("schedule_date <= ?", filter.DateTo)
	}
	if filter.PublishedOnly {
		q = q.Where("is_published = ?", true)
	}

	var shifts []*scheduleDatamodel.ShiftSchedule
	err := q.Order("schedule_date ASC, user_id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&shifts).Error
	return shifts, err
}

func (r *ScheduleRepository) PublishRange(dateFrom, dateTo string) (int64, error) {
	res := r.db.Model(&scheduleDatamodel.ShiftSchedule{}).
		Where("schedule_date >= ? AND schedule_date <= ? AND is_published = ?", dateFrom, dateTo, false).
		Updates(map[string]interface{}{
			"is_published": true,
			"updated_at":   time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *ScheduleRepository) DeleteByUserAndDate(userID int64, date time.Time) (bool, error) {
	res := r.db.Where("user_id = ? AND schedule_date = ?", userID, date).
		Delete(&scheduleDatamodel.ShiftSchedule{})
	return res.RowsAffected > 0, res.Error
}
