package postgres

import (
	"time"

	dtrDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/dtr"
	"github.com/mjdelrosario/bpo-portal/internal/dtr"
	"gorm.io/gorm"
)

// DTRRepository implements the dtr.Repository interface using GORM
type DTRRepository struct {
	db *gorm.DB
}

func NewDTRRepository(db *gorm.DB) dtr.Repository {
	return &DTRRepository{db: db}
}

func (r *DTRRepository) Create(rec *dtrDatamodel.DailyTimeRecord) error {
	return r.db.Create(rec).Error
}

func (r *DTRRepository) GetByUserAndDate(userID int64, date time.Time) (*dtrDatamodel.DailyTimeRecord, error) {
	var rec dtrDatamodel.DailyTimeRecord
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, dtr.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *DTRRepository) List(filter dtr.ListFilter) ([]*dtrDatamodel.DailyTimeRecord, error) {
	q := r.db.Model(&dtrDatamodel.DailyTimeRecord{})
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.DateFrom != "" {
		q = q.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("date <= ?", filter.DateTo)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var records []*dtrDatamodel.DailyTimeRecord
	err := q.Order("date DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&records).Error
	return records, err
}

func (r *DTRRepository) Update(rec *dtrDatamodel.DailyTimeRecord) error {
	rec.UpdatedAt = time.Now()
	return r.db.Save(rec).Error
}
