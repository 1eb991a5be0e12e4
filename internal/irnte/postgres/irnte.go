package postgres

import (
	"time"

	irnteDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/irnte"
	"github.com/mjdelrosario/bpo-portal/internal/irnte"
	"gorm.io/gorm"
)

// LogRepository implements the irnte.Repository interface using GORM
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) irnte.Repository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Create(l *irnteDatamodel.IRNTELog) error {
	return r.db.Create(l).Error
}

func (r *LogRepository) GetByID(id int64) (*irnteDatamodel.IRNTELog, error) {
	var l irnteDatamodel.IRNTELog
	err := r.db.Where("id = ?", id).First(&l).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, irnte.ErrLogNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *LogRepository) GetByDocID(docID string) (*irnteDatamodel.IRNTELog, error) {
	var l irnteDatamodel.IRNTELog
	err := r.db.Where("doc_id = ?", docID).First(&l).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, irnte.ErrLogNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *LogRepository) List(filter irnte.ListLogsFilter) ([]*irnteDatamodel.IRNTELog, error) {
	q := r.db.Model(&irnteDatamodel.IRNTELog{})
	if filter.DocType != "" {
		q = q.Where("doc_type = ?", filter.DocType)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.EmployeeID != nil {
		q = q.Where("employee_id = ?", *filter.EmployeeID)
	}

	var logs []*irnteDatamodel.IRNTELog
	err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&logs).Error
	return logs, err
}

func (r *LogRepository) Update(l *irnteDatamodel.IRNTELog) error {
	l.UpdatedAt = time.Now()
	return r.db.Save(l).Error
}
