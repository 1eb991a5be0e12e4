package postgres

import (
	"errors"
	"time"

	requestDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/request"
	"github.com/mjdelrosario/bpo-portal/internal/request"
	"gorm.io/gorm"
)

// RequestRepository implements the request.Repository interface using GORM
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) request.Repository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(req *requestDatamodel.Request) error {
	return r.db.Create(req).Error
}

func (r *RequestRepository) GetByID(id int64) (*requestDatamodel.Request, error) {
	var req requestDatamodel.Request
	err := r.db.Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, request.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) List(filter request.ListRequestsFilter) ([]*requestDatamodel.Request, error) {
	q := r.db.Model(&requestDatamodel.Request{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}

	var requests []*requestDatamodel.Request
	err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&requests).Error
	return requests, err
}

func (r *RequestRepository) Update(req *requestDatamodel.Request) error {
	req.UpdatedAt = time.Now()
	return r.db.Save(req).Error
}

func (r *RequestRepository) Delete(id int64) (bool, error) {
	res := r.db.Delete(&requestDatamodel.Request{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
