package postgres

import (
	"time"

	disputeDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/dispute"
	"github.com/mjdelrosario/bpo-portal/internal/dispute"
	"gorm.io/gorm"
)

// DisputeRepository implements the dispute.Repository interface using GORM
type DisputeRepository struct {
	db *gorm.DB
}

func NewDisputeRepository(db *gorm.DB) dispute.Repository {
	return &DisputeRepository{db: db}
}

func (r *DisputeRepository) Create(d *disputeDatamodel.PayDispute) error {
	return r.db.Create(d).Error
}

func (r *DisputeRepository) GetByID(id int64) (*disputeDatamodel.PayDispute, error) {
	var d disputeDatamodel.PayDispute
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, dispute.ErrDisputeNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DisputeRepository) GetByTicketNo(ticketNo string) (*disputeDatamodel.PayDispute, error) {
	var d disputeDatamodel.PayDispute
	err := r.db.Where("ticket_no = ?", ticketNo).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, dispute.ErrDisputeNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DisputeRepository) List(filter dispute.ListDisputesFilter) ([]*disputeDatamodel.PayDispute, error) {
	q := r.db.Model(&disputeDatamodel.PayDispute{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.EmployeeID != nil {
		q = q.Where("employee_id = ? OR created_by = ?", *filter.EmployeeID, *filter.EmployeeID)
	}
	if filter.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *filter.AssignedTo)
	}

	var disputes []*disputeDatamodel.PayDispute
	err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&disputes).Error
	return disputes, err
}

func (r *DisputeRepository) Update(d *disputeDatamodel.PayDispute) error {
	d.UpdatedAt = time.Now()
	return r.db.Save(d).Error
}

func (r *DisputeRepository) AddComment(c *disputeDatamodel.PayDisputeComment) error {
	return r.db.Create(c).Error
}

func (r *DisputeRepository) Comments(disputeID int64) ([]*disputeDatamodel.PayDisputeComment, error) {
	var comments []*disputeDatamodel.PayDisputeComment
	err := r.db.Where("dispute_id = ?", disputeID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
