package dispute

import (
	"context"
	"log/slog"
	"time"

	"github.com/mjdelrosario/bpo-portal/internal"
	disputeDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/dispute"
	"github.com/mjdelrosario/bpo-portal/internal/core/events"
)

// TicketPrefix scopes the dispute identifier sequence.
const TicketPrefix = "PAY"

var ErrDisputeNotFound = internal.ErrDisputeNotFound

// Repository defines the data access methods for pay disputes.
type Repository interface {
	Create(d *disputeDatamodel.PayDispute) error
	GetByID(id int64) (*disputeDatamodel.PayDispute, error)
	GetByTicketNo(ticketNo string) (*disputeDatamodel.PayDispute, error)
	List(filter ListDisputesFilter) ([]*disputeDatamodel.PayDispute, error)
	Update(d *disputeDatamodel.PayDispute) error
	AddComment(c *disputeDatamodel.PayDisputeComment) error
	Comments(disputeID int64) ([]*disputeDatamodel.PayDisputeComment, error)
}

// IdentifierMinter mints the next scoped public identifier for a prefix.
// Wired to the sequence service.
type IdentifierMinter interface {
	NextIdentifier(ctx context.Context, prefix string) (string, error)
}

// Service handles pay dispute business logic.
type Service struct {
	repo   Repository
	minter IdentifierMinter
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, minter IdentifierMinter, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		minter: minter,
		bus:    bus,
		logger: logger,
	}
}

// CreateDispute files a new pay dispute. The ticket number is assigned
// atomically; a persisted dispute always carries one.
func (s *Service) CreateDispute(ctx context.Context, dto CreateDisputeDTO, createdBy int64) (*disputeDatamodel.PayDispute, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("dispute validation failed", "error", err, "created_by", createdBy)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	ticketNo, err := s.minter.NextIdentifier(ctx, TicketPrefix)
	if err != nil {
		s.logger.Error("failed to assign ticket number", "error", err, "created_by", createdBy)
		return nil, err
	}

	priority := dto.Priority
	if priority == "" {
		priority = "medium"
	}

	d := &disputeDatamodel.PayDispute{
		TicketNo:       ticketNo,
		EmployeeID:     dto.EmployeeID,
		DisputeType:    dto.DisputeType,
		PayPeriod:      dto.PayPeriod,
		DisputedAmount: dto.DisputedAmount,
		Subject:        dto.Subject,
		Description:    dto.Description,
		Status:         "open",
		Priority:       priority,
		CreatedBy:      createdBy,
	}

	if err := s.repo.Create(d); err != nil {
		s.logger.Error("failed to create dispute", "error", err, "ticket_no", ticketNo)
		return nil, err
	}

	s.logger.Info("dispute created", "ticket_no", ticketNo, "employee_id", dto.EmployeeID, "created_by", createdBy)
	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewTicketCreatedEvent(ticketNo, "pay_dispute", createdBy))
	}

	return d, nil
}

// GetDispute retrieves a dispute. Non-managers may only read disputes
// they filed or are the subject of.
func (s *Service) GetDispute(id int64, actorID int64, canManage bool) (*disputeDatamodel.PayDispute, error) {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !canManage && d.CreatedBy != actorID && d.EmployeeID != actorID {
		s.logger.Warn("unauthorized dispute access", "dispute_id", id, "actor_id", actorID)
		return nil, internal.ErrUnauthorizedAccess
	}
	return d, nil
}

// ListDisputes returns disputes matching the filter. Non-managers are
// pinned to their own disputes regardless of the requested filter.
func (s *Service) ListDisputes(filter ListDisputesFilter, actorID int64, canManage bool) ([]*disputeDatamodel.PayDispute, error) {
	if !canManage {
		filter.EmployeeID = &actorID
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	return s.repo.List(filter)
}

// UpdateStatus moves a dispute through its workflow.
func (s *Service) UpdateStatus(id int64, dto UpdateDisputeStatusDTO) (*disputeDatamodel.PayDispute, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	d.Status = dto.Status
	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to update dispute status", "error", err, "dispute_id", id)
		return nil, err
	}

	s.logger.Info("dispute status updated", "dispute_id", id, "ticket_no", d.TicketNo, "status", dto.Status)
	return d, nil
}

// AssignDispute assigns a dispute to a handler and marks it in review.
func (s *Service) AssignDispute(id int64, dto AssignDisputeDTO) (*disputeDatamodel.PayDispute, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	d.AssignedTo = &dto.AssignedTo
	if d.Status == "open" {
		d.Status = "in_review"
	}
	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to assign dispute", "error", err, "dispute_id", id)
		return nil, err
	}

	s.logger.Info("dispute assigned", "dispute_id", id, "assigned_to", dto.AssignedTo)
	return d, nil
}

// ResolveDispute closes a dispute with its resolution details.
func (s *Service) ResolveDispute(id int64, dto ResolveDisputeDTO) (*disputeDatamodel.PayDispute, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	d.Status = dto.Resolution
	d.ResolutionNotes = dto.ResolutionNotes
	d.ResolutionAmount = dto.ResolutionAmount
	d.ResolvedDate = &now
	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to resolve dispute", "error", err, "dispute_id", id)
		return nil, err
	}

	s.logger.Info("dispute resolved", "dispute_id", id, "ticket_no", d.TicketNo, "resolution", dto.Resolution)
	return d, nil
}

// AddComment appends a comment to the dispute thread, with the same read
// access rule as GetDispute.
func (s *Service) AddComment(disputeID int64, dto AddCommentDTO, authorID int64, canManage bool) (*disputeDatamodel.PayDisputeComment, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if _, err := s.GetDispute(disputeID, authorID, canManage); err != nil {
		return nil, err
	}

	c := &disputeDatamodel.PayDisputeComment{
		DisputeID: disputeID,
		AuthorID:  authorID,
		Comment:   dto.Comment,
	}
	if err := s.repo.AddComment(c); err != nil {
		s.logger.Error("failed to add dispute comment", "error", err, "dispute_id", disputeID)
		return nil, err
	}
	return c, nil
}

// Comments lists the comment thread of a dispute.
func (s *Service) Comments(disputeID int64, actorID int64, canManage bool) ([]*disputeDatamodel.PayDisputeComment, error) {
	if _, err := s.GetDispute(disputeID, actorID, canManage); err != nil {
		return nil, err
	}
	return s.repo.Comments(disputeID)
}
