package irnte

import (
	"context"
	"log/slog"
	"time"

	"github.com/mjdelrosario/bpo-portal/internal"
	irnteDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/irnte"
	"github.com/mjdelrosario/bpo-portal/internal/core/events"
)

// Repository defines the data access methods for IR/NTE logs.
type Repository interface {
	Create(l *irnteDatamodel.IRNTELog) error
	GetByID(id int64) (*irnteDatamodel.IRNTELog, error)
	GetByDocID(docID string) (*irnteDatamodel.IRNTELog, error)
	List(filter ListLogsFilter) ([]*irnteDatamodel.IRNTELog, error)
	Update(l *irnteDatamodel.IRNTELog) error
}

// IdentifierMinter mints the next scoped public identifier for a prefix.
type IdentifierMinter interface {
	NextIdentifier(ctx context.Context, prefix string) (string, error)
}

// Service handles IR/NTE business logic. The doc type doubles as the
// identifier prefix, so IR and NTE run independent sequences.
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

// CreateLog issues a new IR or NTE with an atomically assigned doc ID.
func (s *Service) CreateLog(ctx context.Context, dto CreateLogDTO, issuedBy int64) (*irnteDatamodel.IRNTELog, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("log validation failed", "error", err, "issued_by", issuedBy)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	docID, err := s.minter.NextIdentifier(ctx, dto.DocType)
	if err != nil {
		s.logger.Error("failed to assign doc ID", "error", err, "doc_type", dto.DocType)
		return nil, err
	}

	l := &irnteDatamodel.IRNTELog{
		DocID:        docID,
		DocType:      dto.DocType,
		EmployeeID:   dto.EmployeeID,
		IncidentDate: dto.IncidentDate,
		Category:     dto.Category,
		Subject:      dto.Subject,
		Details:      dto.Details,
		Status:       "issued",
		IssuedBy:     issuedBy,
	}

	if err := s.repo.Create(l); err != nil {
		s.logger.Error("failed to create log", "error", err, "doc_id", docID)
		return nil, err
	}

	s.logger.Info("log issued", "doc_id", docID, "doc_type", dto.DocType, "employee_id", dto.EmployeeID)
	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewTicketCreatedEvent(docID, "ir_nte_log", issuedBy))
	}

	return l, nil
}

// GetLog retrieves one log. Employees without module edit rights may
// only read documents issued against them.
func (s *Service) GetLog(id int64, actorID int64, canManage bool) (*irnteDatamodel.IRNTELog, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !canManage && l.EmployeeID != actorID {
		s.logger.Warn("unauthorized log access", "log_id", id, "actor_id", actorID)
		return nil, internal.ErrUnauthorizedAccess
	}
	return l, nil
}

// ListLogs returns logs matching the filter. Non-managers are pinned to
// their own documents.
func (s *Service) ListLogs(filter ListLogsFilter, actorID int64, canManage bool) ([]*irnteDatamodel.IRNTELog, error) {
	if !canManage {
		filter.EmployeeID = &actorID
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	return s.repo.List(filter)
}

// Acknowledge records the employee's acknowledgment. Only the subject
// employee may acknowledge, and only once.
func (s *Service) Acknowledge(id int64, actorID int64) (*irnteDatamodel.IRNTELog, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l.EmployeeID != actorID {
		return nil, internal.ErrUnauthorizedAccess
	}
	if l.AcknowledgedAt != nil {
		return l, nil
	}

	now := time.Now()
	l.AcknowledgedAt = &now
	if l.Status == "issued" {
		l.Status = "acknowledged"
	}
	if err := s.repo.Update(l); err != nil {
		s.logger.Error("failed to acknowledge log", "error", err, "log_id", id)
		return nil, err
	}

	s.logger.Info("log acknowledged", "doc_id", l.DocID, "employee_id", actorID)
	return l, nil
}

// UpdateStatus moves a document through its workflow.
func (s *Service) UpdateStatus(id int64, dto UpdateLogStatusDTO) (*irnteDatamodel.IRNTELog, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	l.Status = dto.Status
	if err := s.repo.Update(l); err != nil {
		s.logger.Error("failed to update log status", "error", err, "log_id", id)
		return nil, err
	}

	s.logger.Info("log status updated", "doc_id", l.DocID, "status", dto.Status)
	return l, nil
}
