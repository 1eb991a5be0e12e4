package request

import (
	"log/slog"

	"github.com/mjdelrosario/bpo-portal/internal"
	requestDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/request"
)

var ErrRequestNotFound = internal.NewNotFoundError("Request not found", "REQUEST_NOT_FOUND")

// ErrRequestClosed guards workflow transitions on an already-decided
// request.
var ErrRequestClosed = internal.NewConflictError("Request is no longer pending", "REQUEST_CLOSED")

// Repository defines the data access methods for employee requests.
type Repository interface {
	Create(req *requestDatamodel.Request) error
	GetByID(id int64) (*requestDatamodel.Request, error)
	List(filter ListRequestsFilter) ([]*requestDatamodel.Request, error)
	Update(req *requestDatamodel.Request) error
	Delete(id int64) (bool, error)
}

// Service handles employee request business logic: leave, overtime and
// other HR requests filed by employees and decided by their managers.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest files a request for the caller. New requests always
// start pending.
func (s *Service) CreateRequest(dto CreateRequestDTO, userID int64) (*requestDatamodel.Request, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("request validation failed", "error", err, "user_id", userID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	req := &requestDatamodel.Request{
		UserID:  userID,
		Type:    dto.Type,
		Status:  "pending",
		Details: dto.Details,
	}
	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create request", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("request filed", "request_id", req.ID, "type", req.Type, "user_id", userID)
	return req, nil
}

// GetRequest retrieves a request. Non-managers may only read their own.
func (s *Service) GetRequest(id int64, actorID int64, canManage bool) (*requestDatamodel.Request, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !canManage && req.UserID != actorID {
		s.logger.Warn("unauthorized request access", "request_id", id, "actor_id", actorID)
		return nil, internal.ErrUnauthorizedAccess
	}
	return req, nil
}

// ListRequests returns requests matching the filter. Non-managers are
// pinned to their own requests regardless of the requested filter.
func (s *Service) ListRequests(filter ListRequestsFilter, actorID int64, canManage bool) ([]*requestDatamodel.Request, error) {
	if !canManage {
		filter.UserID = &actorID
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	return s.repo.List(filter)
}

// UpdateStatus decides a pending request. Only pending requests move;
// a decided or cancelled request stays where it is.
func (s *Service) UpdateStatus(id int64, dto UpdateRequestStatusDTO) (*requestDatamodel.Request, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Status != "pending" {
		return nil, ErrRequestClosed
	}

	req.Status = dto.Status
	if dto.Details != "" {
		req.Details = dto.Details
	}
	if err := s.repo.Update(req); err != nil {
		s.logger.Error("failed to update request status", "error", err, "request_id", id)
		return nil, err
	}

	s.logger.Info("request decided", "request_id", id, "status", dto.Status)
	return req, nil
}

// Cancel withdraws the caller's own pending request.
func (s *Service) Cancel(id int64, actorID int64) (*requestDatamodel.Request, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.UserID != actorID {
		s.logger.Warn("unauthorized request cancel", "request_id", id, "actor_id", actorID)
		return nil, internal.ErrUnauthorizedAccess
	}
	if req.Status != "pending" {
		return nil, ErrRequestClosed
	}

	req.Status = "cancelled"
	if err := s.repo.Update(req); err != nil {
		s.logger.Error("failed to cancel request", "error", err, "request_id", id)
		return nil, err
	}

	s.logger.Info("request cancelled", "request_id", id, "user_id", actorID)
	return req, nil
}

// DeleteRequest removes a request outright.
func (s *Service) DeleteRequest(id int64) error {
	existed, err := s.repo.Delete(id)
	if err != nil {
		s.logger.Error("failed to delete request", "error", err, "request_id", id)
		return err
	}
	if !existed {
		return ErrRequestNotFound
	}

	s.logger.Info("request deleted", "request_id", id)
	return nil
}
