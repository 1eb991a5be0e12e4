package schedule

import (
	"log/slog"
	"time"

	"github.com/mjdelrosario/bpo-portal/internal"
	scheduleDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/schedule"
)

// Repository defines the data access methods for shift schedules.
type Repository interface {
	Upsert(shift *scheduleDatamodel.ShiftSchedule) error
	List(filter ListFilter) ([]*scheduleDatamodel.ShiftSchedule, error)
	PublishRange(dateFrom, dateTo string) (int64, error)
	DeleteByUserAndDate(userID int64, date time.Time) (bool, error)
}

// Service handles shift scheduling. Shifts are drafted by supervisors
// and invisible to agents until published.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func toShift(dto UpsertShiftDTO) *scheduleDatamodel.ShiftSchedule {
	date, _ := time.Parse("2006-01-02", dto.ScheduleDate)
	return &scheduleDatamodel.ShiftSchedule{
		UserID:       dto.UserID,
		ScheduleDate: date,
		DayOfWeek:    date.Weekday().String(),
		ShiftTime:    dto.ShiftTime,
		Campaign:     dto.Campaign,
		Notes:        dto.Notes,
	}
}

// UpsertShift creates or replaces a single shift assignment as a draft.
func (s *Service) UpsertShift(dto UpsertShiftDTO) (*scheduleDatamodel.ShiftSchedule, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	shift := toShift(dto)
	if err := s.repo.Upsert(shift); err != nil {
		s.logger.Error("failed to upsert shift", "error", err, "user_id", dto.UserID, "date", dto.ScheduleDate)
		return nil, err
	}

	s.logger.Info("shift saved", "user_id", dto.UserID, "date", dto.ScheduleDate, "shift", dto.ShiftTime)
	return shift, nil
}

// BulkUpsert applies a batch of shift assignments. The batch is not
// transactional across rows; a failure reports how far it got.
func (s *Service) BulkUpsert(dto BulkUpsertDTO) (int, error) {
	if err := dto.Validate(); err != nil {
		return 0, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	for i, shiftDTO := range dto.Shifts {
		if err := s.repo.Upsert(toShift(shiftDTO)); err != nil {
			s.logger.Error("bulk upsert stopped", "error", err, "applied", i)
			return i, err
		}
	}

	s.logger.Info("bulk shifts saved", "count", len(dto.Shifts))
	return len(dto.Shifts), nil
}

// Publish flips all draft shifts in the range to published and returns
// how many were affected.
func (s *Service) Publish(dto PublishDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDate)
	}

	affected, err := s.repo.PublishRange(dto.DateFrom, dto.DateTo)
	if err != nil {
		s.logger.Error("failed to publish schedule", "error", err, "from", dto.DateFrom, "to", dto.DateTo)
		return 0, err
	}

	s.logger.Info("schedule published", "from", dto.DateFrom, "to", dto.DateTo, "shifts", affected)
	return affected, nil
}

// List returns shifts matching the filter. Callers without edit rights
// see only their own published shifts.
func (s *Service) List(filter ListFilter, actorID int64, canManage bool) ([]*scheduleDatamodel.ShiftSchedule, error) {
	if !canManage {
		filter.UserID = &actorID
		filter.PublishedOnly = true
	}
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	return s.repo.List(filter)
}

// DeleteShift removes a draft or published shift assignment.
func (s *Service) DeleteShift(userID int64, scheduleDate string) (bool, error) {
	date, err := time.Parse("2006-01-02", scheduleDate)
	if err != nil {
		return false, internal.NewValidationError("schedule_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return s.repo.DeleteByUserAndDate(userID, date)
}
