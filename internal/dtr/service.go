package dtr

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mjdelrosario/bpo-portal/internal"
	dtrDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/dtr"
)

// standardShiftHours is the paid workday; anything beyond it counts as
// overtime.
const standardShiftHours = 8.0

var (
	ErrRecordNotFound = internal.NewNotFoundError("Time record not found", "RECORD_NOT_FOUND")

	ErrAlreadyClockedIn  = internal.NewConflictError("Already clocked in today", "ALREADY_CLOCKED_IN")
	ErrNotClockedIn      = internal.NewValidationError("Not clocked in today", "NOT_CLOCKED_IN")
	ErrAlreadyClockedOut = internal.NewConflictError("Already clocked out today", "ALREADY_CLOCKED_OUT")
)

// Repository defines the data access methods for daily time records.
// GetByUserAndDate returns ErrRecordNotFound when no record exists for
// the day; any other error is an infrastructure failure.
type Repository interface {
	Create(rec *dtrDatamodel.DailyTimeRecord) error
	GetByUserAndDate(userID int64, date time.Time) (*dtrDatamodel.DailyTimeRecord, error)
	List(filter ListFilter) ([]*dtrDatamodel.DailyTimeRecord, error)
	Update(rec *dtrDatamodel.DailyTimeRecord) error
}

// Service handles time keeping: clock punches for the current day and
// manual corrections by supervisors.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// NewServiceWithClock injects the wall clock for tests.
func NewServiceWithClock(repo Repository, logger *slog.Logger, clock func() time.Time) *Service {
	return &Service{repo: repo, logger: logger, now: clock}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClockIn opens today's record for the user. One record per user per
// day; a second clock-in is a conflict.
func (s *Service) ClockIn(userID int64) (*dtrDatamodel.DailyTimeRecord, error) {
	now := s.now()
	today := dateOnly(now)

	existing, err := s.repo.GetByUserAndDate(userID, today)
	switch {
	case err == nil:
		if existing.TimeIn != nil {
			return nil, ErrAlreadyClockedIn
		}
		// A manual entry may have opened the day without a punch.
		existing.TimeIn = &now
		existing.Status = "Present"
		if err := s.repo.Update(existing); err != nil {
			s.logger.Error("failed to clock in", "error", err, "user_id", userID)
			return nil, err
		}
		s.logger.Info("clocked in", "user_id", userID, "time_in", now)
		return existing, nil
	case !errors.Is(err, ErrRecordNotFound):
		s.logger.Error("failed to read today's record", "error", err, "user_id", userID)
		return nil, err
	}

	rec := &dtrDatamodel.DailyTimeRecord{
		UserID: userID,
		Date:   today,
		TimeIn: &now,
		Status: "Present",
	}
	if err := s.repo.Create(rec); err != nil {
		s.logger.Error("failed to clock in", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("clocked in", "user_id", userID, "time_in", now)
	return rec, nil
}

// ClockOut closes today's record and computes total and overtime hours.
func (s *Service) ClockOut(userID int64) (*dtrDatamodel.DailyTimeRecord, error) {
	now := s.now()
	rec, err := s.repo.GetByUserAndDate(userID, dateOnly(now))
	if errors.Is(err, ErrRecordNotFound) {
		return nil, ErrNotClockedIn
	}
	if err != nil {
		return nil, err
	}
	if rec.TimeIn == nil {
		return nil, ErrNotClockedIn
	}
	if rec.TimeOut != nil {
		return nil, ErrAlreadyClockedOut
	}

	rec.TimeOut = &now
	applyHours(rec)

	if err := s.repo.Update(rec); err != nil {
		s.logger.Error("failed to clock out", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("clocked out", "user_id", userID, "total_hours", rec.TotalHours)
	return rec, nil
}

// BreakOut records the start of a break on today's record.
func (s *Service) BreakOut(userID int64) (*dtrDatamodel.DailyTimeRecord, error) {
	now := s.now()
	rec, err := s.repo.GetByUserAndDate(userID, dateOnly(now))
	if errors.Is(err, ErrRecordNotFound) {
		return nil, ErrNotClockedIn
	}
	if err != nil {
		return nil, err
	}
	if rec.TimeIn == nil {
		return nil, ErrNotClockedIn
	}

	rec.BreakOut = &now
	if err := s.repo.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// BreakIn records the return from a break on today's record.
func (s *Service) BreakIn(userID int64) (*dtrDatamodel.DailyTimeRecord, error) {
	now := s.now()
	rec, err := s.repo.GetByUserAndDate(userID, dateOnly(now))
	if errors.Is(err, ErrRecordNotFound) {
		return nil, ErrNotClockedIn
	}
	if err != nil {
		return nil, err
	}
	if rec.TimeIn == nil {
		return nil, ErrNotClockedIn
	}

	rec.BreakIn = &now
	if err := s.repo.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ManualEntry creates or corrects a day record on behalf of an employee.
func (s *Service) ManualEntry(dto ManualEntryDTO) (*dtrDatamodel.DailyTimeRecord, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	date, _ := time.Parse("2006-01-02", dto.Date)
	rec, err := s.repo.GetByUserAndDate(dto.UserID, date)
	if err != nil {
		if !errors.Is(err, ErrRecordNotFound) {
			s.logger.Error("failed to read record for manual entry", "error", err, "user_id", dto.UserID)
			return nil, err
		}
		rec = &dtrDatamodel.DailyTimeRecord{
			UserID: dto.UserID,
			Date:   date,
		}
		if err := s.repo.Create(rec); err != nil {
			s.logger.Error("failed to create manual record", "error", err, "user_id", dto.UserID)
			return nil, err
		}
	}

	if dto.ScheduledShift != "" {
		rec.ScheduledShift = dto.ScheduledShift
	}
	if dto.TimeIn != nil {
		rec.TimeIn = dto.TimeIn
	}
	if dto.TimeOut != nil {
		rec.TimeOut = dto.TimeOut
	}
	if dto.BreakIn != nil {
		rec.BreakIn = dto.BreakIn
	}
	if dto.BreakOut != nil {
		rec.BreakOut = dto.BreakOut
	}
	if dto.Status != "" {
		rec.Status = dto.Status
	}
	if dto.Remarks != "" {
		rec.Remarks = dto.Remarks
	}
	rec.IsManualEntry = true
	applyHours(rec)

	if err := s.repo.Update(rec); err != nil {
		s.logger.Error("failed to save manual record", "error", err, "user_id", dto.UserID)
		return nil, err
	}

	s.logger.Info("manual time record saved", "user_id", dto.UserID, "date", dto.Date)
	return rec, nil
}

// List returns records matching the filter. Non-managers are pinned to
// their own records.
func (s *Service) List(filter ListFilter, actorID int64, canManage bool) ([]*dtrDatamodel.DailyTimeRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDate)
	}
	if !canManage {
		filter.UserID = &actorID
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.repo.List(filter)
}

// Today returns the user's record for the current day, if any. The
// repository's not-found sentinel passes through untouched.
func (s *Service) Today(userID int64) (*dtrDatamodel.DailyTimeRecord, error) {
	return s.repo.GetByUserAndDate(userID, dateOnly(s.now()))
}

// applyHours derives total and overtime hours from the punches. Break
// time is deducted when both break punches are present.
func applyHours(rec *dtrDatamodel.DailyTimeRecord) {
	if rec.TimeIn == nil || rec.TimeOut == nil {
		return
	}

	worked := rec.TimeOut.Sub(*rec.TimeIn)
	if rec.BreakOut != nil && rec.BreakIn != nil && rec.BreakIn.After(*rec.BreakOut) {
		worked -= rec.BreakIn.Sub(*rec.BreakOut)
	}
	if worked < 0 {
		worked = 0
	}

	hours := worked.Hours()
	rec.TotalHours = fmt.Sprintf("%.2f", hours)
	if hours > standardShiftHours {
		rec.OvertimeHours = fmt.Sprintf("%.2f", hours-standardShiftHours)
	} else {
		rec.OvertimeHours = "0.00"
	}
}
