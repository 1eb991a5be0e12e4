package schedule

import (
	"errors"
	"fmt"
	"time"
)

// UpsertShiftDTO creates or replaces one shift assignment. The
// (user_id, schedule_date) pair is the natural key.
type UpsertShiftDTO struct {
	UserID       int64  `json:"user_id"`
	ScheduleDate string `json:"schedule_date"`
	ShiftTime    string `json:"shift_time"`
	Campaign     string `json:"campaign,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (dto UpsertShiftDTO) Validate() error {
	if dto.UserID <= 0 {
		return errors.New("user_id is required")
	}
	if _, err := time.Parse("2006-01-02", dto.ScheduleDate); err != nil {
		return errors.New("schedule_date must be YYYY-MM-DD")
	}
	if dto.ShiftTime == "" {
		return errors.New("shift_time is required")
	}
	return nil
}

// BulkUpsertDTO applies a batch of shift assignments, typically a week
// for a whole team.
type BulkUpsertDTO struct {
	Shifts []UpsertShiftDTO `json:"shifts"`
}

func (dto BulkUpsertDTO) Validate() error {
	if len(dto.Shifts) == 0 {
		return errors.New("shifts is required")
	}
	if len(dto.Shifts) > 500 {
		return errors.New("at most 500 shifts per batch")
	}
	for i, s := range dto.Shifts {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("shift %d: %w", i, err)
		}
	}
	return nil
}

// PublishDTO publishes all draft shifts in a date range, making them
// visible to agents.
type PublishDTO struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

func (dto PublishDTO) Validate() error {
	from, err := time.Parse("2006-01-02", dto.DateFrom)
	if err != nil {
		return errors.New("date_from must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", dto.DateTo)
	if err != nil {
		return errors.New("date_to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return errors.New("date_to cannot be before date_from")
	}
	return nil
}

// ListFilter narrows schedule listings.
type ListFilter struct {
	UserID        *int64
	Campaign      string
	DateFrom      string
	DateTo        string
	PublishedOnly bool
	Limit         int
	Offset        int
}
