package dtr

import (
	"errors"
	"time"
)

var dtrStatuses = map[string]bool{
	"Present":  true,
	"Absent":   true,
	"Late":     true,
	"Half Day": true,
	"On Leave": true,
	"Rest Day": true,
	"Holiday":  true,
}

// ManualEntryDTO upserts a full day record on behalf of an employee.
// Used by supervisors to correct missed punches.
type ManualEntryDTO struct {
	UserID         int64      `json:"user_id"`
	Date           string     `json:"date"`
	ScheduledShift string     `json:"scheduled_shift,omitempty"`
	TimeIn         *time.Time `json:"time_in,omitempty"`
	TimeOut        *time.Time `json:"time_out,omitempty"`
	BreakIn        *time.Time `json:"break_in,omitempty"`
	BreakOut       *time.Time `json:"break_out,omitempty"`
	Status         string     `json:"status,omitempty"`
	Remarks        string     `json:"remarks,omitempty"`
}

func (dto ManualEntryDTO) Validate() error {
	if dto.UserID <= 0 {
		return errors.New("user_id is required")
	}
	if _, err := time.Parse("2006-01-02", dto.Date); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}
	if dto.Status != "" && !dtrStatuses[dto.Status] {
		return errors.New("invalid status")
	}
	if dto.TimeIn != nil && dto.TimeOut != nil && dto.TimeOut.Before(*dto.TimeIn) {
		return errors.New("time_out cannot be before time_in")
	}
	return nil
}

// ListFilter narrows time record listings.
type ListFilter struct {
	UserID   *int64
	DateFrom string
	DateTo   string
	Status   string
	Limit    int
	Offset   int
}

func (f ListFilter) Validate() error {
	if f.DateFrom != "" {
		if _, err := time.Parse("2006-01-02", f.DateFrom); err != nil {
			return errors.New("date_from must be YYYY-MM-DD")
		}
	}
	if f.DateTo != "" {
		if _, err := time.Parse("2006-01-02", f.DateTo); err != nil {
			return errors.New("date_to must be YYYY-MM-DD")
		}
	}
	return nil
}
