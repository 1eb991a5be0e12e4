package irnte

import (
	"errors"
	"strings"
	"time"

	"github.com/mjdelrosario/bpo-portal/internal"
)

// Document kinds, each with its own identifier sequence.
const (
	DocTypeIR  = "IR"
	DocTypeNTE = "NTE"
)

var ErrLogNotFound = internal.ErrLogNotFound

var logStatuses = map[string]bool{
	"issued":       true,
	"acknowledged": true,
	"explained":    true,
	"closed":       true,
	"voided":       true,
}

// CreateLogDTO is the request payload for issuing an IR or NTE. The doc
// ID is never client-supplied.
type CreateLogDTO struct {
	DocType      string     `json:"doc_type"`
	EmployeeID   int64      `json:"employee_id"`
	IncidentDate *time.Time `json:"incident_date,omitempty"`
	Category     string     `json:"category"`
	Subject      string     `json:"subject"`
	Details      string     `json:"details"`
}

func (dto CreateLogDTO) Validate() error {
	if dto.DocType != DocTypeIR && dto.DocType != DocTypeNTE {
		return errors.New("doc_type must be IR or NTE")
	}
	if dto.EmployeeID <= 0 {
		return errors.New("employee_id is required")
	}
	if strings.TrimSpace(dto.Subject) == "" {
		return errors.New("subject is required")
	}
	if dto.IncidentDate != nil && dto.IncidentDate.After(time.Now()) {
		return errors.New("incident_date cannot be in the future")
	}
	return nil
}

// UpdateLogStatusDTO moves a document through its workflow.
type UpdateLogStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateLogStatusDTO) Validate() error {
	if !logStatuses[dto.Status] {
		return errors.New("invalid status")
	}
	return nil
}

// ListLogsFilter narrows log listings.
type ListLogsFilter struct {
	DocType    string
	Status     string
	EmployeeID *int64
	Limit      int
	Offset     int
}
