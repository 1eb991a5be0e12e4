package dispute

import (
	"errors"
	"strings"
)

var disputeTypes = map[string]bool{
	"underpayment": true,
	"overpayment":  true,
	"missing_ot":   true,
	"wrong_rate":   true,
	"deduction":    true,
	"allowance":    true,
	"night_diff":   true,
	"holiday_pay":  true,
	"other":        true,
}

var disputeStatuses = map[string]bool{
	"open":      true,
	"in_review": true,
	"resolved":  true,
	"rejected":  true,
	"escalated": true,
}

var priorities = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
	"urgent": true,
}

// CreateDisputeDTO is the request payload for filing a pay dispute. The
// ticket number is never client-supplied.
type CreateDisputeDTO struct {
	EmployeeID     int64    `json:"employee_id"`
	DisputeType    string   `json:"dispute_type"`
	PayPeriod      string   `json:"pay_period"`
	DisputedAmount *float64 `json:"disputed_amount,omitempty"`
	Subject        string   `json:"subject"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority,omitempty"`
}

func (dto CreateDisputeDTO) Validate() error {
	if dto.EmployeeID <= 0 {
		return errors.New("employee_id is required")
	}
	if !disputeTypes[dto.DisputeType] {
		return errors.New("invalid dispute_type")
	}
	if strings.TrimSpace(dto.Subject) == "" {
		return errors.New("subject is required")
	}
	if len(dto.Subject) > 200 {
		return errors.New("subject must be at most 200 characters")
	}
	if dto.DisputedAmount != nil && *dto.DisputedAmount < 0 {
		return errors.New("disputed_amount cannot be negative")
	}
	if dto.Priority != "" && !priorities[dto.Priority] {
		return errors.New("invalid priority")
	}
	return nil
}

// UpdateDisputeStatusDTO moves a dispute through its workflow.
type UpdateDisputeStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateDisputeStatusDTO) Validate() error {
	if !disputeStatuses[dto.Status] {
		return errors.New("invalid status")
	}
	return nil
}

// AssignDisputeDTO assigns a dispute to a handler.
type AssignDisputeDTO struct {
	AssignedTo int64 `json:"assigned_to"`
}

func (dto AssignDisputeDTO) Validate() error {
	if dto.AssignedTo <= 0 {
		return errors.New("assigned_to is required")
	}
	return nil
}

// ResolveDisputeDTO closes a dispute with resolution details.
type ResolveDisputeDTO struct {
	Resolution       string   `json:"resolution"`
	ResolutionNotes  string   `json:"resolution_notes"`
	ResolutionAmount *float64 `json:"resolution_amount,omitempty"`
}

func (dto ResolveDisputeDTO) Validate() error {
	if dto.Resolution != "resolved" && dto.Resolution != "rejected" {
		return errors.New("resolution must be 'resolved' or 'rejected'")
	}
	if strings.TrimSpace(dto.ResolutionNotes) == "" {
		return errors.New("resolution_notes is required")
	}
	if dto.ResolutionAmount != nil && *dto.ResolutionAmount < 0 {
		return errors.New("resolution_amount cannot be negative")
	}
	return nil
}

// AddCommentDTO appends a comment to the dispute thread.
type AddCommentDTO struct {
	Comment string `json:"comment"`
}

func (dto AddCommentDTO) Validate() error {
	if strings.TrimSpace(dto.Comment) == "" {
		return errors.New("comment is required")
	}
	if len(dto.Comment) > 2000 {
		return errors.New("comment must be at most 2000 characters")
	}
	return nil
}

// ListDisputesFilter narrows dispute listings.
type ListDisputesFilter struct {
	Status     string
	EmployeeID *int64
	AssignedTo *int64
	Limit      int
	Offset     int
}
