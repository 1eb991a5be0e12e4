package request

import "errors"

var requestTypes = map[string]bool{
	"leave":           true,
	"overtime":        true,
	"schedule_change": true,
	"certificate":     true,
	"equipment":       true,
	"other":           true,
}

var requestStatuses = map[string]bool{
	"pending":   true,
	"approved":  true,
	"rejected":  true,
	"cancelled": true,
}

// CreateRequestDTO is the payload for filing an employee request. The
// request is always filed for the caller.
type CreateRequestDTO struct {
	Type    string `json:"type"`
	Details string `json:"details"`
}

func (dto CreateRequestDTO) Validate() error {
	if !requestTypes[dto.Type] {
		return errors.New("invalid type")
	}
	if len(dto.Details) > 2000 {
		return errors.New("details must be at most 2000 characters")
	}
	return nil
}

// UpdateRequestStatusDTO moves a request through its workflow.
type UpdateRequestStatusDTO struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

func (dto UpdateRequestStatusDTO) Validate() error {
	if !requestStatuses[dto.Status] {
		return errors.New("invalid status")
	}
	if dto.Status == "pending" {
		return errors.New("a request cannot be moved back to pending")
	}
	return nil
}

// ListRequestsFilter narrows request listings.
type ListRequestsFilter struct {
	Type   string
	Status string
	UserID *int64
	Limit  int
	Offset int
}
