package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePermissionGranted = "permission.granted"
	EventTypePermissionRevoked = "permission.revoked"
	EventTypeTicketCreated     = "ticket.created"
)

type PermissionGrantedEvent struct {
	BaseEvent
	UserID     int64  `json:"user_id"`
	ModuleName string `json:"module_name"`
	GrantedBy  *int64 `json:"granted_by,omitempty"`
}

func NewPermissionGrantedEvent(userID int64, moduleName string, grantedBy *int64) *PermissionGrantedEvent {
	return &PermissionGrantedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePermissionGranted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":     userID,
				"module_name": moduleName,
				"granted_by":  grantedBy,
			},
		},
		UserID:     userID,
		ModuleName: moduleName,
		GrantedBy:  grantedBy,
	}
}

type PermissionRevokedEvent struct {
	BaseEvent
	UserID     int64  `json:"user_id"`
	ModuleName string `json:"module_name"`
}

func NewPermissionRevokedEvent(userID int64, moduleName string) *PermissionRevokedEvent {
	return &PermissionRevokedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePermissionRevoked,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":     userID,
				"module_name": moduleName,
			},
		},
		UserID:     userID,
		ModuleName: moduleName,
	}
}

type TicketCreatedEvent struct {
	BaseEvent
	Identifier string `json:"identifier"`
	EntityKind string `json:"entity_kind"`
	CreatedBy  int64  `json:"created_by"`
}

func NewTicketCreatedEvent(identifier, entityKind string, createdBy int64) *TicketCreatedEvent {
	return &TicketCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTicketCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"identifier":  identifier,
				"entity_kind": entityKind,
				"created_by":  createdBy,
			},
		},
		Identifier: identifier,
		EntityKind: entityKind,
		CreatedBy:  createdBy,
	}
}
