package dispute

import "time"

type PayDispute struct {
	ID               int64      `gorm:"primaryKey"`
	TicketNo         string     `gorm:"column:ticket_no;uniqueIndex;not null"`
	EmployeeID       int64      `gorm:"column:employee_id;not null;index"`
	DisputeType      string     `gorm:"column:dispute_type;not null"`
	PayPeriod        string     `gorm:"column:pay_period"`
	DisputedAmount   *float64   `gorm:"column:disputed_amount"`
	Subject          string     `gorm:"column:subject;not null"`
	Description      string     `gorm:"column:description"`
	Status           string     `gorm:"column:status;default:open"`
	Priority         string     `gorm:"column:priority;default:medium"`
	AssignedTo       *int64     `gorm:"column:assigned_to"`
	ResolutionNotes  string     `gorm:"column:resolution_notes"`
	ResolutionAmount *float64   `gorm:"column:resolution_amount"`
	ResolvedDate     *time.Time `gorm:"column:resolved_date"`
	CreatedBy        int64      `gorm:"column:created_by;not null"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (PayDispute) TableName() string {
	return "pay_disputes"
}

type PayDisputeComment struct {
	ID        int64     `gorm:"primaryKey"`
	DisputeID int64     `gorm:"column:dispute_id;not null;index"`
	AuthorID  int64     `gorm:"column:author_id;not null"`
	Comment   string    `gorm:"column:comment;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PayDisputeComment) TableName() string {
	return "pay_dispute_comments"
}
