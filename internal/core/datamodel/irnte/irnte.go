package irnte

import "time"

// IRNTELog is a disciplinary document: an incident report (IR) or a
// notice to explain (NTE). DocID carries the public identifier
// (IR-YYYY-NNNN / NTE-YYYY-NNNN) minted by the sequence generator.
type IRNTELog struct {
	ID             int64      `gorm:"primaryKey"`
	DocID          string     `gorm:"column:doc_id;uniqueIndex;not null"`
	DocType        string     `gorm:"column:doc_type;not null"`
	EmployeeID     int64      `gorm:"column:employee_id;not null;index"`
	IncidentDate   *time.Time `gorm:"column:incident_date;type:date"`
	Category       string     `gorm:"column:category"`
	Subject        string     `gorm:"column:subject;not null"`
	Details        string     `gorm:"column:details"`
	Status         string     `gorm:"column:status;default:issued"`
	AcknowledgedAt *time.Time `gorm:"column:acknowledged_at"`
	IssuedBy       int64      `gorm:"column:issued_by;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (IRNTELog) TableName() string {
	return "ir_nte_logs"
}
