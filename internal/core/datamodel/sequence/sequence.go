package sequence

import "time"

// TicketSequence is the per-(prefix, year) counter backing public
// identifiers such as PAY-2026-0007. Value holds the last assigned
// sequence number; assignment increments it atomically. The unique
// index is the backstop against racing first-use inserts.
type TicketSequence struct {
	ID        int64     `gorm:"primaryKey"`
	Prefix    string    `gorm:"column:prefix;not null;uniqueIndex:idx_prefix_year"`
	Year      int       `gorm:"column:year;not null;uniqueIndex:idx_prefix_year"`
	Value     int64     `gorm:"column:value;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (TicketSequence) TableName() string {
	return "ticket_sequences"
}
