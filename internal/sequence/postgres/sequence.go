package postgres

import (
	"context"
	"errors"
	"fmt"

	sequenceDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/sequence"
	"github.com/mjdelrosario/bpo-portal/internal/sequence"
	"gorm.io/gorm"
)

// LegacySource names the entity table/column that carried identifiers
// before the counter table existed. Used once per (prefix, year) to seed
// a fresh counter from the highest already-assigned suffix.
type LegacySource struct {
	Table  string
	Column string
}

// DefaultLegacySources maps the portal's identifier families to the
// tables that hold their issued identifiers.
var DefaultLegacySources = map[string]LegacySource{
	"PAY": {Table: "pay_disputes", Column: "ticket_no"},
	"IR":  {Table: "ir_nte_logs", Column: "doc_id"},
	"NTE": {Table: "ir_nte_logs", Column: "doc_id"},
}

// SequenceRepository implements sequence.CounterRepository with a
// dedicated counter row per (prefix, year), incremented atomically
// inside a transaction. The unique index on (prefix, year) backstops
// racing first-use inserts.
type SequenceRepository struct {
	db     *gorm.DB
	legacy map[string]LegacySource
}

func NewSequenceRepository(db *gorm.DB, legacy map[string]LegacySource) *SequenceRepository {
	if legacy == nil {
		legacy = DefaultLegacySources
	}
	return &SequenceRepository{db: db, legacy: legacy}
}

func (r *SequenceRepository) NextValue(ctx context.Context, prefix string, year int) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The UPDATE takes a row lock, so concurrent increments serialize
		// and each transaction reads back its own value.
		res := tx.Model(&sequenceDatamodel.TicketSequence{}).
			Where("prefix = ? AND year = ?", prefix, year).
			Update("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// First assignment for this (prefix, year): seed from any
			// identifiers issued before the counter table existed.
			seed := r.legacyMax(tx, prefix, year)
			row := sequenceDatamodel.TicketSequence{
				Prefix: prefix,
				Year:   year,
				Value:  seed + 1,
			}
			if err := tx.Create(&row).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: %v", sequence.ErrConflict, err)
				}
				return err
			}
			next = row.Value
			return nil
		}

		var row sequenceDatamodel.TicketSequence
		if err := tx.Where("prefix = ? AND year = ?", prefix, year).First(&row).Error; err != nil {
			return err
		}
		next = row.Value
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// legacyMax reconstructs the highest assigned suffix for prefix/year
// from the owning entity table. Malformed suffixes are skipped
// (fail-open) so a corrupted identifier can never block assignment.
func (r *SequenceRepository) legacyMax(tx *gorm.DB, prefix string, year int) int64 {
	src, ok := r.legacy[prefix]
	if !ok {
		return 0
	}

	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)
	var identifiers []string
	if err := tx.Table(src.Table).
		Where(src.Column+" LIKE ?", pattern).
		Pluck(src.Column, &identifiers).Error; err != nil {
		return 0
	}

	var max int64
	for _, id := range identifiers {
		if n, ok := sequence.ParseSuffix(id); ok && n > max {
			max = n
		}
	}
	return max
}
