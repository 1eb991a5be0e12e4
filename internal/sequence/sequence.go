package sequence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mjdelrosario/bpo-portal/internal"
)

// ErrConflict marks a racing counter assignment. Repositories translate
// their storage-level duplicate-key errors into this so the service can
// retry without knowing the driver.
var ErrConflict = errors.New("sequence counter conflict")

// maxAssignAttempts bounds retry-on-conflict before the failure is
// surfaced to the caller.
const maxAssignAttempts = 3

// CounterRepository assigns the next value of the (prefix, year) counter
// atomically. Two concurrent calls must never observe the same value.
type CounterRepository interface {
	NextValue(ctx context.Context, prefix string, year int) (int64, error)
}

// Service mints public identifiers of the form PREFIX-YYYY-NNNN, one
// monotonic sequence per (prefix, year).
type Service struct {
	repo   CounterRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo CounterRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// NewServiceWithClock injects the wall clock, used by tests to simulate
// year rollover.
func NewServiceWithClock(repo CounterRepository, logger *slog.Logger, clock func() time.Time) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    clock,
	}
}

// NextIdentifier assigns the next identifier for the prefix in the
// current year. Racing first-use inserts are retried a bounded number of
// times before a conflict is surfaced.
func (s *Service) NextIdentifier(ctx context.Context, prefix string) (string, error) {
	year := s.now().Year()

	var lastErr error
	for attempt := 1; attempt <= maxAssignAttempts; attempt++ {
		value, err := s.repo.NextValue(ctx, prefix, year)
		if err == nil {
			return FormatIdentifier(prefix, year, value), nil
		}
		if !errors.Is(err, ErrConflict) {
			s.logger.Error("identifier assignment failed", "error", err, "prefix", prefix, "year", year)
			return "", err
		}
		lastErr = err
		s.logger.Warn("identifier assignment raced, retrying",
			"prefix", prefix, "year", year, "attempt", attempt)
	}

	s.logger.Error("identifier assignment exhausted retries", "prefix", prefix, "year", year)
	return "", internal.NewConflictError("identifier assignment conflict", internal.ErrCodeSequenceConflict).WithCause(lastErr)
}

// FormatIdentifier renders PREFIX-YYYY-NNNN. Sequence numbers are
// zero-padded to 4 digits and widen naturally past 9999.
func FormatIdentifier(prefix string, year int, value int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, value)
}

// ParseSuffix extracts the numeric suffix of an existing identifier.
// Malformed suffixes report ok=false and are treated by callers as if no
// prior identifier existed, keeping ticket creation available.
func ParseSuffix(identifier string) (int64, bool) {
	idx := strings.LastIndex(identifier, "-")
	if idx < 0 || idx == len(identifier)-1 {
		return 0, false
	}
	n, err := strconv.ParseInt(identifier[idx+1:], 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
