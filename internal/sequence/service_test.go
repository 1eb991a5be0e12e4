package sequence_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mjdelrosario/bpo-portal/internal"
	"github.com/mjdelrosario/bpo-portal/internal/sequence"
)

func TestSequenceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sequence Service Suite")
}

// Mock counter repository for testing. Counters are keyed per
// (prefix, year) like the real table.
type mockCounterRepository struct {
	mu            sync.Mutex
	counters      map[string]int64
	conflictsLeft int
	failWith      error
}

func newMockCounterRepository() *mockCounterRepository {
	return &mockCounterRepository{counters: make(map[string]int64)}
}

func (m *mockCounterRepository) NextValue(ctx context.Context, prefix string, year int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return 0, m.failWith
	}
	if m.conflictsLeft > 0 {
		m.conflictsLeft--
		return 0, sequence.ErrConflict
	}

	key := fmt.Sprintf("%s-%d", prefix, year)
	m.counters[key]++
	return m.counters[key], nil
}

var _ = Describe("SequenceService", func() {
	var (
		service  *sequence.Service
		mockRepo *mockCounterRepository
		logger   *slog.Logger
		clock    time.Time
	)

	BeforeEach(func() {
		mockRepo = newMockCounterRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		clock = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
		service = sequence.NewServiceWithClock(mockRepo, logger, func() time.Time { return clock })
	})

	Describe("NextIdentifier", func() {
		Context("when the counter advances normally", func() {
			It("should mint zero-padded identifiers in order", func() {
				first, err := service.NextIdentifier(context.Background(), "PAY")
				Expect(err).ToNot(HaveOccurred())
				Expect(first).To(Equal("PAY-2025-0001"))

				second, err := service.NextIdentifier(context.Background(), "PAY")
				Expect(err).ToNot(HaveOccurred())
				Expect(second).To(Equal("PAY-2025-0002"))
			})

			It("should keep prefixes on independent sequences", func() {
				_, err := service.NextIdentifier(context.Background(), "IR")
				Expect(err).ToNot(HaveOccurred())
				_, err = service.NextIdentifier(context.Background(), "IR")
				Expect(err).ToNot(HaveOccurred())

				nte, err := service.NextIdentifier(context.Background(), "NTE")
				Expect(err).ToNot(HaveOccurred())
				Expect(nte).To(Equal("NTE-2025-0001"))
			})
		})

		Context("when the year rolls over", func() {
			It("should restart the sequence under the new year", func() {
				id, err := service.NextIdentifier(context.Background(), "PAY")
				Expect(err).ToNot(HaveOccurred())
				Expect(id).To(Equal("PAY-2025-0001"))

				clock = time.Date(2026, time.January, 1, 0, 0, 5, 0, time.UTC)

				id, err = service.NextIdentifier(context.Background(), "PAY")
				Expect(err).ToNot(HaveOccurred())
				Expect(id).To(Equal("PAY-2026-0001"))
			})
		})

		Context("when assignment races", func() {
			It("should retry past transient conflicts", func() {
				mockRepo.conflictsLeft = 2

				id, err := service.NextIdentifier(context.Background(), "PAY")

				Expect(err).ToNot(HaveOccurred())
				Expect(id).To(Equal("PAY-2025-0001"))
			})

			It("should surface a conflict after exhausting retries", func() {
				mockRepo.conflictsLeft = 3

				id, err := service.NextIdentifier(context.Background(), "PAY")

				Expect(err).To(HaveOccurred())
				Expect(id).To(BeEmpty())

				var appErr *internal.AppError
				Expect(errors.As(err, &appErr)).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeSequenceConflict))
			})
		})

		Context("when the repository fails with a non-conflict error", func() {
			It("should propagate the error without retrying", func() {
				mockRepo.failWith = errors.New("database error")

				id, err := service.NextIdentifier(context.Background(), "PAY")

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("database error"))
				Expect(id).To(BeEmpty())
			})
		})

		Context("when many callers mint concurrently", func() {
			It("should never hand out the same identifier twice", func() {
				const workers = 50

				results := make(chan string, workers)
				errs := make(chan error, workers)
				var wg sync.WaitGroup
				wg.Add(workers)
				for i := 0; i < workers; i++ {
					go func() {
						defer wg.Done()
						id, err := service.NextIdentifier(context.Background(), "PAY")
						if err != nil {
							errs <- err
							return
						}
						results <- id
					}()
				}
				wg.Wait()
				close(results)
				close(errs)

				Expect(errs).To(BeEmpty())
				seen := make(map[string]bool)
				for id := range results {
					Expect(seen[id]).To(BeFalse(), "duplicate identifier %s", id)
					seen[id] = true
				}
				Expect(seen).To(HaveLen(workers))
			})
		})
	})

	Describe("FormatIdentifier", func() {
		It("should zero-pad sequence numbers to four digits", func() {
			Expect(sequence.FormatIdentifier("PAY", 2025, 7)).To(Equal("PAY-2025-0007"))
		})

		It("should widen naturally past 9999", func() {
			Expect(sequence.FormatIdentifier("NTE", 2025, 12345)).To(Equal("NTE-2025-12345"))
		})
	})

	Describe("ParseSuffix", func() {
		It("should extract a well-formed suffix", func() {
			n, ok := sequence.ParseSuffix("PAY-2025-0042")
			Expect(ok).To(BeTrue())
			Expect(n).To(Equal(int64(42)))
		})

		It("should accept a widened suffix", func() {
			n, ok := sequence.ParseSuffix("IR-2025-10001")
			Expect(ok).To(BeTrue())
			Expect(n).To(Equal(int64(10001)))
		})

		It("should reject a non-numeric suffix", func() {
			_, ok := sequence.ParseSuffix("PAY-2025-00AB")
			Expect(ok).To(BeFalse())
		})

		It("should reject an identifier with no dash", func() {
			_, ok := sequence.ParseSuffix("PAY20250001")
			Expect(ok).To(BeFalse())
		})

		It("should reject a trailing dash", func() {
			_, ok := sequence.ParseSuffix("PAY-2025-")
			Expect(ok).To(BeFalse())
		})

		It("should reject an empty string", func() {
			_, ok := sequence.ParseSuffix("")
			Expect(ok).To(BeFalse())
		})
	})
})
