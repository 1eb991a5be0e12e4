package irnte_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mjdelrosario/bpo-portal/internal"
	irnteDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/irnte"
	"github.com/mjdelrosario/bpo-portal/internal/irnte"
)

func TestIRNTEService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "IRNTE Service Suite")
}

// Mock repository for testing
type mockLogRepository struct {
	logs       map[int64]*irnteDatamodel.IRNTELog
	lastFilter irnte.ListLogsFilter
	nextID     int64
}

func newMockLogRepository() *mockLogRepository {
	return &mockLogRepository{
		logs:   make(map[int64]*irnteDatamodel.IRNTELog),
		nextID: 1,
	}
}

func (m *mockLogRepository) Create(l *irnteDatamodel.IRNTELog) error {
	l.ID = m.nextID
	m.nextID++
	m.logs[l.ID] = l
	return nil
}

func (m *mockLogRepository) GetByID(id int64) (*irnteDatamodel.IRNTELog, error) {
	l, exists := m.logs[id]
	if !exists {
		return nil, irnte.ErrLogNotFound
	}
	return l, nil
}

func (m *mockLogRepository) GetByDocID(docID string) (*irnteDatamodel.IRNTELog, error) {
	for _, l := range m.logs {
		if l.DocID == docID {
			return l, nil
		}
	}
	return nil, irnte.ErrLogNotFound
}

func (m *mockLogRepository) List(filter irnte.ListLogsFilter) ([]*irnteDatamodel.IRNTELog, error) {
	m.lastFilter = filter
	results := make([]*irnteDatamodel.IRNTELog, 0)
	for _, l := range m.logs {
		if filter.EmployeeID != nil && l.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.DocType != "" && l.DocType != filter.DocType {
			continue
		}
		results = append(results, l)
	}
	return results, nil
}

func (m *mockLogRepository) Update(l *irnteDatamodel.IRNTELog) error {
	m.logs[l.ID] = l
	return nil
}

// Mock identifier minter; counts per prefix so IR and NTE stay on
// independent sequences like the real generator.
type perPrefixMinter struct {
	counters map[string]int64
}

func (m *perPrefixMinter) NextIdentifier(ctx context.Context, prefix string) (string, error) {
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}
	m.counters[prefix]++
	return fmt.Sprintf("%s-2025-%04d", prefix, m.counters[prefix]), nil
}

var _ = Describe("IRNTEService", func() {
	var (
		service  *irnte.Service
		mockRepo *mockLogRepository
		minter   *perPrefixMinter
		logger   *slog.Logger
	)

	validDTO := func(docType string) irnte.CreateLogDTO {
		return irnte.CreateLogDTO{
			DocType:    docType,
			EmployeeID: 55,
			Category:   "attendance",
			Subject:    "Tardiness on March 12",
			Details:    "Arrived 45 minutes after shift start",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockLogRepository()
		minter = &perPrefixMinter{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = irnte.NewService(mockRepo, minter, nil, logger)
	})

	Describe("CreateLog", func() {
		It("should mint the doc ID under the document type's own prefix", func() {
			ir, err := service.CreateLog(context.Background(), validDTO(irnte.DocTypeIR), 10)
			Expect(err).ToNot(HaveOccurred())
			Expect(ir.DocID).To(Equal("IR-2025-0001"))
			Expect(ir.Status).To(Equal("issued"))
			Expect(ir.IssuedBy).To(Equal(int64(10)))

			nte, err := service.CreateLog(context.Background(), validDTO(irnte.DocTypeNTE), 10)
			Expect(err).ToNot(HaveOccurred())
			Expect(nte.DocID).To(Equal("NTE-2025-0001"))
		})

		It("should reject an unknown document type", func() {
			dto := validDTO("MEMO")

			result, err := service.CreateLog(context.Background(), dto, 10)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("doc_type"))
			Expect(result).To(BeNil())
		})

		It("should reject a future incident date", func() {
			dto := validDTO(irnte.DocTypeIR)
			future := time.Now().Add(48 * time.Hour)
			dto.IncidentDate = &future

			result, err := service.CreateLog(context.Background(), dto, 10)

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("GetLog", func() {
		var created *irnteDatamodel.IRNTELog

		BeforeEach(func() {
			var err error
			created, err = service.CreateLog(context.Background(), validDTO(irnte.DocTypeNTE), 10)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should allow the subject employee to read their own document", func() {
			result, err := service.GetLog(created.ID, 55, false)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.DocID).To(Equal(created.DocID))
		})

		It("should deny an unrelated non-manager", func() {
			_, err := service.GetLog(created.ID, 77, false)

			Expect(err).To(Equal(internal.ErrUnauthorizedAccess))
		})

		It("should allow a manager to read any document", func() {
			result, err := service.GetLog(created.ID, 77, true)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).ToNot(BeNil())
		})
	})

	Describe("ListLogs", func() {
		It("should pin non-managers to their own documents", func() {
			_, err := service.ListLogs(irnte.ListLogsFilter{}, 55, false)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.lastFilter.EmployeeID).ToNot(BeNil())
			Expect(*mockRepo.lastFilter.EmployeeID).To(Equal(int64(55)))
		})

		It("should pass a manager's filter through", func() {
			_, err := service.ListLogs(irnte.ListLogsFilter{DocType: irnte.DocTypeIR}, 55, true)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.lastFilter.EmployeeID).To(BeNil())
			Expect(mockRepo.lastFilter.DocType).To(Equal("IR"))
		})
	})

	Describe("Acknowledge", func() {
		var created *irnteDatamodel.IRNTELog

		BeforeEach(func() {
			var err error
			created, err = service.CreateLog(context.Background(), validDTO(irnte.DocTypeNTE), 10)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should stamp the acknowledgment and advance the status", func() {
			result, err := service.Acknowledge(created.ID, 55)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.AcknowledgedAt).ToNot(BeNil())
			Expect(result.Status).To(Equal("acknowledged"))
		})

		It("should deny anyone other than the subject employee", func() {
			_, err := service.Acknowledge(created.ID, 10)

			Expect(err).To(Equal(internal.ErrUnauthorizedAccess))
		})

		It("should be idempotent on repeat acknowledgment", func() {
			first, err := service.Acknowledge(created.ID, 55)
			Expect(err).ToNot(HaveOccurred())
			stamp := *first.AcknowledgedAt

			second, err := service.Acknowledge(created.ID, 55)
			Expect(err).ToNot(HaveOccurred())
			Expect(*second.AcknowledgedAt).To(Equal(stamp))
		})

		It("should not regress a status already past acknowledged", func() {
			_, err := service.UpdateStatus(created.ID, irnte.UpdateLogStatusDTO{Status: "explained"})
			Expect(err).ToNot(HaveOccurred())

			result, err := service.Acknowledge(created.ID, 55)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal("explained"))
			Expect(result.AcknowledgedAt).ToNot(BeNil())
		})
	})

	Describe("UpdateStatus", func() {
		It("should reject an unknown status", func() {
			created, err := service.CreateLog(context.Background(), validDTO(irnte.DocTypeIR), 10)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.UpdateStatus(created.ID, irnte.UpdateLogStatusDTO{Status: "shredded"})

			Expect(err).To(HaveOccurred())
		})
	})
})
