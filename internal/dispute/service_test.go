package dispute_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mjdelrosario/bpo-portal/internal"
	disputeDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/dispute"
	"github.com/mjdelrosario/bpo-portal/internal/dispute"
)

func TestDisputeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dispute Service Suite")
}

// Mock repository for testing
type mockDisputeRepository struct {
	disputes    map[int64]*disputeDatamodel.PayDispute
	comments    map[int64][]*disputeDatamodel.PayDisputeComment
	lastFilter  dispute.ListDisputesFilter
	createError error
	nextID      int64
}

func newMockDisputeRepository() *mockDisputeRepository {
	return &mockDisputeRepository{
		disputes: make(map[int64]*disputeDatamodel.PayDispute),
		comments: make(map[int64][]*disputeDatamodel.PayDisputeComment),
		nextID:   1,
	}
}

func (m *mockDisputeRepository) Create(d *disputeDatamodel.PayDispute) error {
	if m.createError != nil {
		return m.createError
	}
	d.ID = m.nextID
	m.nextID++
	m.disputes[d.ID] = d
	return nil
}

func (m *mockDisputeRepository) GetByID(id int64) (*disputeDatamodel.PayDispute, error) {
	d, exists := m.disputes[id]
	if !exists {
		return nil, dispute.ErrDisputeNotFound
	}
	return d, nil
}

func (m *mockDisputeRepository) GetByTicketNo(ticketNo string) (*disputeDatamodel.PayDispute, error) {
	for _, d := range m.disputes {
		if d.TicketNo == ticketNo {
			return d, nil
		}
	}
	return nil, dispute.ErrDisputeNotFound
}

func (m *mockDisputeRepository) List(filter dispute.ListDisputesFilter) ([]*disputeDatamodel.PayDispute, error) {
	m.lastFilter = filter
	results := make([]*disputeDatamodel.PayDispute, 0)
	for _, d := range m.disputes {
		if filter.EmployeeID != nil && d.EmployeeID != *filter.EmployeeID && d.CreatedBy != *filter.EmployeeID {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		results = append(results, d)
	}
	return results, nil
}

func (m *mockDisputeRepository) Update(d *disputeDatamodel.PayDispute) error {
	m.disputes[d.ID] = d
	return nil
}

func (m *mockDisputeRepository) AddComment(c *disputeDatamodel.PayDisputeComment) error {
	c.ID = int64(len(m.comments[c.DisputeID]) + 1)
	m.comments[c.DisputeID] = append(m.comments[c.DisputeID], c)
	return nil
}

func (m *mockDisputeRepository) Comments(disputeID int64) ([]*disputeDatamodel.PayDisputeComment, error) {
	return m.comments[disputeID], nil
}

// Mock identifier minter for testing
type mockMinter struct {
	next     int64
	mintErr  error
	prefixes []string
}

func (m *mockMinter) NextIdentifier(ctx context.Context, prefix string) (string, error) {
	if m.mintErr != nil {
		return "", m.mintErr
	}
	m.next++
	m.prefixes = append(m.prefixes, prefix)
	return fmt.Sprintf("%s-2025-%04d", prefix, m.next), nil
}

var _ = Describe("DisputeService", func() {
	var (
		service  *dispute.Service
		mockRepo *mockDisputeRepository
		minter   *mockMinter
		logger   *slog.Logger
	)

	validDTO := func() dispute.CreateDisputeDTO {
		return dispute.CreateDisputeDTO{
			EmployeeID:  123,
			DisputeType: "missing_ot",
			PayPeriod:   "2025-03-A",
			Subject:     "Missing overtime for March 1-15",
			Description: "OT hours from the 10th were not paid",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockDisputeRepository()
		minter = &mockMinter{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = dispute.NewService(mockRepo, minter, nil, logger)
	})

	Describe("CreateDispute", func() {
		Context("when the payload is valid", func() {
			It("should mint a PAY ticket number and persist the dispute", func() {
				result, err := service.CreateDispute(context.Background(), validDTO(), 123)

				Expect(err).ToNot(HaveOccurred())
				Expect(result).ToNot(BeNil())
				Expect(result.TicketNo).To(Equal("PAY-2025-0001"))
				Expect(result.Status).To(Equal("open"))
				Expect(result.CreatedBy).To(Equal(int64(123)))
				Expect(minter.prefixes).To(ConsistOf("PAY"))
			})

			It("should default the priority to medium", func() {
				result, err := service.CreateDispute(context.Background(), validDTO(), 123)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Priority).To(Equal("medium"))
			})

			It("should keep an explicit priority", func() {
				dto := validDTO()
				dto.Priority = "urgent"

				result, err := service.CreateDispute(context.Background(), dto, 123)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Priority).To(Equal("urgent"))
			})

			It("should assign distinct ticket numbers to consecutive disputes", func() {
				first, err := service.CreateDispute(context.Background(), validDTO(), 123)
				Expect(err).ToNot(HaveOccurred())

				second, err := service.CreateDispute(context.Background(), validDTO(), 123)
				Expect(err).ToNot(HaveOccurred())

				Expect(first.TicketNo).ToNot(Equal(second.TicketNo))
			})
		})

		Context("when validation fails", func() {
			It("should reject an unknown dispute type", func() {
				dto := validDTO()
				dto.DisputeType = "vibes"

				result, err := service.CreateDispute(context.Background(), dto, 123)

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("dispute_type"))
				Expect(result).To(BeNil())
				Expect(minter.prefixes).To(BeEmpty())
			})

			It("should reject an empty subject", func() {
				dto := validDTO()
				dto.Subject = "   "

				result, err := service.CreateDispute(context.Background(), dto, 123)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})

		Context("when identifier assignment fails", func() {
			It("should propagate the error and not persist", func() {
				minter.mintErr = internal.ErrSequenceConflict

				result, err := service.CreateDispute(context.Background(), validDTO(), 123)

				Expect(err).To(Equal(internal.ErrSequenceConflict))
				Expect(result).To(BeNil())
				Expect(mockRepo.disputes).To(BeEmpty())
			})
		})

		Context("when the repository fails", func() {
			It("should return the repository error", func() {
				mockRepo.createError = errors.New("database error")

				result, err := service.CreateDispute(context.Background(), validDTO(), 123)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("GetDispute", func() {
		var created *disputeDatamodel.PayDispute

		BeforeEach(func() {
			var err error
			created, err = service.CreateDispute(context.Background(), validDTO(), 123)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should allow the filer to read their own dispute", func() {
			result, err := service.GetDispute(created.ID, 123, false)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(Equal(created.ID))
		})

		It("should allow a manager to read any dispute", func() {
			result, err := service.GetDispute(created.ID, 999, true)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(Equal(created.ID))
		})

		It("should deny an unrelated non-manager", func() {
			result, err := service.GetDispute(created.ID, 456, false)

			Expect(err).To(Equal(internal.ErrUnauthorizedAccess))
			Expect(result).To(BeNil())
		})

		It("should report not found for a missing dispute", func() {
			_, err := service.GetDispute(9999, 123, true)

			Expect(err).To(Equal(dispute.ErrDisputeNotFound))
		})
	})

	Describe("ListDisputes", func() {
		It("should pin non-managers to their own disputes", func() {
			_, err := service.ListDisputes(dispute.ListDisputesFilter{}, 123, false)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.lastFilter.EmployeeID).ToNot(BeNil())
			Expect(*mockRepo.lastFilter.EmployeeID).To(Equal(int64(123)))
		})

		It("should leave a manager's filter untouched", func() {
			_, err := service.ListDisputes(dispute.ListDisputesFilter{Status: "open"}, 123, true)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.lastFilter.EmployeeID).To(BeNil())
			Expect(mockRepo.lastFilter.Status).To(Equal("open"))
		})

		It("should clamp an unreasonable limit", func() {
			_, err := service.ListDisputes(dispute.ListDisputesFilter{Limit: 9000}, 1, true)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.lastFilter.Limit).To(Equal(50))
		})
	})

	Describe("AssignDispute", func() {
		It("should set the handler and move an open dispute to in_review", func() {
			created, err := service.CreateDispute(context.Background(), validDTO(), 123)
			Expect(err).ToNot(HaveOccurred())

			result, err := service.AssignDispute(created.ID, dispute.AssignDisputeDTO{AssignedTo: 77})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.AssignedTo).ToNot(BeNil())
			Expect(*result.AssignedTo).To(Equal(int64(77)))
			Expect(result.Status).To(Equal("in_review"))
		})

		It("should not regress the status of a resolved dispute", func() {
			created, err := service.CreateDispute(context.Background(), validDTO(), 123)
			Expect(err).ToNot(HaveOccurred())
			_, err = service.UpdateStatus(created.ID, dispute.UpdateDisputeStatusDTO{Status: "resolved"})
			Expect(err).ToNot(HaveOccurred())

			result, err := service.AssignDispute(created.ID, dispute.AssignDisputeDTO{AssignedTo: 77})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal("resolved"))
		})
	})

	Describe("ResolveDispute", func() {
		It("should stamp resolution fields and the resolved date", func() {
			created, err := service.CreateDispute(context.Background(), validDTO(), 123)
			Expect(err).ToNot(HaveOccurred())
			amount := 1500.00

			result, err := service.ResolveDispute(created.ID, dispute.ResolveDisputeDTO{
				Resolution:       "resolved",
				ResolutionNotes:  "OT recomputed and paid out",
				ResolutionAmount: &amount,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal("resolved"))
			Expect(result.ResolutionNotes).To(Equal("OT recomputed and paid out"))
			Expect(result.ResolutionAmount).To(Equal(&amount))
			Expect(result.ResolvedDate).ToNot(BeNil())
		})

		It("should reject a resolution without notes", func() {
			created, err := service.CreateDispute(context.Background(), validDTO(), 123)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ResolveDispute(created.ID, dispute.ResolveDisputeDTO{Resolution: "rejected"})

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("resolution_notes"))
		})
	})

	Describe("AddComment", func() {
		var created *disputeDatamodel.PayDispute

		BeforeEach(func() {
			var err error
			created, err = service.CreateDispute(context.Background(), validDTO(), 123)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should append a comment for the dispute owner", func() {
			comment, err := service.AddComment(created.ID, dispute.AddCommentDTO{Comment: "any update?"}, 123, false)

			Expect(err).ToNot(HaveOccurred())
			Expect(comment.AuthorID).To(Equal(int64(123)))

			thread, err := service.Comments(created.ID, 123, false)
			Expect(err).ToNot(HaveOccurred())
			Expect(thread).To(HaveLen(1))
		})

		It("should deny an unrelated non-manager", func() {
			_, err := service.AddComment(created.ID, dispute.AddCommentDTO{Comment: "snooping"}, 456, false)

			Expect(err).To(Equal(internal.ErrUnauthorizedAccess))
		})

		It("should reject an empty comment", func() {
			_, err := service.AddComment(created.ID, dispute.AddCommentDTO{Comment: "  "}, 123, false)

			Expect(err).To(HaveOccurred())
		})
	})
})
