package request_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mjdelrosario/bpo-portal/internal"
	requestDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/request"
	"github.com/mjdelrosario/bpo-portal/internal/request"
)

func TestRequestService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Request Service Suite")
}

// Mock repository for testing
type mockRequestRepository struct {
	requests    map[int64]*requestDatamodel.Request
	lastFilter  request.ListRequestsFilter
	createError error
	nextID      int64
}

func newMockRequestRepository() *mockRequestRepository {
	return &mockRequestRepository{
		requests: make(map[int64]*requestDatamodel.Request),
		nextID:   1,
	}
}

func (m *mockRequestRepository) Create(req *requestDatamodel.Request) error {
	if m.createError != nil {
		return m.createError
	}
	req.ID = m.nextID
	m.nextID++
	m.requests[req.ID] = req
	return nil
}

func (m *mockRequestRepository) GetByID(id int64) (*requestDatamodel.Request, error) {
	req, exists := m.requests[id]
	if !exists {
		return nil, request.ErrRequestNotFound
	}
	return req, nil
}

func (m *mockRequestRepository) List(filter request.ListRequestsFilter) ([]*requestDatamodel.Request, error) {
	m.lastFilter = filter
	results := make([]*requestDatamodel.Request, 0, len(m.requests))
	for _, req := range m.requests {
		if filter.UserID != nil && req.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		results = append(results, req)
	}
	return results, nil
}

func (m *mockRequestRepository) Update(req *requestDatamodel.Request) error {
	m.requests[req.ID] = req
	return nil
}

func (m *mockRequestRepository) Delete(id int64) (bool, error) {
	if _, exists := m.requests[id]; !exists {
		return false, nil
	}
	delete(m.requests, id)
	return true, nil
}

var _ = Describe("RequestService", func() {
	var (
		service  *request.Service
		mockRepo *mockRequestRepository
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockRequestRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = request.NewService(mockRepo, logger)
	})

	Describe("CreateRequest", func() {
		It("should file a pending request for the caller", func() {
			req, err := service.CreateRequest(request.CreateRequestDTO{
				Type:    "leave",
				Details: "vacation leave March 24-28",
			}, 7)

			Expect(err).ToNot(HaveOccurred())
			Expect(req.UserID).To(Equal(int64(7)))
			Expect(req.Status).To(Equal("pending"))
			Expect(req.Type).To(Equal("leave"))
		})

		It("should reject an unknown request type", func() {
			_, err := service.CreateRequest(request.CreateRequestDTO{Type: "teleportation"}, 7)

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.requests).To(BeEmpty())
		})
	})

	Describe("GetRequest", func() {
		var reqID int64

		BeforeEach(func() {
			req, err := service.CreateRequest(request.CreateRequestDTO{Type: "overtime"}, 7)
			Expect(err).ToNot(HaveOccurred())
			reqID = req.ID
		})

		It("should let the filer read their own request", func() {
			req, err := service.GetRequest(reqID, 7, false)

			Expect(err).ToNot(HaveOccurred())
			Expect(req.ID).To(Equal(reqID))
		})

		It("should deny an unrelated non-manager", func() {
			_, err := service.GetRequest(reqID, 8, false)

			Expect(err).To(Equal(internal.ErrUnauthorizedAccess))
		})

		It("should let a manager read any request", func() {
			req, err := service.GetRequest(reqID, 8, true)

			Expect(err).ToNot(HaveOccurred())
			Expect(req.ID).To(Equal(reqID))
		})

		It("should report a missing request", func() {
			_, err := service.GetRequest(999, 7, true)

			Expect(err).To(Equal(request.ErrRequestNotFound))
		})
	})

	Describe("ListRequests", func() {
		It("should pin non-managers to their own requests", func() {
			_, err := service.ListRequests(request.ListRequestsFilter{}, 7, false)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.lastFilter.UserID).ToNot(BeNil())
			Expect(*mockRepo.lastFilter.UserID).To(Equal(int64(7)))
		})

		It("should pass a manager's filter through untouched", func() {
			other := int64(3)

			_, err := service.ListRequests(request.ListRequestsFilter{UserID: &other, Status: "pending"}, 7, true)

			Expect(err).ToNot(HaveOccurred())
			Expect(*mockRepo.lastFilter.UserID).To(Equal(int64(3)))
			Expect(mockRepo.lastFilter.Status).To(Equal("pending"))
		})

		It("should clamp an unreasonable limit", func() {
			_, err := service.ListRequests(request.ListRequestsFilter{Limit: 9000}, 7, true)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.lastFilter.Limit).To(Equal(50))
		})
	})

	Describe("UpdateStatus", func() {
		var reqID int64

		BeforeEach(func() {
			req, err := service.CreateRequest(request.CreateRequestDTO{Type: "leave"}, 7)
			Expect(err).ToNot(HaveOccurred())
			reqID = req.ID
		})

		It("should approve a pending request", func() {
			req, err := service.UpdateStatus(reqID, request.UpdateRequestStatusDTO{Status: "approved"})

			Expect(err).ToNot(HaveOccurred())
			Expect(req.Status).To(Equal("approved"))
		})

		It("should reject moving a request back to pending", func() {
			_, err := service.UpdateStatus(reqID, request.UpdateRequestStatusDTO{Status: "pending"})

			Expect(err).To(HaveOccurred())
		})

		It("should not re-decide an already-decided request", func() {
			_, err := service.UpdateStatus(reqID, request.UpdateRequestStatusDTO{Status: "rejected"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.UpdateStatus(reqID, request.UpdateRequestStatusDTO{Status: "approved"})

			Expect(err).To(Equal(request.ErrRequestClosed))
		})

		It("should reject an unknown status", func() {
			_, err := service.UpdateStatus(reqID, request.UpdateRequestStatusDTO{Status: "shredded"})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Cancel", func() {
		var reqID int64

		BeforeEach(func() {
			req, err := service.CreateRequest(request.CreateRequestDTO{Type: "certificate"}, 7)
			Expect(err).ToNot(HaveOccurred())
			reqID = req.ID
		})

		It("should let the filer withdraw a pending request", func() {
			req, err := service.Cancel(reqID, 7)

			Expect(err).ToNot(HaveOccurred())
			Expect(req.Status).To(Equal("cancelled"))
		})

		It("should deny cancelling someone else's request", func() {
			_, err := service.Cancel(reqID, 8)

			Expect(err).To(Equal(internal.ErrUnauthorizedAccess))
		})

		It("should not withdraw a decided request", func() {
			_, err := service.UpdateStatus(reqID, request.UpdateRequestStatusDTO{Status: "approved"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Cancel(reqID, 7)

			Expect(err).To(Equal(request.ErrRequestClosed))
		})
	})

	Describe("DeleteRequest", func() {
		It("should remove an existing request", func() {
			req, err := service.CreateRequest(request.CreateRequestDTO{Type: "equipment"}, 7)
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteRequest(req.ID)).To(Succeed())
			Expect(mockRepo.requests).To(BeEmpty())
		})

		It("should report a missing request", func() {
			err := service.DeleteRequest(999)

			Expect(err).To(Equal(request.ErrRequestNotFound))
		})
	})
})
