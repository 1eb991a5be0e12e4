package employee_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	userDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/user"
	"github.com/mjdelrosario/bpo-portal/internal/employee"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

// Mock repository for testing
type mockDirectoryRepository struct {
	users      map[int64]*userDatamodel.User
	lastFilter employee.SearchFilter
}

func newMockDirectoryRepository() *mockDirectoryRepository {
	return &mockDirectoryRepository{users: make(map[int64]*userDatamodel.User)}
}

func (m *mockDirectoryRepository) GetByID(id int64) (*userDatamodel.User, error) {
	u, exists := m.users[id]
	if !exists {
		return nil, employee.ErrEmployeeNotFound
	}
	return u, nil
}

func (m *mockDirectoryRepository) GetByEmployeeNo(employeeNo string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.EmployeeNo == employeeNo {
			return u, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (m *mockDirectoryRepository) Search(filter employee.SearchFilter) ([]*userDatamodel.User, error) {
	m.lastFilter = filter
	results := make([]*userDatamodel.User, 0, len(m.users))
	for _, u := range m.users {
		results = append(results, u)
	}
	return results, nil
}

func (m *mockDirectoryRepository) Update(u *userDatamodel.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockDirectoryRepository) Campaigns() ([]string, error) {
	return []string{"telco-na", "retail-uk"}, nil
}

func (m *mockDirectoryRepository) Departments() ([]string, error) {
	return []string{"operations", "quality"}, nil
}

var _ = Describe("EmployeeService", func() {
	var (
		service  *employee.Service
		mockRepo *mockDirectoryRepository
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockDirectoryRepository()
		mockRepo.users[1] = &userDatamodel.User{
			ID:             1,
			EmployeeNo:     "EMP-0001",
			Email:          "agent@portal.local",
			FullName:       "Test Agent",
			PasswordHash:   "$2a$10$not-part-of-the-profile",
			Campaign:       "telco-na",
			Department:     "operations",
			EmployeeStatus: "Active",
		}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(mockRepo, logger)
	})

	Describe("GetProfile", func() {
		It("should expose employment fields only", func() {
			profile, err := service.GetProfile(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(profile.EmployeeNo).To(Equal("EMP-0001"))
			Expect(profile.Campaign).To(Equal("telco-na"))
		})

		It("should report a missing employee", func() {
			_, err := service.GetProfile(999)

			Expect(err).To(Equal(employee.ErrEmployeeNotFound))
		})
	})

	Describe("Search", func() {
		It("should clamp an unreasonable limit", func() {
			_, err := service.Search(employee.SearchFilter{Limit: 100000})

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.lastFilter.Limit).To(Equal(50))
		})

		It("should pass the query through", func() {
			_, err := service.Search(employee.SearchFilter{Query: "EMP-0001", Limit: 10})

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.lastFilter.Query).To(Equal("EMP-0001"))
		})
	})

	Describe("UpdateProfile", func() {
		It("should apply only the provided fields", func() {
			campaign := "retail-uk"

			profile, err := service.UpdateProfile(1, employee.UpdateProfileDTO{Campaign: &campaign})

			Expect(err).ToNot(HaveOccurred())
			Expect(profile.Campaign).To(Equal("retail-uk"))
			Expect(profile.FullName).To(Equal("Test Agent"))
			Expect(profile.Department).To(Equal("operations"))
		})

		It("should reject blanking the full name", func() {
			empty := ""

			_, err := service.UpdateProfile(1, employee.UpdateProfileDTO{FullName: &empty})

			Expect(err).To(HaveOccurred())
		})

		It("should reject an unknown employee status", func() {
			status := "Vacationing"

			_, err := service.UpdateProfile(1, employee.UpdateProfileDTO{EmployeeStatus: &status})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Facets", func() {
		It("should return the distinct campaigns and departments", func() {
			campaigns, departments, err := service.Facets()

			Expect(err).ToNot(HaveOccurred())
			Expect(campaigns).To(ConsistOf("telco-na", "retail-uk"))
			Expect(departments).To(ConsistOf("operations", "quality"))
		})
	})
})
