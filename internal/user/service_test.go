package user_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/mjdelrosario/bpo-portal/internal"
	rbacDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/rbac"
	userDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/user"
	"github.com/mjdelrosario/bpo-portal/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	users       map[int64]*userDatamodel.User
	roles       map[int64]*rbacDatamodel.Role
	createError error
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*userDatamodel.User),
		roles:  make(map[int64]*rbacDatamodel.Role),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	if m.createError != nil {
		return m.createError
	}
	for _, existing := range m.users {
		if existing.Email == u.Email || existing.EmployeeNo == u.EmployeeNo {
			return user.ErrDuplicateAccount
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	u, exists := m.users[id]
	if !exists {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepository) List(filter user.ListFilter) ([]*userDatamodel.User, error) {
	results := make([]*userDatamodel.User, 0, len(m.users))
	for _, u := range m.users {
		results = append(results, u)
	}
	return results, nil
}

func (m *mockUserRepository) Update(u *userDatamodel.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) RoleByID(id int64) (*rbacDatamodel.Role, error) {
	role, exists := m.roles[id]
	if !exists {
		return nil, internal.ErrRoleNotFound
	}
	return role, nil
}

// Mock role directory for testing
type mockRoleDirectory struct {
	roles map[string]*rbacDatamodel.Role
}

func (m *mockRoleDirectory) RoleByName(name string) (*rbacDatamodel.Role, error) {
	return m.roles[name], nil
}

// Fast hasher for tests; MinCost keeps the suite quick.
type testHasher struct{}

func (testHasher) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash), err
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
		roles    *mockRoleDirectory
		logger   *slog.Logger
	)

	validDTO := func() user.CreateUserDTO {
		return user.CreateUserDTO{
			EmployeeNo: "EMP-0101",
			Email:      "agent@portal.local",
			FullName:   "Test Agent",
			Password:   "secret-password",
			Campaign:   "telco-na",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		roles = &mockRoleDirectory{roles: map[string]*rbacDatamodel.Role{
			"agent":      {ID: 1, Name: "agent"},
			"supervisor": {ID: 2, Name: "supervisor"},
		}}
		mockRepo.roles[1] = roles.roles["agent"]
		mockRepo.roles[2] = roles.roles["supervisor"]
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, roles, testHasher{}, logger)
	})

	Describe("CreateUser", func() {
		It("should provision an active account with a hashed password", func() {
			view, err := service.CreateUser(validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(view.ID).To(BeNumerically(">", 0))
			Expect(view.IsActive).To(BeTrue())

			stored := mockRepo.users[view.ID]
			Expect(stored.PasswordHash).ToNot(Equal("secret-password"))
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret-password"))).To(Succeed())
		})

		It("should attach the named role", func() {
			dto := validDTO()
			dto.RoleName = "agent"

			view, err := service.CreateUser(dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(view.RoleName).To(Equal("agent"))
			Expect(view.RoleID).ToNot(BeNil())
			Expect(*view.RoleID).To(Equal(int64(1)))
		})

		It("should reject an unknown role name", func() {
			dto := validDTO()
			dto.RoleName = "warlord"

			view, err := service.CreateUser(dto)

			Expect(err).To(Equal(internal.ErrRoleNotFound))
			Expect(view).To(BeNil())
		})

		It("should report a duplicate employee number or email as a conflict", func() {
			_, err := service.CreateUser(validDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreateUser(validDTO())

			Expect(err).To(Equal(user.ErrDuplicateAccount))
		})

		It("should reject a short password", func() {
			dto := validDTO()
			dto.Password = "short"

			view, err := service.CreateUser(dto)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("password"))
			Expect(view).To(BeNil())
		})

		It("should reject a malformed email", func() {
			dto := validDTO()
			dto.Email = "not-an-email"

			_, err := service.CreateUser(dto)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("AssignRole", func() {
		var accountID int64

		BeforeEach(func() {
			dto := validDTO()
			dto.RoleName = "agent"
			view, err := service.CreateUser(dto)
			Expect(err).ToNot(HaveOccurred())
			accountID = view.ID
		})

		It("should switch the role by name", func() {
			view, err := service.AssignRole(accountID, user.AssignRoleDTO{RoleName: "supervisor"})

			Expect(err).ToNot(HaveOccurred())
			Expect(view.RoleName).To(Equal("supervisor"))
		})

		It("should clear the role when the name is empty", func() {
			view, err := service.AssignRole(accountID, user.AssignRoleDTO{})

			Expect(err).ToNot(HaveOccurred())
			Expect(view.RoleID).To(BeNil())
			Expect(view.RoleName).To(BeEmpty())
		})

		It("should reject an unknown role name", func() {
			_, err := service.AssignRole(accountID, user.AssignRoleDTO{RoleName: "warlord"})

			Expect(err).To(Equal(internal.ErrRoleNotFound))
		})

		It("should report a missing account", func() {
			_, err := service.AssignRole(9999, user.AssignRoleDTO{RoleName: "agent"})

			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("SetActive", func() {
		It("should deactivate and reactivate an account", func() {
			view, err := service.CreateUser(validDTO())
			Expect(err).ToNot(HaveOccurred())

			view, err = service.SetActive(view.ID, user.SetActiveDTO{IsActive: false})
			Expect(err).ToNot(HaveOccurred())
			Expect(view.IsActive).To(BeFalse())

			view, err = service.SetActive(view.ID, user.SetActiveDTO{IsActive: true})
			Expect(err).ToNot(HaveOccurred())
			Expect(view.IsActive).To(BeTrue())
		})
	})

	Describe("ChangePassword", func() {
		var accountID int64

		BeforeEach(func() {
			view, err := service.CreateUser(validDTO())
			Expect(err).ToNot(HaveOccurred())
			accountID = view.ID
		})

		It("should store a new hash when the current password matches", func() {
			err := service.ChangePassword(accountID, user.ChangePasswordDTO{
				CurrentPassword: "secret-password",
				NewPassword:     "even-more-secret",
			})

			Expect(err).ToNot(HaveOccurred())

			stored := mockRepo.users[accountID]
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("even-more-secret"))).To(Succeed())
		})

		It("should reject a wrong current password", func() {
			err := service.ChangePassword(accountID, user.ChangePasswordDTO{
				CurrentPassword: "wrong",
				NewPassword:     "even-more-secret",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject a short new password", func() {
			err := service.ChangePassword(accountID, user.ChangePasswordDTO{
				CurrentPassword: "secret-password",
				NewPassword:     "tiny",
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListAccounts", func() {
		It("should return management views without the password hash", func() {
			_, err := service.CreateUser(validDTO())
			Expect(err).ToNot(HaveOccurred())

			views, err := service.ListAccounts(user.ListFilter{})

			Expect(err).ToNot(HaveOccurred())
			Expect(views).To(HaveLen(1))
			Expect(views[0].Email).To(Equal("agent@portal.local"))
		})
	})
})
