package department_test

import (
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	departmentDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/department"
	"github.com/frahmantamala/portal-management/internal/department"
)

func TestDepartmentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Service Suite")
}

type mockDepartmentRepository struct {
	departments map[int64]*departmentDatamodel.Department
	nextID      int64
	userCount   map[int64]int64
	content     map[int64]int64
}

func newMockDepartmentRepository() *mockDepartmentRepository {
	return &mockDepartmentRepository{
		departments: make(map[int64]*departmentDatamodel.Department),
		nextID:      1,
		userCount:   make(map[int64]int64),
		content:     make(map[int64]int64),
	}
}

func (m *mockDepartmentRepository) Create(d *departmentDatamodel.Department) error {
	d.ID = m.nextID
	m.nextID++
	copied := *d
	m.departments[d.ID] = &copied
	return nil
}

func (m *mockDepartmentRepository) GetByID(id int64) (*departmentDatamodel.Department, error) {
	d, ok := m.departments[id]
	if !ok {
		return nil, internal.ErrDepartmentNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *mockDepartmentRepository) GetByName(name string) (*departmentDatamodel.Department, error) {
	for _, d := range m.departments {
		if d.Name == name {
			copied := *d
			return &copied, nil
		}
	}
	return nil, internal.ErrDepartmentNotFound
}

func (m *mockDepartmentRepository) List() ([]*departmentDatamodel.Department, error) {
	var out []*departmentDatamodel.Department
	for _, d := range m.departments {
		copied := *d
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockDepartmentRepository) Update(d *departmentDatamodel.Department) error {
	copied := *d
	m.departments[d.ID] = &copied
	return nil
}

func (m *mockDepartmentRepository) Delete(id int64) error {
	delete(m.departments, id)
	return nil
}

func (m *mockDepartmentRepository) CountUsers(id int64) (int64, error) {
	return m.userCount[id], nil
}

func (m *mockDepartmentRepository) CountContent(id int64) (int64, error) {
	return m.content[id], nil
}

var _ = Describe("Department Service", func() {
	var (
		repo    *mockDepartmentRepository
		service *department.Service

		admin    approval.Caller
		deptHead approval.Caller
	)

	BeforeEach(func() {
		repo = newMockDepartmentRepository()
		service = department.NewService(repo, slog.Default())

		admin = approval.Caller{ID: 1, Role: approval.RoleAdmin}
		deptHead = approval.Caller{ID: 2, Role: approval.RoleDepartmentHead}
	})

	Describe("Create", func() {
		It("lets an admin create a department", func() {
			dept, err := service.Create(admin, department.CreateDepartmentDTO{Name: "Engineering"})

			Expect(err).NotTo(HaveOccurred())
			Expect(dept.ID).NotTo(BeZero())
			Expect(dept.Name).To(Equal("Engineering"))
		})

		It("denies non-admin callers", func() {
			_, err := service.Create(deptHead, department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).To(MatchError(internal.ErrForbiddenAction))
		})

		It("rejects a duplicate name", func() {
			_, err := service.Create(admin, department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(admin, department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).To(MatchError(internal.ErrDepartmentNameTaken))
		})

		It("rejects an empty name", func() {
			_, err := service.Create(admin, department.CreateDepartmentDTO{Name: ""})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("Update", func() {
		It("renames a department and refuses a taken name", func() {
			first, err := service.Create(admin, department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(admin, department.CreateDepartmentDTO{Name: "Finance"})
			Expect(err).NotTo(HaveOccurred())

			newName := "Platform Engineering"
			updated, err := service.Update(admin, first.ID, department.UpdateDepartmentDTO{Name: &newName})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal(newName))

			taken := "Finance"
			_, err = service.Update(admin, first.ID, department.UpdateDepartmentDTO{Name: &taken})
			Expect(err).To(MatchError(internal.ErrDepartmentNameTaken))
		})

		It("denies non-admin callers", func() {
			created, err := service.Create(admin, department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			newName := "Ops"
			_, err = service.Update(deptHead, created.ID, department.UpdateDepartmentDTO{Name: &newName})
			Expect(err).To(MatchError(internal.ErrForbiddenAction))
		})
	})

	Describe("Delete", func() {
		It("deletes an empty department", func() {
			created, err := service.Create(admin, department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(admin, created.ID)).To(Succeed())

			_, err = service.GetByID(created.ID)
			Expect(err).To(MatchError(internal.ErrDepartmentNotFound))
		})

		It("refuses when members remain", func() {
			created, err := service.Create(admin, department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())
			repo.userCount[created.ID] = 3

			Expect(service.Delete(admin, created.ID)).To(MatchError(internal.ErrDepartmentNotEmpty))
		})

		It("refuses when content still references it", func() {
			created, err := service.Create(admin, department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())
			repo.content[created.ID] = 1

			Expect(service.Delete(admin, created.ID)).To(MatchError(internal.ErrDepartmentNotEmpty))
		})

		It("denies non-admin callers", func() {
			created, err := service.Create(admin, department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(deptHead, created.ID)).To(MatchError(internal.ErrForbiddenAction))
		})
	})

	Describe("List", func() {
		It("returns every department to any caller", func() {
			_, err := service.Create(admin, department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(admin, department.CreateDepartmentDTO{Name: "Finance"})
			Expect(err).NotTo(HaveOccurred())

			depts, err := service.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(depts).To(HaveLen(2))
		})
	})
})
