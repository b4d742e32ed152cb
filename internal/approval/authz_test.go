package approval_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
)

func ptr(v int64) *int64 { return &v }

var _ = Describe("Authorization rules", func() {
	var (
		admin    approval.Caller
		head     approval.Caller
		employee approval.Caller
	)

	BeforeEach(func() {
		admin = approval.Caller{ID: 1, Role: approval.RoleAdmin}
		head = approval.Caller{ID: 2, Role: approval.RoleDepartmentHead, DepartmentID: ptr(10)}
		employee = approval.Caller{ID: 3, Role: approval.RoleEmployee, DepartmentID: ptr(10)}
	})

	Describe("CanCreate", func() {
		It("allows admins to create in any department", func() {
			Expect(approval.CanCreate(admin, ptr(10))).To(Succeed())
			Expect(approval.CanCreate(admin, ptr(99))).To(Succeed())
			Expect(approval.CanCreate(admin, nil)).To(Succeed())
		})

		It("allows department heads only in their own department", func() {
			Expect(approval.CanCreate(head, ptr(10))).To(Succeed())

			err := approval.CanCreate(head, ptr(99))
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDepartmentMismatch))
		})

		It("rejects department heads creating company-wide content", func() {
			Expect(approval.CanCreate(head, nil)).To(HaveOccurred())
		})

		It("rejects employees unconditionally", func() {
			Expect(approval.CanCreate(employee, ptr(10))).To(MatchError(internal.ErrForbiddenAction))
		})
	})

	Describe("CanView", func() {
		privateDeptItem := approval.ItemFacts{AuthorID: 2, DepartmentID: ptr(10), IsPublic: false}
		otherDeptItem := approval.ItemFacts{AuthorID: 9, DepartmentID: ptr(20), IsPublic: false}
		publicItem := approval.ItemFacts{AuthorID: 1, IsPublic: true}

		It("lets admins see everything", func() {
			Expect(approval.CanView(admin, privateDeptItem, nil)).To(Succeed())
			Expect(approval.CanView(admin, otherDeptItem, nil)).To(Succeed())
		})

		It("lets anyone see public items", func() {
			Expect(approval.CanView(employee, publicItem, nil)).To(Succeed())
			Expect(approval.CanView(head, publicItem, nil)).To(Succeed())
		})

		It("lets department heads see their department's private items", func() {
			Expect(approval.CanView(head, privateDeptItem, nil)).To(Succeed())
			Expect(approval.CanView(head, otherDeptItem, nil)).To(HaveOccurred())
		})

		It("hides private department items from employees by default", func() {
			Expect(approval.CanView(employee, privateDeptItem, nil)).To(HaveOccurred())
		})

		It("lets employees opt into their own department scope", func() {
			Expect(approval.CanView(employee, privateDeptItem, ptr(10))).To(Succeed())
		})

		It("ignores an opt-in for a foreign department", func() {
			Expect(approval.CanView(employee, otherDeptItem, ptr(20))).To(HaveOccurred())
		})
	})

	Describe("CanModify", func() {
		It("allows admins on any item", func() {
			it := approval.ItemFacts{AuthorID: 9, DepartmentID: ptr(20)}
			Expect(approval.CanModify(admin, it)).To(Succeed())
		})

		It("allows heads only on their department's items", func() {
			Expect(approval.CanModify(head, approval.ItemFacts{DepartmentID: ptr(10)})).To(Succeed())
			Expect(approval.CanModify(head, approval.ItemFacts{DepartmentID: ptr(20)})).To(HaveOccurred())
		})

		It("rejects employees", func() {
			Expect(approval.CanModify(employee, approval.ItemFacts{DepartmentID: ptr(10)})).To(MatchError(internal.ErrForbiddenAction))
		})
	})

	Describe("CanReview", func() {
		It("is admin only", func() {
			Expect(approval.CanReview(admin)).To(Succeed())
			Expect(approval.CanReview(head)).To(MatchError(internal.ErrForbiddenAction))
			Expect(approval.CanReview(employee)).To(MatchError(internal.ErrForbiddenAction))
		})
	})

	Describe("CanResubmit", func() {
		It("allows admins on any item", func() {
			Expect(approval.CanResubmit(admin, approval.ItemFacts{AuthorID: 9})).To(Succeed())
		})

		It("allows heads only on their own items", func() {
			Expect(approval.CanResubmit(head, approval.ItemFacts{AuthorID: 2})).To(Succeed())
			Expect(approval.CanResubmit(head, approval.ItemFacts{AuthorID: 9})).To(HaveOccurred())
		})

		It("rejects employees", func() {
			Expect(approval.CanResubmit(employee, approval.ItemFacts{AuthorID: 3})).To(HaveOccurred())
		})
	})
})
