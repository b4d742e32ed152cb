package approval_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/portal-management/internal/approval"
)

var searchFields = []string{"title", "content"}

// collect walks a predicate tree and returns every leaf.
func collect(p approval.Predicate) []approval.Predicate {
	if p.Op == approval.OpAnd || p.Op == approval.OpOr {
		var leaves []approval.Predicate
		for _, child := range p.Preds {
			leaves = append(leaves, collect(child)...)
		}
		return leaves
	}
	return []approval.Predicate{p}
}

func hasLeaf(p approval.Predicate, op approval.Op, field string, value interface{}) bool {
	for _, leaf := range collect(p) {
		if leaf.Op == op && leaf.Field == field && leaf.Value == value {
			return true
		}
	}
	return false
}

var _ = Describe("VisibilityPredicate", func() {
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

	Context("default visibility", func() {
		It("leaves admins unrestricted", func() {
			pred := approval.VisibilityPredicate(admin, approval.ListFilters{}, searchFields)
			Expect(pred.IsZero()).To(BeTrue())
		})

		It("restricts employees to public items", func() {
			pred := approval.VisibilityPredicate(employee, approval.ListFilters{}, searchFields)
			Expect(hasLeaf(pred, approval.OpEq, "is_public", true)).To(BeTrue())
			Expect(hasLeaf(pred, approval.OpEq, "department_id", int64(10))).To(BeFalse())
		})

		It("gives heads their department plus public items", func() {
			pred := approval.VisibilityPredicate(head, approval.ListFilters{}, searchFields)
			Expect(pred.Op).To(Equal(approval.OpOr))
			Expect(hasLeaf(pred, approval.OpEq, "department_id", int64(10))).To(BeTrue())
			Expect(hasLeaf(pred, approval.OpEq, "is_public", true)).To(BeTrue())
		})
	})

	Context("explicit is_public filter", func() {
		It("replaces the role default", func() {
			isPublic := false
			pred := approval.VisibilityPredicate(admin, approval.ListFilters{IsPublic: &isPublic}, searchFields)
			Expect(hasLeaf(pred, approval.OpEq, "is_public", false)).To(BeTrue())
			Expect(hasLeaf(pred, approval.OpEq, "is_public", true)).To(BeFalse())
		})
	})

	Context("status filter", func() {
		It("is ANDed onto the visibility predicate", func() {
			status := approval.StatusPending
			pred := approval.VisibilityPredicate(head, approval.ListFilters{Status: &status}, searchFields)
			Expect(hasLeaf(pred, approval.OpEq, "status", "PENDING")).To(BeTrue())
		})
	})

	Context("department access union", func() {
		It("builds dept OR public branches for the caller's own department", func() {
			pred := approval.VisibilityPredicate(employee, approval.ListFilters{DepartmentAccess: ptr(10)}, searchFields)
			Expect(pred.Op).To(Equal(approval.OpOr))
			Expect(pred.Preds).To(HaveLen(2))
			Expect(hasLeaf(pred, approval.OpEq, "department_id", int64(10))).To(BeTrue())
			Expect(hasLeaf(pred, approval.OpEq, "is_public", true)).To(BeTrue())
		})

		It("adds the company-wide branch when admin items are included", func() {
			pred := approval.VisibilityPredicate(employee, approval.ListFilters{
				DepartmentAccess:  ptr(10),
				IncludeAdminItems: true,
			}, searchFields)
			Expect(pred.Op).To(Equal(approval.OpOr))
			Expect(pred.Preds).To(HaveLen(3))
			Expect(hasLeaf(pred, approval.OpEq, "department_id", nil)).To(BeTrue())
		})

		It("falls back to role visibility for a foreign department", func() {
			pred := approval.VisibilityPredicate(employee, approval.ListFilters{DepartmentAccess: ptr(20)}, searchFields)
			Expect(hasLeaf(pred, approval.OpEq, "department_id", int64(20))).To(BeFalse())
			Expect(hasLeaf(pred, approval.OpEq, "is_public", true)).To(BeTrue())
		})

		It("distributes the search term into every union branch", func() {
			pred := approval.VisibilityPredicate(employee, approval.ListFilters{
				DepartmentAccess: ptr(10),
				Search:           "meeting",
			}, searchFields)

			Expect(pred.Op).To(Equal(approval.OpOr))
			for _, branch := range pred.Preds {
				Expect(branch.Op).To(Equal(approval.OpAnd))
				Expect(hasLeaf(branch, approval.OpContains, "title", "meeting")).To(BeTrue())
				Expect(hasLeaf(branch, approval.OpContains, "content", "meeting")).To(BeTrue())
			}
		})
	})

	Context("search without union access", func() {
		It("matches the term against every search field", func() {
			pred := approval.VisibilityPredicate(employee, approval.ListFilters{Search: "policy"}, searchFields)
			Expect(hasLeaf(pred, approval.OpContains, "title", "policy")).To(BeTrue())
			Expect(hasLeaf(pred, approval.OpContains, "content", "policy")).To(BeTrue())
		})
	})
})

var _ = Describe("Pagination", func() {
	It("applies defaults and clamps the limit", func() {
		p := approval.Page{}.Normalized()
		Expect(p.Page).To(Equal(1))
		Expect(p.Limit).To(Equal(10))

		p = approval.Page{Page: -3, Limit: 500}.Normalized()
		Expect(p.Page).To(Equal(1))
		Expect(p.Limit).To(Equal(approval.MaxLimit))
	})

	It("computes offsets from 1-based pages", func() {
		Expect(approval.Page{Page: 1, Limit: 10}.Offset()).To(Equal(0))
		Expect(approval.Page{Page: 3, Limit: 10}.Offset()).To(Equal(20))
	})

	It("rounds total pages up", func() {
		meta := approval.NewPagination(21, approval.Page{Page: 1, Limit: 10})
		Expect(meta.Pages).To(Equal(3))
		Expect(meta.Total).To(Equal(int64(21)))
	})
})
