package approval

import "github.com/frahmantamala/portal-management/internal"

// Authorization matrix shared by posts and documents.
//
//	action          ADMIN          DEPARTMENT_HEAD              EMPLOYEE
//	create          any dept       own dept only                never
//	view            all            own dept or public           public (or own dept when opted in)
//	edit/delete     all            own dept only                never
//	approve/reject  yes            never                        never
//	resubmit        yes            own items only               never

// CanCreate checks whether the caller may create content in the given
// department. departmentID nil means company-wide content, which only
// admins may author.
func CanCreate(c Caller, departmentID *int64) error {
	switch c.Role {
	case RoleAdmin:
		return nil
	case RoleDepartmentHead:
		if c.InDepartment(departmentID) {
			return nil
		}
		return internal.NewForbiddenError("department heads can only create content in their own department", internal.ErrCodeDepartmentMismatch)
	default:
		return internal.ErrForbiddenAction
	}
}

// CanView checks read access to a single item. deptAccess is the optional
// opt-in department scope from the request; it only widens visibility when
// it names the caller's own department.
func CanView(c Caller, it ItemFacts, deptAccess *int64) error {
	if c.IsAdmin() {
		return nil
	}
	if it.IsPublic {
		return nil
	}
	if c.IsDepartmentHead() && c.InDepartment(it.DepartmentID) {
		return nil
	}
	if deptAccess != nil && c.InDepartment(deptAccess) && c.InDepartment(it.DepartmentID) {
		return nil
	}
	return internal.ErrForbiddenAction
}

// CanModify checks edit and delete access. Authors are covered by the
// department rule: only heads and admins author content, and a head's items
// live in their own department.
func CanModify(c Caller, it ItemFacts) error {
	if c.IsAdmin() {
		return nil
	}
	if c.IsDepartmentHead() {
		if c.InDepartment(it.DepartmentID) {
			return nil
		}
		return internal.NewForbiddenError("content belongs to another department", internal.ErrCodeDepartmentMismatch)
	}
	return internal.ErrForbiddenAction
}

// CanReview checks approve/reject access. Department heads may not approve
// their own submissions, so review is admin-only.
func CanReview(c Caller) error {
	if c.IsAdmin() {
		return nil
	}
	return internal.ErrForbiddenAction
}

// CanResubmit checks who may push an item back to PENDING for re-review.
func CanResubmit(c Caller, it ItemFacts) error {
	if c.IsAdmin() {
		return nil
	}
	if c.IsDepartmentHead() && c.ID == it.AuthorID {
		return nil
	}
	return internal.ErrForbiddenAction
}
