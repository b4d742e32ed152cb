package approval

import "github.com/frahmantamala/portal-management/internal"

// Role is the caller's portal role. Roles are facts supplied by the
// session; the approval rules never mutate them.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleDepartmentHead Role = "DEPARTMENT_HEAD"
	RoleEmployee       Role = "EMPLOYEE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDepartmentHead, RoleEmployee:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.Valid() {
		return "", internal.NewValidationError("role must be ADMIN, DEPARTMENT_HEAD or EMPLOYEE", internal.ErrCodeInvalidRole)
	}
	return r, nil
}

// Caller identifies who is performing an operation. It is passed explicitly
// into every rule so the package stays free of ambient session state.
type Caller struct {
	ID           int64
	Role         Role
	DepartmentID *int64
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c Caller) IsDepartmentHead() bool {
	return c.Role == RoleDepartmentHead
}

// InDepartment reports whether the caller belongs to the given department.
// A nil department on either side never matches.
func (c Caller) InDepartment(departmentID *int64) bool {
	if c.DepartmentID == nil || departmentID == nil {
		return false
	}
	return *c.DepartmentID == *departmentID
}

// ItemFacts are the attributes of a content item that authorization
// decisions read: who wrote it, which department owns it, whether it is
// flagged company-public.
type ItemFacts struct {
	AuthorID     int64
	DepartmentID *int64
	IsPublic     bool
}
