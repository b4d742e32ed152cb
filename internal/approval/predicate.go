package approval

// Predicate is an immutable query description. Listing endpoints build one
// through VisibilityPredicate and hand it to a persistence adapter; the
// adapter decides how to render it (SQL, in-memory match, ...). EQ with a
// nil value means "column IS NULL".
type Predicate struct {
	Op    Op
	Field string
	Value interface{}
	Preds []Predicate
}

type Op string

const (
	OpAnd      Op = "AND"
	OpOr       Op = "OR"
	OpEq       Op = "EQ"
	OpContains Op = "CONTAINS" // case-insensitive substring
)

func Eq(field string, value interface{}) Predicate {
	return Predicate{Op: OpEq, Field: field, Value: value}
}

func Contains(field, term string) Predicate {
	return Predicate{Op: OpContains, Field: field, Value: term}
}

func And(preds ...Predicate) Predicate {
	if len(preds) == 1 {
		return preds[0]
	}
	return Predicate{Op: OpAnd, Preds: preds}
}

func Or(preds ...Predicate) Predicate {
	if len(preds) == 1 {
		return preds[0]
	}
	return Predicate{Op: OpOr, Preds: preds}
}

// IsZero reports an unrestricted predicate (match everything).
func (p Predicate) IsZero() bool {
	return p.Op == ""
}

// ListFilters are the caller-supplied listing options shared by posts and
// documents. DepartmentAccess is the opt-in union mode: when it names the
// caller's own department the visible set becomes department items ∪ public
// items (∪ company-wide items when IncludeAdminItems is set). It is
// mutually exclusive with DepartmentID; union wins.
type ListFilters struct {
	Search            string
	DepartmentID      *int64
	DepartmentAccess  *int64
	IncludeAdminItems bool
	IsPublic          *bool
	Status            *Status
	Page              Page
}

// VisibilityPredicate builds the listing predicate for a caller.
// searchFields are the text columns a free-text term matches against
// (title+content for posts, title+description for documents).
//
// Construction order matters: when union access is active the search term
// is ANDed into every union branch rather than onto the flattened result,
// otherwise a private item could ride in on a public branch's match.
func VisibilityPredicate(c Caller, f ListFilters, searchFields []string) Predicate {
	var search Predicate
	if f.Search != "" {
		matches := make([]Predicate, 0, len(searchFields))
		for _, field := range searchFields {
			matches = append(matches, Contains(field, f.Search))
		}
		search = Or(matches...)
	}

	var preds []Predicate

	if union := unionBranches(c, f); union != nil {
		if !search.IsZero() {
			for i, branch := range union {
				union[i] = And(branch, search)
			}
			search = Predicate{}
		}
		preds = append(preds, Or(union...))
	} else {
		if f.DepartmentID != nil {
			preds = append(preds, Eq("department_id", *f.DepartmentID))
		}
		if vis := defaultVisibility(c, f.IsPublic); !vis.IsZero() {
			preds = append(preds, vis)
		}
	}

	if !search.IsZero() {
		preds = append(preds, search)
	}

	if f.Status != nil {
		preds = append(preds, Eq("status", string(*f.Status)))
	}

	if len(preds) == 0 {
		return Predicate{}
	}
	return And(preds...)
}

// unionBranches returns the OR branches for department-access mode, or nil
// when the mode is inactive. The opt-in is honored only for the caller's
// own department; anything else falls back to the default visibility rule.
func unionBranches(c Caller, f ListFilters) []Predicate {
	if f.DepartmentAccess == nil {
		return nil
	}
	if !c.IsAdmin() && !c.InDepartment(f.DepartmentAccess) {
		return nil
	}

	branches := []Predicate{
		Eq("department_id", *f.DepartmentAccess),
		Eq("is_public", true),
	}
	if f.IncludeAdminItems {
		// company-wide items carry no department; only admins author them
		branches = append(branches, Eq("department_id", nil))
	}
	return branches
}

// defaultVisibility is the role-based predicate applied when no union mode
// is active. An explicit isPublic filter replaces it entirely.
func defaultVisibility(c Caller, isPublic *bool) Predicate {
	if isPublic != nil {
		return Eq("is_public", *isPublic)
	}

	switch c.Role {
	case RoleAdmin:
		return Predicate{}
	case RoleDepartmentHead:
		if c.DepartmentID != nil {
			return Or(
				Eq("department_id", *c.DepartmentID),
				Eq("is_public", true),
			)
		}
		return Eq("is_public", true)
	default:
		return Eq("is_public", true)
	}
}
