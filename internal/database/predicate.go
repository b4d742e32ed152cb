package database

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/portal-management/internal/approval"
	"gorm.io/gorm"
)

// PredicateScope renders an approval.Predicate into a GORM scope. Field
// names come from the predicate builders, which only emit whitelisted
// column names, so they are interpolated directly; values always go
// through placeholders.
func PredicateScope(p approval.Predicate) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.IsZero() {
			return db
		}
		sql, args := BuildSQL(p)
		if sql == "" {
			return db
		}
		return db.Where(sql, args...)
	}
}

// BuildSQL renders a predicate tree into a WHERE fragment with positional
// placeholders. CONTAINS uses LOWER(..) LIKE so behavior matches between
// postgres and the sqlite test store.
func BuildSQL(p approval.Predicate) (string, []interface{}) {
	switch p.Op {
	case approval.OpEq:
		if p.Value == nil {
			return fmt.Sprintf("%s IS NULL", p.Field), nil
		}
		return fmt.Sprintf("%s = ?", p.Field), []interface{}{p.Value}
	case approval.OpContains:
		term, _ := p.Value.(string)
		return fmt.Sprintf("LOWER(%s) LIKE ?", p.Field), []interface{}{"%" + strings.ToLower(term) + "%"}
	case approval.OpAnd, approval.OpOr:
		return buildComposite(p)
	default:
		return "", nil
	}
}

func buildComposite(p approval.Predicate) (string, []interface{}) {
	joiner := " AND "
	if p.Op == approval.OpOr {
		joiner = " OR "
	}

	parts := make([]string, 0, len(p.Preds))
	var args []interface{}
	for _, child := range p.Preds {
		sql, childArgs := BuildSQL(child)
		if sql == "" {
			continue
		}
		parts = append(parts, "("+sql+")")
		args = append(args, childArgs...)
	}

	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, joiner), args
}
