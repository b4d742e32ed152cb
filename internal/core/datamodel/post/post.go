package post

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Post struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title" gorm:"not null"`
	Content      string     `json:"content" gorm:"not null"`
	AuthorID     int64      `json:"author_id" gorm:"column:author_id;not null"`
	DepartmentID *int64     `json:"department_id,omitempty" gorm:"column:department_id"`
	IsPublic     bool       `json:"is_public" gorm:"column:is_public;default:false"`
	Status       string     `json:"status" gorm:"default:PENDING"`
	ReviewedByID *int64     `json:"reviewed_by_id,omitempty" gorm:"column:reviewed_by_id"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty" gorm:"column:reviewed_at"`
	Tags         TagList    `json:"tags" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Post) TableName() string {
	return "posts"
}

// TagList stores ordered free-text labels as a JSON text column so the
// same model works on postgres and the sqlite test store. Order is
// display-relevant and duplicates are allowed.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *TagList) Scan(src interface{}) error {
	if src == nil {
		*t = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tag list source type %T", src)
	}
}
