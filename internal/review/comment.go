package review

import (
	"time"

	reviewDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/review"
)

// Comment is attached to exactly one post or one document.
type Comment struct {
	ID         int64      `json:"id"`
	PostID     *int64     `json:"post_id,omitempty"`
	DocumentID *int64     `json:"document_id,omitempty"`
	UserID     int64      `json:"user_id"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
}

func FromDataModel(c *reviewDatamodel.Comment) *Comment {
	return &Comment{
		ID:         c.ID,
		PostID:     c.PostID,
		DocumentID: c.DocumentID,
		UserID:     c.UserID,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}

func FromDataModelSlice(comments []*reviewDatamodel.Comment) []*Comment {
	result := make([]*Comment, len(comments))
	for i, c := range comments {
		result[i] = FromDataModel(c)
	}
	return result
}
