package post

import (
	"time"

	"github.com/frahmantamala/portal-management/internal/approval"
	postDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/post"
)

type Post struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	AuthorID     int64           `json:"author_id"`
	DepartmentID *int64          `json:"department_id,omitempty"`
	IsPublic     bool            `json:"is_public"`
	Status       approval.Status `json:"status"`
	ReviewedByID *int64          `json:"reviewed_by_id,omitempty"`
	ReviewedAt   *time.Time      `json:"reviewed_at,omitempty"`
	Tags         []string        `json:"tags"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Facts exposes the attributes the authorization matrix reads.
func (p *Post) Facts() approval.ItemFacts {
	return approval.ItemFacts{
		AuthorID:     p.AuthorID,
		DepartmentID: p.DepartmentID,
		IsPublic:     p.IsPublic,
	}
}

func (p *Post) IsPending() bool {
	return p.Status == approval.StatusPending
}

func ToDataModel(p *Post) *postDatamodel.Post {
	return &postDatamodel.Post{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		AuthorID:     p.AuthorID,
		DepartmentID: p.DepartmentID,
		IsPublic:     p.IsPublic,
		Status:       string(p.Status),
		ReviewedByID: p.ReviewedByID,
		ReviewedAt:   p.ReviewedAt,
		Tags:         postDatamodel.TagList(p.Tags),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromDataModel(p *postDatamodel.Post) *Post {
	return &Post{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		AuthorID:     p.AuthorID,
		DepartmentID: p.DepartmentID,
		IsPublic:     p.IsPublic,
		Status:       approval.Status(p.Status),
		ReviewedByID: p.ReviewedByID,
		ReviewedAt:   p.ReviewedAt,
		Tags:         []string(p.Tags),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromDataModelSlice(posts []*postDatamodel.Post) []*Post {
	result := make([]*Post, len(posts))
	for i, p := range posts {
		result[i] = FromDataModel(p)
	}
	return result
}
