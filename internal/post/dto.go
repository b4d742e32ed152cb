package post

import (
	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/core/common/validation"
)

// CreatePostDTO is the request payload for creating a post. DepartmentID
// is only honored for admins; department heads always post into their own
// department.
type CreatePostDTO struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	IsPublic     bool     `json:"is_public"`
	Tags         []string `json:"tags,omitempty"`
	DepartmentID *int64   `json:"department_id,omitempty"`
}

func (dto CreatePostDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("content", dto.Content).Required()
	return v.Validate()
}

// UpdatePostDTO carries partial updates; nil fields are left untouched.
type UpdatePostDTO struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	IsPublic *bool     `json:"is_public,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

func (dto UpdatePostDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Title != nil {
		v.Field("title", *dto.Title).Required().MaxLength(200)
	}
	if dto.Content != nil {
		v.Field("content", *dto.Content).Required()
	}
	return v.Validate()
}

// ReviewPostDTO is the admin decision payload: true approves, false
// rejects.
type ReviewPostDTO struct {
	Approved *bool `json:"approved"`
}

func (dto ReviewPostDTO) Validate() error {
	if dto.Approved == nil {
		return internal.NewValidationFieldError("approved", "approved is required", internal.ErrCodeEmptyField)
	}
	return nil
}
