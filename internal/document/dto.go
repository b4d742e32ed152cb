package document

import (
	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/core/common/validation"
)

// CreateDocumentDTO carries the document record including the metadata of
// an already-uploaded file. The upload transport itself lives outside this
// service.
type CreateDocumentDTO struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	IsPublic     bool   `json:"is_public"`
	DepartmentID *int64 `json:"department_id,omitempty"`
	FileName     string `json:"file_name"`
	FileURL      string `json:"file_url"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `json:"mime_type"`
}

func (dto CreateDocumentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("description", dto.Description).Required()
	return v.Validate()
}

type UpdateDocumentDTO struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

func (dto UpdateDocumentDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Title != nil {
		v.Field("title", *dto.Title).Required().MaxLength(200)
	}
	if dto.Description != nil {
		v.Field("description", *dto.Description).Required()
	}
	return v.Validate()
}

type ReviewDocumentDTO struct {
	Approved *bool `json:"approved"`
}

func (dto ReviewDocumentDTO) Validate() error {
	if dto.Approved == nil {
		return internal.NewValidationFieldError("approved", "approved is required", internal.ErrCodeEmptyField)
	}
	return nil
}
