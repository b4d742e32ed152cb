package document

import (
	"time"

	"github.com/frahmantamala/portal-management/internal/approval"
	documentDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/document"
)

type Document struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	UploadedByID int64           `json:"uploaded_by_id"`
	DepartmentID *int64          `json:"department_id,omitempty"`
	IsPublic     bool            `json:"is_public"`
	Status       approval.Status `json:"status"`
	ReviewedByID *int64          `json:"reviewed_by_id,omitempty"`
	ReviewedAt   *time.Time      `json:"reviewed_at,omitempty"`
	FileName     string          `json:"file_name"`
	FileURL      string          `json:"file_url"`
	FileSize     int64           `json:"file_size"`
	MimeType     string          `json:"mime_type"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (d *Document) Facts() approval.ItemFacts {
	return approval.ItemFacts{
		AuthorID:     d.UploadedByID,
		DepartmentID: d.DepartmentID,
		IsPublic:     d.IsPublic,
	}
}

func ToDataModel(d *Document) *documentDatamodel.Document {
	return &documentDatamodel.Document{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		UploadedByID: d.UploadedByID,
		DepartmentID: d.DepartmentID,
		IsPublic:     d.IsPublic,
		Status:       string(d.Status),
		ReviewedByID: d.ReviewedByID,
		ReviewedAt:   d.ReviewedAt,
		FileName:     d.FileName,
		FileURL:      d.FileURL,
		FileSize:     d.FileSize,
		MimeType:     d.MimeType,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func FromDataModel(d *documentDatamodel.Document) *Document {
	return &Document{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		UploadedByID: d.UploadedByID,
		DepartmentID: d.DepartmentID,
		IsPublic:     d.IsPublic,
		Status:       approval.Status(d.Status),
		ReviewedByID: d.ReviewedByID,
		ReviewedAt:   d.ReviewedAt,
		FileName:     d.FileName,
		FileURL:      d.FileURL,
		FileSize:     d.FileSize,
		MimeType:     d.MimeType,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func FromDataModelSlice(documents []*documentDatamodel.Document) []*Document {
	result := make([]*Document, len(documents))
	for i, d := range documents {
		result[i] = FromDataModel(d)
	}
	return result
}
