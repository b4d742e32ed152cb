package document

import "time"

type Document struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description" gorm:"not null"`
	UploadedByID int64      `json:"uploaded_by_id" gorm:"column:uploaded_by_id;not null"`
	DepartmentID *int64     `json:"department_id,omitempty" gorm:"column:department_id"`
	IsPublic     bool       `json:"is_public" gorm:"column:is_public;default:false"`
	Status       string     `json:"status" gorm:"default:PENDING"`
	ReviewedByID *int64     `json:"reviewed_by_id,omitempty" gorm:"column:reviewed_by_id"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty" gorm:"column:reviewed_at"`
	FileName     string     `json:"file_name" gorm:"column:file_name"`
	FileURL      string     `json:"file_url" gorm:"column:file_url"`
	FileSize     int64      `json:"file_size" gorm:"column:file_size"`
	MimeType     string     `json:"mime_type" gorm:"column:mime_type"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Document) TableName() string {
	return "documents"
}
