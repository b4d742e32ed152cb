package department

import (
	"time"

	departmentDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/department"
)

type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromDataModel(d *departmentDatamodel.Department) *Department {
	return &Department{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func FromDataModelSlice(departments []*departmentDatamodel.Department) []*Department {
	result := make([]*Department, len(departments))
	for i, d := range departments {
		result[i] = FromDataModel(d)
	}
	return result
}
