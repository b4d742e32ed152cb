package department

import (
	"github.com/frahmantamala/portal-management/internal/core/common/validation"
)

type CreateDepartmentDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (dto CreateDepartmentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	return v.Validate()
}

type UpdateDepartmentDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (dto UpdateDepartmentDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(100)
	}
	return v.Validate()
}
