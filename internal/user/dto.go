package user

import (
	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	"github.com/frahmantamala/portal-management/internal/core/common/validation"
)

type CreateUserDTO struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

func (dto CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("email", dto.Email).Required().MaxLength(255)
	v.Field("password", dto.Password).Required()
	v.Field("role", dto.Role).Required().OneOf(
		string(approval.RoleAdmin),
		string(approval.RoleDepartmentHead),
		string(approval.RoleEmployee),
	)
	if err := v.Validate(); err != nil {
		return err
	}

	if len(dto.Password) < 8 {
		return internal.NewValidationFieldError("password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateUserDTO struct {
	Name         *string `json:"name,omitempty"`
	Role         *string `json:"role,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(100)
	}
	if dto.Role != nil {
		v.Field("role", *dto.Role).Required().OneOf(
			string(approval.RoleAdmin),
			string(approval.RoleDepartmentHead),
			string(approval.RoleEmployee),
		)
	}
	return v.Validate()
}
