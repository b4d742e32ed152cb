package user

import (
	"time"

	"github.com/frahmantamala/portal-management/internal/approval"
	userDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/user"
)

// User is the account view exposed over the API. The password hash never
// leaves the datamodel.
type User struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Role         approval.Role `json:"role"`
	DepartmentID *int64        `json:"department_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         approval.Role(u.Role),
		DepartmentID: u.DepartmentID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
