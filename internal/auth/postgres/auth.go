package postgres

import (
	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	"github.com/frahmantamala/portal-management/internal/auth"
	userDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, error) {
	var u userDatamodel.User
	err := r.db.Select("id", "password_hash").Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", 0, internal.ErrUserNotFound
		}
		return "", 0, err
	}
	return u.PasswordHash, u.ID, nil
}

func (r *Repository) GetSessionUser(userID int64) (*auth.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	return &auth.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         approval.Role(u.Role),
		DepartmentID: u.DepartmentID,
	}, nil
}
