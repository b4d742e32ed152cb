package user

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	userDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	Create(u *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	List() ([]*userDatamodel.User, error)
	Update(u *userDatamodel.User) error
	Delete(id int64) error
}

// PasswordHasher is satisfied by the auth service so password policy lives
// in one place.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// Create registers an account. Admin only.
func (s *Service) Create(caller approval.Caller, dto CreateUserDTO) (*User, error) {
	if !caller.IsAdmin() {
		return nil, internal.ErrForbiddenAction
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrEmailTaken
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	now := time.Now()
	model := &userDatamodel.User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         dto.Role,
		DepartmentID: dto.DepartmentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create user", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", model.ID, "role", model.Role)
	return FromDataModel(model), nil
}

func (s *Service) GetByID(caller approval.Caller, id int64) (*User, error) {
	if !caller.IsAdmin() && caller.ID != id {
		return nil, internal.ErrForbiddenAction
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(model), nil
}

func (s *Service) List(caller approval.Caller) ([]*User, error) {
	if !caller.IsAdmin() {
		return nil, internal.ErrForbiddenAction
	}

	models, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return FromDataModelSlice(models), nil
}

func (s *Service) Update(caller approval.Caller, id int64, dto UpdateUserDTO) (*User, error) {
	if !caller.IsAdmin() {
		return nil, internal.ErrForbiddenAction
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		model.Name = *dto.Name
	}
	if dto.Role != nil {
		model.Role = *dto.Role
	}
	if dto.DepartmentID != nil {
		model.DepartmentID = dto.DepartmentID
	}
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(model); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	return FromDataModel(model), nil
}

func (s *Service) Delete(caller approval.Caller, id int64) error {
	if !caller.IsAdmin() {
		return internal.ErrForbiddenAction
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return internal.NewInternalError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
