package department

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	departmentDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	Create(d *departmentDatamodel.Department) error
	GetByID(id int64) (*departmentDatamodel.Department, error)
	GetByName(name string) (*departmentDatamodel.Department, error)
	List() ([]*departmentDatamodel.Department, error)
	Update(d *departmentDatamodel.Department) error
	Delete(id int64) error
	CountUsers(id int64) (int64, error)
	CountContent(id int64) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(caller approval.Caller, dto CreateDepartmentDTO) (*Department, error) {
	if !caller.IsAdmin() {
		return nil, internal.ErrForbiddenAction
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
		return nil, internal.ErrDepartmentNameTaken
	}

	now := time.Now()
	model := &departmentDatamodel.Department{
		Name:        dto.Name,
		Description: dto.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create department", "error", err)
		return nil, internal.NewInternalError("failed to create department", err)
	}

	s.logger.Info("department created", "department_id", model.ID, "name", model.Name)
	return FromDataModel(model), nil
}

func (s *Service) GetByID(id int64) (*Department, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(model), nil
}

// List is open to every authenticated user so clients can render
// department pickers and labels.
func (s *Service) List() ([]*Department, error) {
	models, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, internal.NewInternalError("failed to list departments", err)
	}
	return FromDataModelSlice(models), nil
}

func (s *Service) Update(caller approval.Caller, id int64, dto UpdateDepartmentDTO) (*Department, error) {
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

	if dto.Name != nil && *dto.Name != model.Name {
		if existing, err := s.repo.GetByName(*dto.Name); err == nil && existing != nil {
			return nil, internal.ErrDepartmentNameTaken
		}
		model.Name = *dto.Name
	}
	if dto.Description != nil {
		model.Description = dto.Description
	}
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(model); err != nil {
		s.logger.Error("failed to update department", "error", err, "department_id", id)
		return nil, internal.NewInternalError("failed to update department", err)
	}

	return FromDataModel(model), nil
}

// Delete refuses when the department still has members or content so
// foreign references never dangle.
func (s *Service) Delete(caller approval.Caller, id int64) error {
	if !caller.IsAdmin() {
		return internal.ErrForbiddenAction
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	users, err := s.repo.CountUsers(id)
	if err != nil {
		return internal.NewInternalError("failed to check department members", err)
	}
	content, err := s.repo.CountContent(id)
	if err != nil {
		return internal.NewInternalError("failed to check department content", err)
	}
	if users > 0 || content > 0 {
		s.logger.Warn("department delete refused",
			"department_id", id,
			"users", users,
			"content", content)
		return internal.ErrDepartmentNotEmpty
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete department", "error", err, "department_id", id)
		return internal.NewInternalError("failed to delete department", err)
	}

	s.logger.Info("department deleted", "department_id", id)
	return nil
}
