package document

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	documentDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/document"
	"github.com/frahmantamala/portal-management/internal/core/events"
)

var searchFields = []string{"title", "description"}

type RepositoryAPI interface {
	Create(d *documentDatamodel.Document) error
	GetByID(id int64) (*documentDatamodel.Document, error)
	List(pred approval.Predicate, page approval.Page) ([]*documentDatamodel.Document, int64, error)
	Update(d *documentDatamodel.Document) error
	UpdateReview(id int64, status string, reviewerID int64, reviewedAt time.Time) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: eventBus,
		logger: logger,
	}
}

func (s *Service) Create(caller approval.Caller, dto CreateDocumentDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("document validation failed", "error", err, "caller_id", caller.ID)
		return nil, err
	}

	departmentID := dto.DepartmentID
	if caller.IsDepartmentHead() {
		departmentID = caller.DepartmentID
	}

	if err := approval.CanCreate(caller, departmentID); err != nil {
		s.logger.Warn("document creation denied", "caller_id", caller.ID, "role", caller.Role)
		return nil, err
	}

	now := time.Now()
	state := approval.InitialState(caller, now)

	model := &documentDatamodel.Document{
		Title:        dto.Title,
		Description:  dto.Description,
		UploadedByID: caller.ID,
		DepartmentID: departmentID,
		IsPublic:     dto.IsPublic,
		Status:       string(state.Status),
		ReviewedByID: state.ReviewedByID,
		ReviewedAt:   state.ReviewedAt,
		FileName:     dto.FileName,
		FileURL:      dto.FileURL,
		FileSize:     dto.FileSize,
		MimeType:     dto.MimeType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create document", "error", err, "caller_id", caller.ID)
		return nil, internal.NewInternalError("failed to create document", err)
	}

	if state.Status == approval.StatusPending {
		s.publish(events.NewContentSubmittedEvent(events.ContentKindDocument, model.ID, model.Title, model.UploadedByID))
	}

	s.logger.Info("document created",
		"document_id", model.ID,
		"caller_id", caller.ID,
		"status", model.Status)

	return FromDataModel(model), nil
}

func (s *Service) GetByID(caller approval.Caller, id int64, deptAccess *int64) (*Document, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	d := FromDataModel(model)
	if err := approval.CanView(caller, d.Facts(), deptAccess); err != nil {
		s.logger.Warn("document view denied", "document_id", id, "caller_id", caller.ID)
		return nil, err
	}

	return d, nil
}

func (s *Service) List(caller approval.Caller, filters approval.ListFilters) ([]*Document, approval.Pagination, error) {
	pred := approval.VisibilityPredicate(caller, filters, searchFields)
	page := filters.Page.Normalized()

	models, total, err := s.repo.List(pred, page)
	if err != nil {
		s.logger.Error("failed to list documents", "error", err, "caller_id", caller.ID)
		return nil, approval.Pagination{}, internal.NewInternalError("failed to list documents", err)
	}

	return FromDataModelSlice(models), approval.NewPagination(total, page), nil
}

func (s *Service) Update(caller approval.Caller, id int64, dto UpdateDocumentDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	d := FromDataModel(model)
	if err := approval.CanModify(caller, d.Facts()); err != nil {
		s.logger.Warn("document update denied", "document_id", id, "caller_id", caller.ID)
		return nil, err
	}

	if dto.Title != nil {
		model.Title = *dto.Title
	}
	if dto.Description != nil {
		model.Description = *dto.Description
	}
	if dto.IsPublic != nil {
		model.IsPublic = *dto.IsPublic
	}
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(model); err != nil {
		s.logger.Error("failed to update document", "error", err, "document_id", id)
		return nil, internal.NewInternalError("failed to update document", err)
	}

	return FromDataModel(model), nil
}

func (s *Service) Delete(caller approval.Caller, id int64) error {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	d := FromDataModel(model)
	if err := approval.CanModify(caller, d.Facts()); err != nil {
		s.logger.Warn("document delete denied", "document_id", id, "caller_id", caller.ID)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete document", "error", err, "document_id", id)
		return internal.NewInternalError("failed to delete document", err)
	}

	s.logger.Info("document deleted", "document_id", id, "caller_id", caller.ID)
	return nil
}

func (s *Service) Review(caller approval.Caller, id int64, approved bool) (*Document, error) {
	if err := approval.CanReview(caller); err != nil {
		s.logger.Warn("document review denied", "document_id", id, "caller_id", caller.ID, "role", caller.Role)
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	state := approval.DecidedState(caller, approved, now)

	if err := s.repo.UpdateReview(id, string(state.Status), caller.ID, now); err != nil {
		s.logger.Error("failed to update document review", "error", err, "document_id", id)
		return nil, internal.NewInternalError("failed to update document status", err)
	}

	model.Status = string(state.Status)
	model.ReviewedByID = state.ReviewedByID
	model.ReviewedAt = state.ReviewedAt
	model.UpdatedAt = now

	s.publish(events.NewContentReviewedEvent(events.ContentKindDocument, model.ID, model.Title, model.UploadedByID, model.Status, caller.ID))

	s.logger.Info("document reviewed",
		"document_id", id,
		"reviewer_id", caller.ID,
		"status", model.Status)

	return FromDataModel(model), nil
}

func (s *Service) Resubmit(caller approval.Caller, id int64) (*Document, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	d := FromDataModel(model)
	if err := approval.CanResubmit(caller, d.Facts()); err != nil {
		s.logger.Warn("document resubmit denied", "document_id", id, "caller_id", caller.ID)
		return nil, err
	}

	if err := s.repo.UpdateStatus(id, string(approval.StatusPending)); err != nil {
		s.logger.Error("failed to resubmit document", "error", err, "document_id", id)
		return nil, internal.NewInternalError("failed to resubmit document", err)
	}

	model.Status = string(approval.StatusPending)
	model.UpdatedAt = time.Now()

	s.publish(events.NewContentSubmittedEvent(events.ContentKindDocument, model.ID, model.Title, model.UploadedByID))

	return FromDataModel(model), nil
}

func (s *Service) publish(event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish event", "error", err, "event_type", event.EventType())
	}
}
