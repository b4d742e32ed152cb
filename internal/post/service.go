package post

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	postDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/post"
	"github.com/frahmantamala/portal-management/internal/core/events"
)

// searchFields are the columns a free-text search term matches against.
var searchFields = []string{"title", "content"}

// RepositoryAPI defines the data access methods for posts.
type RepositoryAPI interface {
	Create(p *postDatamodel.Post) error
	GetByID(id int64) (*postDatamodel.Post, error)
	List(pred approval.Predicate, page approval.Page) ([]*postDatamodel.Post, int64, error)
	Update(p *postDatamodel.Post) error
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

// Create makes a new post on behalf of the caller. Department heads post
// into their own department; admins may target any department or none
// (company-wide) and their posts go live immediately.
func (s *Service) Create(caller approval.Caller, dto CreatePostDTO) (*Post, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("post validation failed", "error", err, "caller_id", caller.ID)
		return nil, err
	}

	departmentID := dto.DepartmentID
	if caller.IsDepartmentHead() {
		departmentID = caller.DepartmentID
	}

	if err := approval.CanCreate(caller, departmentID); err != nil {
		s.logger.Warn("post creation denied", "caller_id", caller.ID, "role", caller.Role)
		return nil, err
	}

	now := time.Now()
	state := approval.InitialState(caller, now)

	model := &postDatamodel.Post{
		Title:        dto.Title,
		Content:      dto.Content,
		AuthorID:     caller.ID,
		DepartmentID: departmentID,
		IsPublic:     dto.IsPublic,
		Status:       string(state.Status),
		ReviewedByID: state.ReviewedByID,
		ReviewedAt:   state.ReviewedAt,
		Tags:         postDatamodel.TagList(dto.Tags),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create post", "error", err, "caller_id", caller.ID)
		return nil, internal.NewInternalError("failed to create post", err)
	}

	if state.Status == approval.StatusPending {
		s.publish(events.NewContentSubmittedEvent(events.ContentKindPost, model.ID, model.Title, model.AuthorID))
	}

	s.logger.Info("post created",
		"post_id", model.ID,
		"caller_id", caller.ID,
		"status", model.Status)

	return FromDataModel(model), nil
}

// GetByID retrieves a post, enforcing the view rules. deptAccess is the
// optional department opt-in from the request.
func (s *Service) GetByID(caller approval.Caller, id int64, deptAccess *int64) (*Post, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	p := FromDataModel(model)
	if err := approval.CanView(caller, p.Facts(), deptAccess); err != nil {
		s.logger.Warn("post view denied", "post_id", id, "caller_id", caller.ID)
		return nil, err
	}

	return p, nil
}

// List returns the posts visible to the caller under the supplied filters,
// newest-touched first, with pagination metadata computed against the same
// predicate.
func (s *Service) List(caller approval.Caller, filters approval.ListFilters) ([]*Post, approval.Pagination, error) {
	pred := approval.VisibilityPredicate(caller, filters, searchFields)
	page := filters.Page.Normalized()

	models, total, err := s.repo.List(pred, page)
	if err != nil {
		s.logger.Error("failed to list posts", "error", err, "caller_id", caller.ID)
		return nil, approval.Pagination{}, internal.NewInternalError("failed to list posts", err)
	}

	return FromDataModelSlice(models), approval.NewPagination(total, page), nil
}

// Update applies a partial edit. Only the author's department head chain
// (own department) or an admin may edit.
func (s *Service) Update(caller approval.Caller, id int64, dto UpdatePostDTO) (*Post, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	p := FromDataModel(model)
	if err := approval.CanModify(caller, p.Facts()); err != nil {
		s.logger.Warn("post update denied", "post_id", id, "caller_id", caller.ID)
		return nil, err
	}

	if dto.Title != nil {
		model.Title = *dto.Title
	}
	if dto.Content != nil {
		model.Content = *dto.Content
	}
	if dto.IsPublic != nil {
		model.IsPublic = *dto.IsPublic
	}
	if dto.Tags != nil {
		model.Tags = postDatamodel.TagList(*dto.Tags)
	}
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(model); err != nil {
		s.logger.Error("failed to update post", "error", err, "post_id", id)
		return nil, internal.NewInternalError("failed to update post", err)
	}

	return FromDataModel(model), nil
}

// Delete removes a post permanently. No tombstone is kept.
func (s *Service) Delete(caller approval.Caller, id int64) error {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	p := FromDataModel(model)
	if err := approval.CanModify(caller, p.Facts()); err != nil {
		s.logger.Warn("post delete denied", "post_id", id, "caller_id", caller.ID)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete post", "error", err, "post_id", id)
		return internal.NewInternalError("failed to delete post", err)
	}

	s.logger.Info("post deleted", "post_id", id, "caller_id", caller.ID)
	return nil
}

// Review applies an admin decision. Legal from any state: a later reviewer
// can overturn an earlier decision, and repeating a decision refreshes the
// attribution timestamp.
func (s *Service) Review(caller approval.Caller, id int64, approved bool) (*Post, error) {
	if err := approval.CanReview(caller); err != nil {
		s.logger.Warn("post review denied", "post_id", id, "caller_id", caller.ID, "role", caller.Role)
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	state := approval.DecidedState(caller, approved, now)

	if err := s.repo.UpdateReview(id, string(state.Status), caller.ID, now); err != nil {
		s.logger.Error("failed to update post review", "error", err, "post_id", id)
		return nil, internal.NewInternalError("failed to update post status", err)
	}

	model.Status = string(state.Status)
	model.ReviewedByID = state.ReviewedByID
	model.ReviewedAt = state.ReviewedAt
	model.UpdatedAt = now

	s.publish(events.NewContentReviewedEvent(events.ContentKindPost, model.ID, model.Title, model.AuthorID, model.Status, caller.ID))

	s.logger.Info("post reviewed",
		"post_id", id,
		"reviewer_id", caller.ID,
		"status", model.Status)

	return FromDataModel(model), nil
}

// Resubmit pushes a post back to PENDING for re-review. The previous
// reviewer attribution is kept as history until the next decision
// overwrites it.
func (s *Service) Resubmit(caller approval.Caller, id int64) (*Post, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	p := FromDataModel(model)
	if err := approval.CanResubmit(caller, p.Facts()); err != nil {
		s.logger.Warn("post resubmit denied", "post_id", id, "caller_id", caller.ID)
		return nil, err
	}

	if err := s.repo.UpdateStatus(id, string(approval.StatusPending)); err != nil {
		s.logger.Error("failed to resubmit post", "error", err, "post_id", id)
		return nil, internal.NewInternalError("failed to resubmit post", err)
	}

	model.Status = string(approval.StatusPending)
	model.UpdatedAt = time.Now()

	s.publish(events.NewContentSubmittedEvent(events.ContentKindPost, model.ID, model.Title, model.AuthorID))

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
