package review

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	reviewDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/review"
	"github.com/frahmantamala/portal-management/internal/document"
	"github.com/frahmantamala/portal-management/internal/post"
)

type RepositoryAPI interface {
	Create(c *reviewDatamodel.Comment) error
	ListForPost(postID int64) ([]*reviewDatamodel.Comment, error)
	ListForDocument(documentID int64) ([]*reviewDatamodel.Comment, error)
}

// PostGetter and DocumentGetter resolve the comment target and enforce its
// visibility for the caller. The content services satisfy them directly.
type PostGetter interface {
	GetByID(caller approval.Caller, id int64, deptAccess *int64) (*post.Post, error)
}

type DocumentGetter interface {
	GetByID(caller approval.Caller, id int64, deptAccess *int64) (*document.Document, error)
}

type Service struct {
	repo      RepositoryAPI
	posts     PostGetter
	documents DocumentGetter
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, posts PostGetter, documents DocumentGetter, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		posts:     posts,
		documents: documents,
		logger:    logger,
	}
}

// AddPostComment stores a comment on a post the caller is allowed to see.
func (s *Service) AddPostComment(caller approval.Caller, postID int64, dto CreateCommentDTO) (*Comment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.posts.GetByID(caller, postID, nil); err != nil {
		return nil, err
	}

	model := &reviewDatamodel.Comment{
		PostID:    &postID,
		UserID:    caller.ID,
		Content:   dto.Content,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create post comment", "error", err, "post_id", postID)
		return nil, internal.NewInternalError("failed to create comment", err)
	}

	s.logger.Info("comment added", "post_id", postID, "user_id", caller.ID)
	return FromDataModel(model), nil
}

func (s *Service) AddDocumentComment(caller approval.Caller, documentID int64, dto CreateCommentDTO) (*Comment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.documents.GetByID(caller, documentID, nil); err != nil {
		return nil, err
	}

	model := &reviewDatamodel.Comment{
		DocumentID: &documentID,
		UserID:     caller.ID,
		Content:    dto.Content,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create document comment", "error", err, "document_id", documentID)
		return nil, internal.NewInternalError("failed to create comment", err)
	}

	s.logger.Info("comment added", "document_id", documentID, "user_id", caller.ID)
	return FromDataModel(model), nil
}

func (s *Service) ListPostComments(caller approval.Caller, postID int64) ([]*Comment, error) {
	if _, err := s.posts.GetByID(caller, postID, nil); err != nil {
		return nil, err
	}

	models, err := s.repo.ListForPost(postID)
	if err != nil {
		s.logger.Error("failed to list post comments", "error", err, "post_id", postID)
		return nil, internal.NewInternalError("failed to list comments", err)
	}

	return FromDataModelSlice(models), nil
}

func (s *Service) ListDocumentComments(caller approval.Caller, documentID int64) ([]*Comment, error) {
	if _, err := s.documents.GetByID(caller, documentID, nil); err != nil {
		return nil, err
	}

	models, err := s.repo.ListForDocument(documentID)
	if err != nil {
		s.logger.Error("failed to list document comments", "error", err, "document_id", documentID)
		return nil, internal.NewInternalError("failed to list comments", err)
	}

	return FromDataModelSlice(models), nil
}
