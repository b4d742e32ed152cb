package postgres

import (
	reviewDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/review"
	"github.com/frahmantamala/portal-management/internal/review"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) review.RepositoryAPI {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(c *reviewDatamodel.Comment) error {
	return r.db.Create(c).Error
}

func (r *CommentRepository) ListForPost(postID int64) ([]*reviewDatamodel.Comment, error) {
	var comments []*reviewDatamodel.Comment
	err := r.db.
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) ListForDocument(documentID int64) ([]*reviewDatamodel.Comment, error) {
	var comments []*reviewDatamodel.Comment
	err := r.db.
		Where("document_id = ?", documentID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
