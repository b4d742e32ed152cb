package postgres

import (
	"time"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	postDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/post"
	"github.com/frahmantamala/portal-management/internal/database"
	"github.com/frahmantamala/portal-management/internal/post"
	"gorm.io/gorm"
)

// PostRepository implements post.RepositoryAPI using GORM.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) post.RepositoryAPI {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(p *postDatamodel.Post) error {
	return r.db.Create(p).Error
}

func (r *PostRepository) GetByID(id int64) (*postDatamodel.Post, error) {
	var p postDatamodel.Post
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List fetches one page ordered by updated_at descending and counts the
// total against the same predicate before pagination.
func (r *PostRepository) List(pred approval.Predicate, page approval.Page) ([]*postDatamodel.Post, int64, error) {
	var total int64
	if err := r.db.Model(&postDatamodel.Post{}).
		Scopes(database.PredicateScope(pred)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*postDatamodel.Post
	err := r.db.
		Scopes(database.PredicateScope(pred)).
		Order("updated_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *PostRepository) Update(p *postDatamodel.Post) error {
	p.UpdatedAt = time.Now()
	return r.db.Save(p).Error
}

// UpdateReview writes a review decision: status, reviewer attribution and
// the touched timestamp in one update.
func (r *PostRepository) UpdateReview(id int64, status string, reviewerID int64, reviewedAt time.Time) error {
	return r.db.Model(&postDatamodel.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         status,
			"reviewed_by_id": reviewerID,
			"reviewed_at":    reviewedAt,
			"updated_at":     time.Now(),
		}).Error
}

// UpdateStatus changes only the status, leaving the previous reviewer
// attribution in place (used by resubmission).
func (r *PostRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&postDatamodel.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *PostRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&postDatamodel.Post{}).Error
}
