package postgres

import (
	"time"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	documentDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/document"
	"github.com/frahmantamala/portal-management/internal/database"
	"github.com/frahmantamala/portal-management/internal/document"
	"gorm.io/gorm"
)

// DocumentRepository implements document.RepositoryAPI using GORM.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) document.RepositoryAPI {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(d *documentDatamodel.Document) error {
	return r.db.Create(d).Error
}

func (r *DocumentRepository) GetByID(id int64) (*documentDatamodel.Document, error) {
	var d documentDatamodel.Document
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrDocumentNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List fetches one page ordered by updated_at descending and counts the
// total against the same predicate before pagination.
func (r *DocumentRepository) List(pred approval.Predicate, page approval.Page) ([]*documentDatamodel.Document, int64, error) {
	var total int64
	if err := r.db.Model(&documentDatamodel.Document{}).
		Scopes(database.PredicateScope(pred)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documents []*documentDatamodel.Document
	err := r.db.
		Scopes(database.PredicateScope(pred)).
		Order("updated_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&documents).Error
	if err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

func (r *DocumentRepository) Update(d *documentDatamodel.Document) error {
	d.UpdatedAt = time.Now()
	return r.db.Save(d).Error
}

func (r *DocumentRepository) UpdateReview(id int64, status string, reviewerID int64, reviewedAt time.Time) error {
	return r.db.Model(&documentDatamodel.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         status,
			"reviewed_by_id": reviewerID,
			"reviewed_at":    reviewedAt,
			"updated_at":     time.Now(),
		}).Error
}

func (r *DocumentRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&documentDatamodel.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *DocumentRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&documentDatamodel.Document{}).Error
}
