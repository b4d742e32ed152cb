package postgres

import (
	"time"

	"github.com/frahmantamala/portal-management/internal"
	notificationDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/notification"
	"github.com/frahmantamala/portal-management/internal/notification"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.RepositoryAPI {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *notificationDatamodel.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) GetByID(id int64) (*notificationDatamodel.Notification, error) {
	var n notificationDatamodel.Notification
	err := r.db.Where("id = ?", id).First(&n).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

// ListForUser returns unread notifications first, newest first within
// each group.
func (r *NotificationRepository) ListForUser(userID int64) ([]*notificationDatamodel.Notification, error) {
	var notifications []*notificationDatamodel.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("CASE WHEN read_at IS NULL THEN 0 ELSE 1 END, created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(id int64, readAt time.Time) error {
	return r.db.Model(&notificationDatamodel.Notification{}).
		Where("id = ?", id).
		Update("read_at", readAt).Error
}

func (r *NotificationRepository) MarkAllRead(userID int64, readAt time.Time) error {
	return r.db.Model(&notificationDatamodel.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", readAt).Error
}
