package notification

import (
	"time"

	notificationDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/notification"
)

type Notification struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

func FromDataModel(n *notificationDatamodel.Notification) *Notification {
	return &Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func FromDataModelSlice(notifications []*notificationDatamodel.Notification) []*Notification {
	result := make([]*Notification, len(notifications))
	for i, n := range notifications {
		result[i] = FromDataModel(n)
	}
	return result
}
