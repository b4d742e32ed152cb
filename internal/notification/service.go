package notification

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	notificationDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/notification"
)

type RepositoryAPI interface {
	Create(n *notificationDatamodel.Notification) error
	GetByID(id int64) (*notificationDatamodel.Notification, error)
	ListForUser(userID int64) ([]*notificationDatamodel.Notification, error)
	MarkRead(id int64, readAt time.Time) error
	MarkAllRead(userID int64, readAt time.Time) error
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

// Notify writes a notification for one recipient.
func (s *Service) Notify(userID int64, title, message string) error {
	model := &notificationDatamodel.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create notification", "error", err, "user_id", userID)
		return internal.NewInternalError("failed to create notification", err)
	}

	return nil
}

func (s *Service) ListForUser(caller approval.Caller) ([]*Notification, error) {
	models, err := s.repo.ListForUser(caller.ID)
	if err != nil {
		s.logger.Error("failed to list notifications", "error", err, "user_id", caller.ID)
		return nil, internal.NewInternalError("failed to list notifications", err)
	}
	return FromDataModelSlice(models), nil
}

// MarkRead marks one notification read. Only the recipient may do so.
func (s *Service) MarkRead(caller approval.Caller, id int64) (*Notification, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if model.UserID != caller.ID {
		return nil, internal.ErrForbiddenAction
	}

	if model.ReadAt == nil {
		now := time.Now()
		if err := s.repo.MarkRead(id, now); err != nil {
			s.logger.Error("failed to mark notification read", "error", err, "notification_id", id)
			return nil, internal.NewInternalError("failed to mark notification read", err)
		}
		model.ReadAt = &now
	}

	return FromDataModel(model), nil
}

func (s *Service) MarkAllRead(caller approval.Caller) error {
	if err := s.repo.MarkAllRead(caller.ID, time.Now()); err != nil {
		s.logger.Error("failed to mark notifications read", "error", err, "user_id", caller.ID)
		return internal.NewInternalError("failed to mark notifications read", err)
	}
	return nil
}
