package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/portal-management/internal/approval"
	"github.com/frahmantamala/portal-management/internal/core/events"
)

// EventHandler turns content lifecycle events into notifications for the
// content author.
type EventHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewEventHandler(service *Service, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EventHandler) RegisterEventHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeContentReviewed, h.HandleContentReviewed)
}

func (h *EventHandler) HandleContentReviewed(ctx context.Context, event events.Event) error {
	reviewed, ok := event.(*events.ContentReviewedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	var title, message string
	switch approval.Status(reviewed.Status) {
	case approval.StatusApproved:
		title = fmt.Sprintf("Your %s was approved", reviewed.ContentKind)
		message = fmt.Sprintf("%q has been approved and is now visible.", reviewed.Title)
	case approval.StatusRejected:
		title = fmt.Sprintf("Your %s was rejected", reviewed.ContentKind)
		message = fmt.Sprintf("%q was rejected. Review the feedback, update it and resubmit.", reviewed.Title)
	default:
		h.logger.Warn("unknown review status in event", "status", reviewed.Status, "event_id", event.EventID())
		return nil
	}

	// Self-approved admin content needs no notification.
	if reviewed.AuthorID == reviewed.ReviewerID {
		return nil
	}

	return h.service.Notify(reviewed.AuthorID, title, message)
}
