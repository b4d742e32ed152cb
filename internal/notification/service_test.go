package notification_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	notificationDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/notification"
	"github.com/frahmantamala/portal-management/internal/core/events"
	"github.com/frahmantamala/portal-management/internal/notification"
)

func TestNotificationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Service Suite")
}

type mockNotificationRepository struct {
	notifications map[int64]*notificationDatamodel.Notification
	nextID        int64
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{
		notifications: make(map[int64]*notificationDatamodel.Notification),
		nextID:        1,
	}
}

func (m *mockNotificationRepository) Create(n *notificationDatamodel.Notification) error {
	n.ID = m.nextID
	m.nextID++
	copied := *n
	m.notifications[n.ID] = &copied
	return nil
}

func (m *mockNotificationRepository) GetByID(id int64) (*notificationDatamodel.Notification, error) {
	n, ok := m.notifications[id]
	if !ok {
		return nil, internal.ErrNotificationNotFound
	}
	copied := *n
	return &copied, nil
}

func (m *mockNotificationRepository) ListForUser(userID int64) ([]*notificationDatamodel.Notification, error) {
	var out []*notificationDatamodel.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockNotificationRepository) MarkRead(id int64, readAt time.Time) error {
	if n, ok := m.notifications[id]; ok {
		n.ReadAt = &readAt
	}
	return nil
}

func (m *mockNotificationRepository) MarkAllRead(userID int64, readAt time.Time) error {
	for _, n := range m.notifications {
		if n.UserID == userID && n.ReadAt == nil {
			n.ReadAt = &readAt
		}
	}
	return nil
}

var _ = Describe("Notification Service", func() {
	var (
		repo    *mockNotificationRepository
		service *notification.Service

		recipient approval.Caller
		stranger  approval.Caller
	)

	BeforeEach(func() {
		repo = newMockNotificationRepository()
		service = notification.NewService(repo, slog.Default())

		recipient = approval.Caller{ID: 2, Role: approval.RoleDepartmentHead}
		stranger = approval.Caller{ID: 3, Role: approval.RoleEmployee}
	})

	Describe("Notify and ListForUser", func() {
		It("stores a notification the recipient can list", func() {
			Expect(service.Notify(recipient.ID, "Your post was approved", "\"Hello\" has been approved.")).To(Succeed())

			list, err := service.ListForUser(recipient)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Title).To(Equal("Your post was approved"))
			Expect(list[0].IsRead()).To(BeFalse())

			other, err := service.ListForUser(stranger)
			Expect(err).NotTo(HaveOccurred())
			Expect(other).To(BeEmpty())
		})
	})

	Describe("MarkRead", func() {
		It("marks the recipient's notification read, idempotently", func() {
			Expect(service.Notify(recipient.ID, "t", "m")).To(Succeed())

			marked, err := service.MarkRead(recipient, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(marked.IsRead()).To(BeTrue())

			firstReadAt := *marked.ReadAt
			again, err := service.MarkRead(recipient, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(*again.ReadAt).To(Equal(firstReadAt))
		})

		It("refuses other users", func() {
			Expect(service.Notify(recipient.ID, "t", "m")).To(Succeed())

			_, err := service.MarkRead(stranger, 1)
			Expect(err).To(MatchError(internal.ErrForbiddenAction))
		})

		It("surfaces missing notifications", func() {
			_, err := service.MarkRead(recipient, 42)
			Expect(err).To(MatchError(internal.ErrNotificationNotFound))
		})
	})

	Describe("MarkAllRead", func() {
		It("marks only the caller's unread notifications", func() {
			Expect(service.Notify(recipient.ID, "a", "m")).To(Succeed())
			Expect(service.Notify(recipient.ID, "b", "m")).To(Succeed())
			Expect(service.Notify(stranger.ID, "c", "m")).To(Succeed())

			Expect(service.MarkAllRead(recipient)).To(Succeed())

			mine, err := service.ListForUser(recipient)
			Expect(err).NotTo(HaveOccurred())
			for _, n := range mine {
				Expect(n.IsRead()).To(BeTrue())
			}

			theirs, err := service.ListForUser(stranger)
			Expect(err).NotTo(HaveOccurred())
			Expect(theirs[0].IsRead()).To(BeFalse())
		})
	})

	Describe("review event handling", func() {
		var handler *notification.EventHandler

		BeforeEach(func() {
			handler = notification.NewEventHandler(service, slog.Default())
		})

		It("notifies the author on approval", func() {
			event := events.NewContentReviewedEvent(events.ContentKindPost, 5, "Hello", recipient.ID, "APPROVED", 1)

			Expect(handler.HandleContentReviewed(context.Background(), event)).To(Succeed())

			list, err := service.ListForUser(recipient)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Title).To(ContainSubstring("approved"))
		})

		It("tells the author to resubmit on rejection", func() {
			event := events.NewContentReviewedEvent(events.ContentKindDocument, 5, "Handbook", recipient.ID, "REJECTED", 1)

			Expect(handler.HandleContentReviewed(context.Background(), event)).To(Succeed())

			list, err := service.ListForUser(recipient)
			Expect(err).NotTo(HaveOccurred())
			Expect(list[0].Message).To(ContainSubstring("resubmit"))
		})

		It("skips self-reviewed content", func() {
			event := events.NewContentReviewedEvent(events.ContentKindPost, 5, "Hello", 1, "APPROVED", 1)

			Expect(handler.HandleContentReviewed(context.Background(), event)).To(Succeed())

			admin := approval.Caller{ID: 1, Role: approval.RoleAdmin}
			list, err := service.ListForUser(admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})

		It("delivers through the event bus", func() {
			bus := events.NewEventBus(slog.Default())
			handler.RegisterEventHandlers(bus)

			event := events.NewContentReviewedEvent(events.ContentKindPost, 5, "Hello", recipient.ID, "APPROVED", 1)
			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

			list, err := service.ListForUser(recipient)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
		})
	})
})
