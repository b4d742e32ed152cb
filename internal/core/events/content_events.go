package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeContentReviewed  = "content.reviewed"
	EventTypeContentSubmitted = "content.submitted"
)

const (
	ContentKindPost     = "post"
	ContentKindDocument = "document"
)

// ContentReviewedEvent fires after an admin approves or rejects a post or
// document. Notification fan-out subscribes to it.
type ContentReviewedEvent struct {
	BaseEvent
	ContentKind string `json:"content_kind"`
	ContentID   int64  `json:"content_id"`
	Title       string `json:"title"`
	AuthorID    int64  `json:"author_id"`
	Status      string `json:"status"`
	ReviewerID  int64  `json:"reviewer_id"`
}

func NewContentReviewedEvent(kind string, contentID int64, title string, authorID int64, status string, reviewerID int64) *ContentReviewedEvent {
	return &ContentReviewedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeContentReviewed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"content_kind": kind,
				"content_id":   contentID,
				"title":        title,
				"author_id":    authorID,
				"status":       status,
				"reviewer_id":  reviewerID,
			},
		},
		ContentKind: kind,
		ContentID:   contentID,
		Title:       title,
		AuthorID:    authorID,
		Status:      status,
		ReviewerID:  reviewerID,
	}
}

// ContentSubmittedEvent fires when a non-admin creates or resubmits
// content that now waits for review.
type ContentSubmittedEvent struct {
	BaseEvent
	ContentKind string `json:"content_kind"`
	ContentID   int64  `json:"content_id"`
	Title       string `json:"title"`
	AuthorID    int64  `json:"author_id"`
}

func NewContentSubmittedEvent(kind string, contentID int64, title string, authorID int64) *ContentSubmittedEvent {
	return &ContentSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeContentSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"content_kind": kind,
				"content_id":   contentID,
				"title":        title,
				"author_id":    authorID,
			},
		},
		ContentKind: kind,
		ContentID:   contentID,
		Title:       title,
		AuthorID:    authorID,
	}
}
