package review

import "time"

// Comment is a review annotation attached to exactly one post or one
// document, never both. Comments are append-only.
type Comment struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	PostID     *int64    `json:"post_id,omitempty" gorm:"column:post_id"`
	DocumentID *int64    `json:"document_id,omitempty" gorm:"column:document_id"`
	UserID     int64     `json:"user_id" gorm:"column:user_id;not null"`
	Content    string    `json:"content" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Comment) TableName() string {
	return "review_comments"
}
