package entities

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a comment on a video. Only top-level monetized comments
// can receive gifts.
type Comment struct {
	ID              uuid.UUID  `json:"id"`
	VideoID         uuid.UUID  `json:"videoId"`
	UserID          uuid.UUID  `json:"userId"`
	Content         string     `json:"content"`
	IsMonetized     bool       `json:"isMonetized"`
	ParentCommentID *uuid.UUID `json:"parentCommentId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// IsReply reports whether this comment is a reply to another comment
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
