package entities

import (
	"time"

	"github.com/google/uuid"
)

// Video pricing types
const (
	VideoTypeFree = "Free"
	VideoTypePaid = "Paid"
)

// Video visibility
const (
	VisibilityPublic = "public"
	VisibilityHidden = "hidden"
)

// HiddenReasonDeleted marks a soft-deleted video that must behave as
// missing everywhere.
const HiddenReasonDeleted = "video_deleted"

// Video is a long-form video document. The wallet core only reads it,
// except for the gifts counter incremented inside a gift transfer.
type Video struct {
	ID           uuid.UUID  `json:"id"`
	CreatedBy    uuid.UUID  `json:"createdBy"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Type         string     `json:"type"`
	Price        int64      `json:"price"`
	IsMonetized  bool       `json:"isMonetized"`
	Visibility   string     `json:"visibility"`
	HiddenReason string     `json:"hiddenReason,omitempty"`
	SeriesID     *uuid.UUID `json:"seriesId,omitempty"`
	Gifts        int64      `json:"gifts"`
	Views        int64      `json:"views"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsDeleted reports whether the video was soft-deleted by its owner
func (v *Video) IsDeleted() bool {
	return v.Visibility == VisibilityHidden && v.HiddenReason == HiddenReasonDeleted
}

// VideoSummary is the compact shape embedded in access decisions
type VideoSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatorID   uuid.UUID `json:"creatorId"`
	Type        string    `json:"type"`
	Price       int64     `json:"price,omitempty"`
}
