package entities

import (
	"time"

	"github.com/google/uuid"
)

// Series groups videos under one purchase. A series-level access grant
// unlocks every episode.
type Series struct {
	ID            uuid.UUID `json:"id"`
	CreatedBy     uuid.UUID `json:"createdBy"`
	Title         string    `json:"title"`
	Type          string    `json:"type"` // Free | Paid, same domain as Video.Type
	Price         int64     `json:"price"`
	TotalEpisodes int       `json:"totalEpisodes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
