package models

import (
	"time"

	"github.com/google/uuid"
)

// Avatar is an uploaded still image used as the identity input for motion
// generation.
type Avatar struct {
	AvatarID   uuid.UUID `json:"avatar_id" db:"avatar_id" validate:"omitempty"`
	StorageKey string    `json:"storage_key" db:"storage_key" validate:"required,lte=255"`
	SourceType string    `json:"source_type" db:"source_type" validate:"omitempty,lte=50"`
	CreatedAt  time.Time `json:"created_at" db:"created_at" validate:"omitempty"`
}
