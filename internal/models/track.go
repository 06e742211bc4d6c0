package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TrackStatusProcessing JobStatus = "processing"
	TrackStatusActive     JobStatus = "active"
	TrackStatusInactive   JobStatus = "inactive"
)

// AudioTrack is an uploaded audio file. Name is a unique human key; the
// ingestion worker fills DurationSeconds and flips the status to active once
// the file decodes. Inactive doubles as the soft-delete state.
type AudioTrack struct {
	TrackID         uuid.UUID `json:"track_id" db:"track_id" validate:"omitempty"`
	Name            string    `json:"name" db:"name" validate:"required,lte=255"`
	Artist          string    `json:"artist" db:"artist" validate:"omitempty,lte=255"`
	DurationSeconds int64     `json:"duration_seconds" db:"duration_seconds" validate:"omitempty"`
	StorageKey      string    `json:"storage_key" db:"storage_key" validate:"omitempty,lte=255"`
	MimeType        string    `json:"mime_type" db:"mime_type" validate:"required,lte=50"`
	SizeBytes       int64     `json:"size_bytes" db:"size_bytes" validate:"required"`
	Status          JobStatus `json:"status" db:"status" validate:"omitempty"`
	CreatedAt       time.Time `json:"created_at" db:"created_at" validate:"omitempty"`
}

type TrackUploadInput struct {
	Name     string `json:"name" validate:"required,lte=255"`
	Artist   string `json:"artist" validate:"omitempty,lte=255"`
	MimeType string `json:"mime_type" validate:"required"`
	Size     int64  `json:"size" validate:"required,gt=0"`
}

type AudioTrackList struct {
	Tracks     []*AudioTrack `json:"tracks"`
	TotalCount int           `json:"total_count"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	HasMore    bool          `json:"has_more"`
}
