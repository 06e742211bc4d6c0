package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VideoStatusPending    JobStatus = "pending"
	VideoStatusDownloaded JobStatus = "downloaded"
	VideoStatusFailed     JobStatus = "failed"
	VideoStatusDeleted    JobStatus = "deleted"
)

// SourceVideo is a remote video acquired into the artifact store. OriginURL is
// the natural dedup key among non-deleted rows; StorageKey is set exactly when
// the status is downloaded.
type SourceVideo struct {
	VideoID      uuid.UUID `json:"video_id" db:"video_id" validate:"omitempty"`
	OriginURL    string    `json:"origin_url" db:"origin_url" validate:"required,url"`
	StorageKey   string    `json:"storage_key" db:"storage_key" validate:"omitempty,lte=255"`
	ThumbnailKey string    `json:"thumbnail_key" db:"thumbnail_key" validate:"omitempty,lte=255"`
	Status       JobStatus `json:"status" db:"status" validate:"omitempty"`
	ErrorLog     string    `json:"error_log" db:"error_log" validate:"omitempty"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" validate:"omitempty"`
}

type VideoDownloadInput struct {
	OriginURLs []string `json:"origin_urls" validate:"required,min=1,dive,url"`
}

type SourceVideoList struct {
	Videos     []*SourceVideo `json:"videos"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	HasMore    bool           `json:"has_more"`
}
