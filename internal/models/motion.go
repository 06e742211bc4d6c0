package models

import (
	"time"

	"github.com/google/uuid"
)

// MotionJob tracks one externally hosted motion generation run. The terminal
// transition is applied by the callback handler, not by the goroutine that
// created the job; ExternalJobID is the correlation key the callback uses to
// find the record and is persisted in the same transaction that creates it.
type MotionJob struct {
	MotionID           uuid.UUID `json:"motion_id" db:"motion_id" validate:"omitempty"`
	AvatarID           uuid.UUID `json:"avatar_id" db:"avatar_id" validate:"required"`
	ReferenceID        uuid.UUID `json:"reference_id" db:"reference_id" validate:"required"`
	ExternalJobID      string    `json:"external_job_id" db:"external_job_id" validate:"omitempty,lte=255"`
	ResultVideoKey     string    `json:"result_video_key" db:"result_video_key" validate:"omitempty,lte=255"`
	ResultThumbnailKey string    `json:"result_thumbnail_key" db:"result_thumbnail_key" validate:"omitempty,lte=255"`
	Status             JobStatus `json:"status" db:"status" validate:"omitempty"`
	ErrorLog           string    `json:"error_log" db:"error_log" validate:"omitempty"`
	CreatedAt          time.Time `json:"created_at" db:"created_at" validate:"omitempty"`
}

type MotionCreateInput struct {
	AvatarID    uuid.UUID `json:"avatar_id" validate:"required"`
	ReferenceID uuid.UUID `json:"reference_id" validate:"required"`
}

type MotionJobList struct {
	Motions    []*MotionJob `json:"motions"`
	TotalCount int          `json:"total_count"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	HasMore    bool         `json:"has_more"`
}
