package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	MontageStatusCompleted JobStatus = "completed"
)

// SourceKind selects which artifact collection a montage reads its video from.
type SourceKind string

const (
	SourceKindVideo  SourceKind = "video"
	SourceKindMotion SourceKind = "motion"
)

// SourceRef is a tagged union over the two possible montage video sources:
// a directly acquired SourceVideo or a generated MotionJob result. Construct
// it through VideoSource or MotionSource so that "neither" and "both" are
// unrepresentable; a zero SourceRef fails Validate.
type SourceRef struct {
	Kind SourceKind `json:"kind" db:"source_kind"`
	ID   uuid.UUID  `json:"id" db:"source_id"`
}

func VideoSource(id uuid.UUID) SourceRef {
	return SourceRef{Kind: SourceKindVideo, ID: id}
}

func MotionSource(id uuid.UUID) SourceRef {
	return SourceRef{Kind: SourceKindMotion, ID: id}
}

func (r SourceRef) Validate() error {
	if r.ID == uuid.Nil {
		return fmt.Errorf("source ref: id is required")
	}
	switch r.Kind {
	case SourceKindVideo, SourceKindMotion:
		return nil
	}
	return fmt.Errorf("source ref: unknown kind %q", r.Kind)
}

// MontageJob is one compositing run: re-score the referenced video artifact
// with the referenced audio track.
type MontageJob struct {
	MontageID uuid.UUID `json:"montage_id" db:"montage_id" validate:"omitempty"`
	Source    SourceRef `json:"source"`
	TrackID   uuid.UUID `json:"track_id" db:"track_id" validate:"required"`
	ResultKey string    `json:"result_key" db:"result_key" validate:"omitempty,lte=255"`
	Status    JobStatus `json:"status" db:"status" validate:"omitempty"`
	ErrorLog  string    `json:"error_log" db:"error_log" validate:"omitempty"`
	CreatedAt time.Time `json:"created_at" db:"created_at" validate:"omitempty"`
}

// MontageCreateInput carries the two nullable ids the HTTP layer accepts;
// ToSourceRef collapses them into the tagged union and rejects the
// neither-set and both-set shapes.
type MontageCreateInput struct {
	VideoID  *uuid.UUID `json:"video_id"`
	MotionID *uuid.UUID `json:"motion_id"`
	TrackID  uuid.UUID  `json:"track_id" validate:"required"`
}

func (in *MontageCreateInput) ToSourceRef() (SourceRef, error) {
	switch {
	case in.VideoID != nil && in.MotionID != nil:
		return SourceRef{}, fmt.Errorf("exactly one of video_id and motion_id must be set, got both")
	case in.VideoID != nil:
		return VideoSource(*in.VideoID), nil
	case in.MotionID != nil:
		return MotionSource(*in.MotionID), nil
	}
	return SourceRef{}, fmt.Errorf("exactly one of video_id and motion_id must be set, got neither")
}

type MontageJobList struct {
	Montages   []*MontageJob `json:"montages"`
	TotalCount int           `json:"total_count"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	HasMore    bool          `json:"has_more"`
}
