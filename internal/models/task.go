package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskKind identifies which worker handler a queued task is dispatched to.
type TaskKind string

const (
	TaskAcquireVideo   TaskKind = "acquire_video"
	TaskProbeTrack     TaskKind = "probe_track"
	TaskComposeMontage TaskKind = "compose_montage"
)

// Task is the JSON envelope pushed onto the shared Redis queue. It carries
// only the record id; all job state lives in the database row.
type Task struct {
	Kind       TaskKind  `json:"kind"`
	RecordID   uuid.UUID `json:"record_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}
