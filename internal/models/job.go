package models

// JobStatus is the lifecycle state shared by every asynchronous job record.
// Transitions are monotonic: once a record reaches a terminal status no further
// transition is applied by normal processing.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusSuccess    JobStatus = "success"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether no further transition is expected for the status.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusSuccess, JobStatusFailed,
		VideoStatusDownloaded, VideoStatusDeleted,
		MontageStatusCompleted:
		return true
	}
	return false
}

// MaxErrorLogLen bounds the error text persisted on a failed job so that an
// arbitrarily long underlying error cannot bloat the record.
const MaxErrorLogLen = 1024

// TruncateError trims an error message to MaxErrorLogLen.
func TruncateError(msg string) string {
	if len(msg) > MaxErrorLogLen {
		return msg[:MaxErrorLogLen]
	}
	return msg
}
