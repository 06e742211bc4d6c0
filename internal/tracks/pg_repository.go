package tracks

import (
	"context"

	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/utils"
)

// Repository owns AudioTrack rows. Name uniqueness is enforced by the insert;
// a conflict surfaces before any blob is committed for the rejected record.
type Repository interface {
	Create(ctx context.Context, track *models.AudioTrack) (*models.AudioTrack, error)
	GetByID(ctx context.Context, trackID uuid.UUID) (*models.AudioTrack, error)
	// ClaimProcessing returns the row only while it is still processing, in
	// a single conditional statement; nil means another pass settled it.
	ClaimProcessing(ctx context.Context, trackID uuid.UUID) (*models.AudioTrack, error)
	List(ctx context.Context, search string, pq *utils.Pagination) (*models.AudioTrackList, error)
	// MarkActive flips processing to active with the probed duration.
	MarkActive(ctx context.Context, trackID uuid.UUID, durationSeconds int64) error
	MarkInactive(ctx context.Context, trackID uuid.UUID) error
	// HardDelete removes the row entirely; used as compensating cleanup when
	// the blob upload fails after the insert committed.
	HardDelete(ctx context.Context, trackID uuid.UUID) error
}
