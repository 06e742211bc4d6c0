package tracks

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type UseCase interface {
	// UploadTrack persists the record in processing state, commits the blob
	// and enqueues duration probing.
	UploadTrack(ctx context.Context, input *models.TrackUploadInput, file io.Reader) (*models.AudioTrack, error)
	GetTrack(ctx context.Context, trackID uuid.UUID) (*models.AudioTrack, error)
	ListTracks(ctx context.Context, search string, pq *utils.Pagination) (*models.AudioTrackList, error)
	DeleteTrack(ctx context.Context, trackID uuid.UUID) error
}
