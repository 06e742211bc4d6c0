package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/artifacts"
	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/jobqueue"
	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/tracks"
	trackRepository "github.com/motionmix/montage-backend/internal/tracks/repository"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
	"github.com/motionmix/montage-backend/pkg/logger"
	"github.com/motionmix/montage-backend/pkg/utils"
)

var allowedMimeExt = map[string]string{
	"audio/mpeg": "mp3",
	"audio/mp3":  "mp3",
	"audio/wav":  "wav",
}

type trackUC struct {
	cfg       *config.Config
	trackRepo tracks.Repository
	storeRepo artifacts.Repository
	queueRepo jobqueue.Repository
	logger    logger.Logger
}

func NewTrackUseCase(
	cfg *config.Config,
	trackRepo tracks.Repository,
	storeRepo artifacts.Repository,
	queueRepo jobqueue.Repository,
	log logger.Logger,
) tracks.UseCase {
	return &trackUC{
		cfg:       cfg,
		trackRepo: trackRepo,
		storeRepo: storeRepo,
		queueRepo: queueRepo,
		logger:    log,
	}
}

// UploadTrack inserts the row before touching the store so a name conflict
// never commits a blob; if the blob upload fails afterwards the row is
// removed again, so a rejected or failed upload leaves nothing tracked.
func (u *trackUC) UploadTrack(ctx context.Context, input *models.TrackUploadInput, file io.Reader) (*models.AudioTrack, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		return nil, httpErrors.NewBadRequestError(err.Error())
	}
	ext, ok := allowedMimeExt[input.MimeType]
	if !ok {
		return nil, httpErrors.NewBadRequestError("invalid file type, only MP3/WAV allowed")
	}

	track := &models.AudioTrack{
		Name:      input.Name,
		Artist:    input.Artist,
		MimeType:  input.MimeType,
		SizeBytes: input.Size,
	}
	track.StorageKey = fmt.Sprintf("audio_%s.%s", uuid.New().String(), ext)

	created, err := u.trackRepo.Create(ctx, track)
	if err != nil {
		if errors.Is(err, trackRepository.ErrNameTaken) {
			return nil, httpErrors.NewConflictError("track name already exists")
		}
		u.logger.Errorf("UploadTrack - Create: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}

	_, err = u.storeRepo.PutObject(ctx, models.UploadInput{
		File:     file,
		Key:      created.StorageKey,
		MimeType: created.MimeType,
		Size:     created.SizeBytes,
		Bucket:   u.cfg.S3.AudioBucket,
	})
	if err != nil {
		u.logger.Errorf("UploadTrack - PutObject: %v", err)
		if delErr := u.trackRepo.HardDelete(ctx, created.TrackID); delErr != nil {
			u.logger.Errorf("UploadTrack - HardDelete after failed upload: %v", delErr)
		}
		return nil, httpErrors.NewInternalServerError("storage error")
	}

	task := &models.Task{
		Kind:       models.TaskProbeTrack,
		RecordID:   created.TrackID,
		EnqueuedAt: time.Now(),
	}
	if err := u.queueRepo.EnqueueTask(ctx, u.cfg.Redis.TaskQueueKey, task); err != nil {
		u.logger.Errorf("UploadTrack - EnqueueTask: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return created, nil
}

func (u *trackUC) GetTrack(ctx context.Context, trackID uuid.UUID) (*models.AudioTrack, error) {
	track, err := u.trackRepo.GetByID(ctx, trackID)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return nil, httpErrors.NewNotFoundError("track not found")
		}
		u.logger.Errorf("GetTrack - GetByID: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return track, nil
}

func (u *trackUC) ListTracks(ctx context.Context, search string, pq *utils.Pagination) (*models.AudioTrackList, error) {
	list, err := u.trackRepo.List(ctx, search, pq)
	if err != nil {
		u.logger.Errorf("ListTracks - List: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return list, nil
}

// DeleteTrack soft-deletes by flipping the track to inactive.
func (u *trackUC) DeleteTrack(ctx context.Context, trackID uuid.UUID) error {
	if err := u.trackRepo.MarkInactive(ctx, trackID); err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return httpErrors.NewNotFoundError("track not found")
		}
		u.logger.Errorf("DeleteTrack - MarkInactive: %v", err)
		return httpErrors.NewInternalServerError(err.Error())
	}
	return nil
}
