package usecase

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/jobqueue"
	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/videos"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
	"github.com/motionmix/montage-backend/pkg/logger"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type videoUC struct {
	cfg       *config.Config
	videoRepo videos.Repository
	queueRepo jobqueue.Repository
	logger    logger.Logger
}

func NewVideoUseCase(
	cfg *config.Config,
	videoRepo videos.Repository,
	queueRepo jobqueue.Repository,
	log logger.Logger,
) videos.UseCase {
	return &videoUC{
		cfg:       cfg,
		videoRepo: videoRepo,
		queueRepo: queueRepo,
		logger:    log,
	}
}

// CreateDownloads is idempotent per URL: a URL with any live record (pending,
// processing, downloaded or failed) returns that record instead of enqueueing
// a second acquisition. Only never-seen and deleted URLs start a new job.
func (u *videoUC) CreateDownloads(ctx context.Context, input *models.VideoDownloadInput) ([]*models.SourceVideo, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		return nil, httpErrors.NewBadRequestError(err.Error())
	}

	results := make([]*models.SourceVideo, 0, len(input.OriginURLs))
	for _, originURL := range input.OriginURLs {
		existing, err := u.videoRepo.GetByOriginURL(ctx, originURL)
		if err != nil {
			u.logger.Errorf("CreateDownloads - GetByOriginURL: %v", err)
			return nil, httpErrors.NewInternalServerError(err.Error())
		}
		if existing != nil {
			results = append(results, existing)
			continue
		}

		video, err := u.videoRepo.Create(ctx, &models.SourceVideo{OriginURL: originURL})
		if err != nil {
			u.logger.Errorf("CreateDownloads - Create: %v", err)
			return nil, httpErrors.NewInternalServerError(err.Error())
		}

		task := &models.Task{
			Kind:       models.TaskAcquireVideo,
			RecordID:   video.VideoID,
			EnqueuedAt: time.Now(),
		}
		if err := u.queueRepo.EnqueueTask(ctx, u.cfg.Redis.TaskQueueKey, task); err != nil {
			u.logger.Errorf("CreateDownloads - EnqueueTask: %v", err)
			return nil, httpErrors.NewInternalServerError(err.Error())
		}
		results = append(results, video)
	}
	return results, nil
}

func (u *videoUC) GetVideo(ctx context.Context, videoID uuid.UUID) (*models.SourceVideo, error) {
	video, err := u.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return nil, httpErrors.NewNotFoundError("video not found")
		}
		u.logger.Errorf("GetVideo - GetByID: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return video, nil
}

func (u *videoUC) ListVideos(ctx context.Context, pq *utils.Pagination) (*models.SourceVideoList, error) {
	list, err := u.videoRepo.List(ctx, pq)
	if err != nil {
		u.logger.Errorf("ListVideos - List: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return list, nil
}

// DeleteVideo is a soft delete: the row flips to deleted and the blob is left
// in place for compensating cleanup.
func (u *videoUC) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	if err := u.videoRepo.SoftDelete(ctx, videoID); err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return httpErrors.NewNotFoundError("video not found")
		}
		u.logger.Errorf("DeleteVideo - SoftDelete: %v", err)
		return httpErrors.NewInternalServerError(err.Error())
	}
	return nil
}
