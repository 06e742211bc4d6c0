package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/artifacts"
	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/jobqueue"
	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/montages"
	"github.com/motionmix/montage-backend/internal/motions"
	"github.com/motionmix/montage-backend/internal/tracks"
	"github.com/motionmix/montage-backend/internal/videos"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
	"github.com/motionmix/montage-backend/pkg/logger"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type montageUC struct {
	cfg         *config.Config
	montageRepo montages.Repository
	videoRepo   videos.Repository
	motionRepo  motions.Repository
	trackRepo   tracks.Repository
	storeRepo   artifacts.Repository
	queueRepo   jobqueue.Repository
	logger      logger.Logger
}

func NewMontageUseCase(
	cfg *config.Config,
	montageRepo montages.Repository,
	videoRepo videos.Repository,
	motionRepo motions.Repository,
	trackRepo tracks.Repository,
	storeRepo artifacts.Repository,
	queueRepo jobqueue.Repository,
	log logger.Logger,
) montages.UseCase {
	return &montageUC{
		cfg:         cfg,
		montageRepo: montageRepo,
		videoRepo:   videoRepo,
		motionRepo:  motionRepo,
		trackRepo:   trackRepo,
		storeRepo:   storeRepo,
		queueRepo:   queueRepo,
		logger:      log,
	}
}

// CreateMontage registers a compositing job. Both referenced records must be
// in a ready state at creation time; the worker re-verifies before running
// because either can be deleted while the task sits in the queue.
func (u *montageUC) CreateMontage(ctx context.Context, input *models.MontageCreateInput) (*models.MontageJob, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		return nil, httpErrors.NewBadRequestError(err.Error())
	}
	source, err := input.ToSourceRef()
	if err != nil {
		return nil, httpErrors.NewBadRequestError(err.Error())
	}

	if err := u.checkSourceReady(ctx, source); err != nil {
		return nil, err
	}

	track, err := u.trackRepo.GetByID(ctx, input.TrackID)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return nil, httpErrors.NewPreconditionError("track not found", nil)
		}
		u.logger.Errorf("CreateMontage - track GetByID: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	if track.Status != models.TrackStatusActive {
		return nil, httpErrors.NewPreconditionError(
			fmt.Sprintf("track not ready: status is %s", track.Status), nil)
	}

	created, err := u.montageRepo.Create(ctx, &models.MontageJob{
		Source:  source,
		TrackID: input.TrackID,
	})
	if err != nil {
		u.logger.Errorf("CreateMontage - Create: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}

	task := &models.Task{
		Kind:       models.TaskComposeMontage,
		RecordID:   created.MontageID,
		EnqueuedAt: time.Now(),
	}
	if err := u.queueRepo.EnqueueTask(ctx, u.cfg.Redis.TaskQueueKey, task); err != nil {
		u.logger.Errorf("CreateMontage - EnqueueTask: %v", err)
		if markErr := u.montageRepo.MarkFailed(ctx, created.MontageID, "failed to queue compositing task"); markErr != nil {
			u.logger.Errorf("CreateMontage - MarkFailed after enqueue error: %v", markErr)
		}
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return created, nil
}

func (u *montageUC) checkSourceReady(ctx context.Context, source models.SourceRef) error {
	switch source.Kind {
	case models.SourceKindVideo:
		video, err := u.videoRepo.GetByID(ctx, source.ID)
		if err != nil {
			if errors.Is(errors.Cause(err), sql.ErrNoRows) {
				return httpErrors.NewPreconditionError("source video not found", nil)
			}
			u.logger.Errorf("CreateMontage - video GetByID: %v", err)
			return httpErrors.NewInternalServerError(err.Error())
		}
		if video.Status != models.VideoStatusDownloaded {
			return httpErrors.NewPreconditionError(
				fmt.Sprintf("source video not ready: status is %s", video.Status), nil)
		}
	case models.SourceKindMotion:
		motion, err := u.motionRepo.GetByID(ctx, source.ID)
		if err != nil {
			if errors.Is(errors.Cause(err), sql.ErrNoRows) {
				return httpErrors.NewPreconditionError("source motion job not found", nil)
			}
			u.logger.Errorf("CreateMontage - motion GetByID: %v", err)
			return httpErrors.NewInternalServerError(err.Error())
		}
		if motion.Status != models.JobStatusSuccess {
			return httpErrors.NewPreconditionError(
				fmt.Sprintf("source motion job not ready: status is %s", motion.Status), nil)
		}
	default:
		return httpErrors.NewBadRequestError("unknown source kind")
	}
	return nil
}

func (u *montageUC) GetMontage(ctx context.Context, montageID uuid.UUID) (*models.MontageJob, error) {
	montage, err := u.montageRepo.GetByID(ctx, montageID)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return nil, httpErrors.NewNotFoundError("montage job not found")
		}
		u.logger.Errorf("GetMontage - GetByID: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return montage, nil
}

func (u *montageUC) ListMontages(ctx context.Context, pq *utils.Pagination) (*models.MontageJobList, error) {
	list, err := u.montageRepo.List(ctx, pq)
	if err != nil {
		u.logger.Errorf("ListMontages - List: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return list, nil
}

func (u *montageUC) DeleteMontage(ctx context.Context, montageID uuid.UUID) error {
	montage, err := u.montageRepo.GetByID(ctx, montageID)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return httpErrors.NewNotFoundError("montage job not found")
		}
		u.logger.Errorf("DeleteMontage - GetByID: %v", err)
		return httpErrors.NewInternalServerError(err.Error())
	}
	if err := u.montageRepo.Delete(ctx, montageID); err != nil {
		u.logger.Errorf("DeleteMontage - Delete: %v", err)
		return httpErrors.NewInternalServerError(err.Error())
	}
	if montage.ResultKey != "" {
		if err := u.storeRepo.RemoveObject(ctx, u.cfg.S3.MontageBucket, montage.ResultKey); err != nil {
			u.logger.Warnf("DeleteMontage - RemoveObject %s: %v", montage.ResultKey, err)
		}
	}
	return nil
}
