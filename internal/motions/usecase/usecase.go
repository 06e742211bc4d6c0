package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/artifacts"
	"github.com/motionmix/montage-backend/internal/avatars"
	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/media"
	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/motions"
	"github.com/motionmix/montage-backend/internal/motions/external"
	"github.com/motionmix/montage-backend/internal/videos"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
	"github.com/motionmix/montage-backend/pkg/logger"
	"github.com/motionmix/montage-backend/pkg/utils"
)

const defaultRehostTimeout = 5 * time.Minute

type motionUC struct {
	cfg        *config.Config
	motionRepo motions.Repository
	avatarRepo avatars.Repository
	videoRepo  videos.Repository
	storeRepo  artifacts.Repository
	genClient  motions.GenerationClient
	logger     logger.Logger
	rehostWG   sync.WaitGroup
}

func NewMotionUseCase(
	cfg *config.Config,
	motionRepo motions.Repository,
	avatarRepo avatars.Repository,
	videoRepo videos.Repository,
	storeRepo artifacts.Repository,
	genClient motions.GenerationClient,
	log logger.Logger,
) motions.UseCase {
	return &motionUC{
		cfg:        cfg,
		motionRepo: motionRepo,
		avatarRepo: avatarRepo,
		videoRepo:  videoRepo,
		storeRepo:  storeRepo,
		genClient:  genClient,
		logger:     log,
	}
}

// CreateMotion submits a generation run for an (avatar, reference) pair. A
// prior success for the same pair is served from the table instead of paying
// for another run. The external submission happens before any row exists, so
// a rejected submission leaves nothing behind; once the service accepts, the
// row is stored as processing with the external id the callback will carry.
func (u *motionUC) CreateMotion(ctx context.Context, input *models.MotionCreateInput) (*models.MotionJob, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		return nil, httpErrors.NewBadRequestError(err.Error())
	}

	cached, err := u.motionRepo.FindSuccessByPair(ctx, input.AvatarID, input.ReferenceID)
	if err != nil {
		u.logger.Errorf("CreateMotion - FindSuccessByPair: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	if cached != nil {
		return cached, nil
	}

	avatar, err := u.avatarRepo.GetByID(ctx, input.AvatarID)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return nil, httpErrors.NewPreconditionError("avatar not found", nil)
		}
		u.logger.Errorf("CreateMotion - avatar GetByID: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}

	reference, err := u.videoRepo.GetByID(ctx, input.ReferenceID)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return nil, httpErrors.NewPreconditionError("reference video not found", nil)
		}
		u.logger.Errorf("CreateMotion - video GetByID: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	if reference.Status != models.VideoStatusDownloaded {
		return nil, httpErrors.NewPreconditionError(
			fmt.Sprintf("reference video not ready: status is %s", reference.Status), nil)
	}

	avatarURL, err := u.storeRepo.ResolveURL(ctx, u.cfg.S3.AvatarBucket, avatar.StorageKey)
	if err != nil {
		u.logger.Errorf("CreateMotion - resolve avatar url: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	referenceURL, err := u.storeRepo.ResolveURL(ctx, u.cfg.S3.VideoBucket, reference.StorageKey)
	if err != nil {
		u.logger.Errorf("CreateMotion - resolve reference url: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}

	externalJobID, err := u.genClient.Submit(ctx, avatarURL, referenceURL)
	if err != nil {
		u.logger.Errorf("CreateMotion - Submit: %v", err)
		return nil, httpErrors.NewInternalServerError("motion generation service rejected the job")
	}

	created, err := u.motionRepo.Create(ctx, &models.MotionJob{
		AvatarID:      input.AvatarID,
		ReferenceID:   input.ReferenceID,
		ExternalJobID: externalJobID,
	})
	if err != nil {
		u.logger.Errorf("CreateMotion - Create: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return created, nil
}

func (u *motionUC) GetMotion(ctx context.Context, motionID uuid.UUID) (*models.MotionJob, error) {
	motion, err := u.motionRepo.GetByID(ctx, motionID)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return nil, httpErrors.NewNotFoundError("motion job not found")
		}
		u.logger.Errorf("GetMotion - GetByID: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return motion, nil
}

func (u *motionUC) ListMotions(ctx context.Context, pq *utils.Pagination) (*models.MotionJobList, error) {
	list, err := u.motionRepo.List(ctx, pq)
	if err != nil {
		u.logger.Errorf("ListMotions - List: %v", err)
		return nil, httpErrors.NewInternalServerError(err.Error())
	}
	return list, nil
}

func (u *motionUC) DeleteMotion(ctx context.Context, motionID uuid.UUID) error {
	motion, err := u.motionRepo.GetByID(ctx, motionID)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return httpErrors.NewNotFoundError("motion job not found")
		}
		u.logger.Errorf("DeleteMotion - GetByID: %v", err)
		return httpErrors.NewInternalServerError(err.Error())
	}
	if err := u.motionRepo.Delete(ctx, motionID); err != nil {
		u.logger.Errorf("DeleteMotion - Delete: %v", err)
		return httpErrors.NewInternalServerError(err.Error())
	}
	for _, key := range []string{motion.ResultVideoKey, motion.ResultThumbnailKey} {
		if key == "" {
			continue
		}
		if err := u.storeRepo.RemoveObject(ctx, u.cfg.S3.MotionBucket, key); err != nil {
			u.logger.Warnf("DeleteMotion - RemoveObject %s: %v", key, err)
		}
	}
	return nil
}

// HandleCallback reconciles one notification from the generation service. The
// external id is the only correlation key; outcomes are acknowledgement
// tokens, not HTTP errors, because the remote service retries on anything but
// a clean 200. The only hard error is a notification with no task id at all.
// A success is acknowledged before its result transfer finishes, so the 200
// never races the server's write deadline.
func (u *motionUC) HandleCallback(ctx context.Context, note *external.Notification) (string, error) {
	if note.Data.TaskID == "" {
		return "", httpErrors.NewBadRequestError("callback carries no taskId")
	}
	if note.Code != 200 {
		u.logger.Warnf("HandleCallback - non-200 notification code %d for task %s", note.Code, note.Data.TaskID)
		return motions.CallbackIgnored, nil
	}

	motion, err := u.motionRepo.GetByExternalJobID(ctx, note.Data.TaskID)
	if err != nil {
		u.logger.Errorf("HandleCallback - GetByExternalJobID: %v", err)
		return "", httpErrors.NewInternalServerError(err.Error())
	}
	if motion == nil {
		u.logger.Warnf("HandleCallback - unknown task id %s", note.Data.TaskID)
		return motions.CallbackUnknown, nil
	}
	if motion.Status.IsTerminal() {
		return motions.CallbackAlreadyProcessed, nil
	}

	if note.Data.State != external.StateSuccess {
		failMsg := note.Data.FailMsg
		if failMsg == "" {
			failMsg = "generation failed"
		}
		return u.finishFailed(ctx, motion.MotionID, failMsg)
	}

	resultURL, err := external.ParseResultURL(note.Data.ResultJSON)
	if err != nil {
		u.logger.Warnf("HandleCallback - task %s: %v", note.Data.TaskID, err)
		return u.finishFailed(ctx, motion.MotionID, "success notification carried no result url")
	}

	// The transfer can outlast any sane HTTP write window, so acknowledge
	// now and re-host off the request path. Redelivery while the transfer
	// is in flight converges through the conditional terminal write.
	bgCtx := context.WithoutCancel(ctx)
	u.rehostWG.Add(1)
	go func() {
		defer u.rehostWG.Done()
		u.completeRehost(bgCtx, motion.MotionID, resultURL)
	}()
	return motions.CallbackOK, nil
}

// completeRehost pulls the result into local custody and commits the terminal
// status. Runs detached from the callback request; outcomes land in the row
// and the log, never in an HTTP response.
func (u *motionUC) completeRehost(ctx context.Context, motionID uuid.UUID, resultURL string) {
	videoKey, thumbKey, err := u.rehostResult(ctx, motionID, resultURL)
	if err != nil {
		u.logger.Errorf("completeRehost - rehost %s: %v", motionID, err)
		applied, failErr := u.motionRepo.CompleteFailed(ctx, motionID, fmt.Sprintf("re-hosting result failed: %v", err))
		if failErr != nil {
			u.logger.Errorf("completeRehost - CompleteFailed %s: %v", motionID, failErr)
		} else if !applied {
			u.logger.Infof("completeRehost - %s already terminal", motionID)
		}
		return
	}

	applied, err := u.motionRepo.CompleteSuccess(ctx, motionID, videoKey, thumbKey)
	if err != nil {
		u.logger.Errorf("completeRehost - CompleteSuccess %s: %v", motionID, err)
		return
	}
	if !applied {
		// Lost the race against another delivery; drop our copies.
		u.storeRepo.RemoveObject(ctx, u.cfg.S3.MotionBucket, videoKey)
		if thumbKey != "" {
			u.storeRepo.RemoveObject(ctx, u.cfg.S3.MotionBucket, thumbKey)
		}
	}
}

func (u *motionUC) finishFailed(ctx context.Context, motionID uuid.UUID, failMsg string) (string, error) {
	applied, err := u.motionRepo.CompleteFailed(ctx, motionID, failMsg)
	if err != nil {
		u.logger.Errorf("HandleCallback - CompleteFailed: %v", err)
		return "", httpErrors.NewInternalServerError(err.Error())
	}
	if !applied {
		return motions.CallbackAlreadyProcessed, nil
	}
	return motions.CallbackOK, nil
}

// scratchRoot keeps rehost scratch out of the process CWD when no dir is
// configured; the API process has no worker defaults to lean on.
func (u *motionUC) scratchRoot() string {
	if u.cfg.Worker.ScratchDir != "" {
		return u.cfg.Worker.ScratchDir
	}
	return filepath.Join(os.TempDir(), "montage-rehost")
}

// rehostResult pulls the finished video from the external URL into local
// custody before the link expires. The fetch is bounded by its own deadline;
// the thumbnail is best effort and a missing one never fails the job.
func (u *motionUC) rehostResult(ctx context.Context, motionID uuid.UUID, resultURL string) (string, string, error) {
	timeout := defaultRehostTimeout
	if u.cfg.Motion.RehostTimeoutSec > 0 {
		timeout = time.Duration(u.cfg.Motion.RehostTimeoutSec) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, _, err := u.genClient.FetchResult(ctx, resultURL)
	if err != nil {
		return "", "", errors.Wrap(err, "fetch result")
	}
	defer body.Close()

	scratch := filepath.Join(u.scratchRoot(), "motion_"+motionID.String())
	defer os.RemoveAll(scratch)

	localPath := filepath.Join(scratch, "result.mp4")
	size, err := media.SaveStream(body, localPath)
	if err != nil {
		return "", "", errors.Wrap(err, "save result")
	}

	videoKey := fmt.Sprintf("motion_%s.mp4", motionID.String())
	videoFile, err := os.Open(localPath)
	if err != nil {
		return "", "", errors.Wrap(err, "open result")
	}
	defer videoFile.Close()
	if _, err = u.storeRepo.PutObject(ctx, models.UploadInput{
		File:     videoFile,
		Key:      videoKey,
		MimeType: "video/mp4",
		Size:     size,
		Bucket:   u.cfg.S3.MotionBucket,
	}); err != nil {
		return "", "", errors.Wrap(err, "store result")
	}

	thumbKey := ""
	thumbPath := filepath.Join(scratch, "thumb.jpg")
	if err := media.ExtractThumbnail(ctx, localPath, thumbPath); err != nil {
		u.logger.Warnf("rehostResult - thumbnail for %s: %v", motionID, err)
	} else if thumbFile, err := os.Open(thumbPath); err == nil {
		defer thumbFile.Close()
		if info, statErr := thumbFile.Stat(); statErr == nil {
			key := fmt.Sprintf("motion_%s_thumb.jpg", motionID.String())
			if _, putErr := u.storeRepo.PutObject(ctx, models.UploadInput{
				File:     thumbFile,
				Key:      key,
				MimeType: "image/jpeg",
				Size:     info.Size(),
				Bucket:   u.cfg.S3.MotionBucket,
			}); putErr != nil {
				u.logger.Warnf("rehostResult - store thumbnail for %s: %v", motionID, putErr)
			} else {
				thumbKey = key
			}
		}
	}
	return videoKey, thumbKey, nil
}
