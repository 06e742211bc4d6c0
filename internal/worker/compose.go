package worker

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/motionmix/montage-backend/internal/media"
	"github.com/motionmix/montage-backend/internal/models"
)

// handleComposeMontage re-scores the source video with the chosen track. The
// readiness checks from creation time are repeated here: either record can be
// deleted or invalidated while the task waits in the queue, and a montage
// must never be built from a stale artifact.
func (p *Pool) handleComposeMontage(ctx context.Context, task *models.Task) {
	montage, err := p.montageRepo.ClaimPending(ctx, task.RecordID)
	if err != nil {
		p.logger.Errorf("handleComposeMontage - ClaimPending %s: %v", task.RecordID, err)
		return
	}
	if montage == nil {
		p.logger.Infof("handleComposeMontage - %s not claimable, skipping", task.RecordID)
		return
	}

	fail := func(msg string) {
		if err := p.montageRepo.MarkFailed(context.WithoutCancel(ctx), montage.MontageID, msg); err != nil {
			p.logger.Errorf("handleComposeMontage - MarkFailed %s: %v", montage.MontageID, err)
		}
	}

	sourceBucket, sourceKey, err := p.resolveSourceArtifact(ctx, montage.Source)
	if err != nil {
		p.logger.Errorf("handleComposeMontage - source %s: %v", montage.MontageID, err)
		fail(err.Error())
		return
	}

	track, err := p.trackRepo.GetByID(ctx, montage.TrackID)
	if err != nil {
		fail(fmt.Sprintf("track no longer available: %v", err))
		return
	}
	if track.Status != models.TrackStatusActive {
		fail(fmt.Sprintf("track not ready: status is %s", track.Status))
		return
	}

	dir := filepath.Join(p.scratchDir(), "montage_"+montage.MontageID.String())
	defer os.RemoveAll(dir)

	videoPath := filepath.Join(dir, "source"+filepath.Ext(sourceKey))
	if err := p.downloadBlob(ctx, sourceBucket, sourceKey, videoPath); err != nil {
		fail(fmt.Sprintf("fetching source video: %v", err))
		return
	}
	audioPath := filepath.Join(dir, "audio"+filepath.Ext(track.StorageKey))
	if err := p.downloadBlob(ctx, p.cfg.S3.AudioBucket, track.StorageKey, audioPath); err != nil {
		fail(fmt.Sprintf("fetching track: %v", err))
		return
	}

	outPath := filepath.Join(dir, "out.mp4")
	if err := media.ComposeMontage(ctx, videoPath, audioPath, outPath); err != nil {
		p.logger.Errorf("handleComposeMontage - compose %s: %v", montage.MontageID, err)
		fail(err.Error())
		return
	}

	resultKey := fmt.Sprintf("montage_%s.mp4", montage.MontageID.String())
	if err := p.uploadFile(ctx, p.cfg.S3.MontageBucket, resultKey, outPath, "video/mp4"); err != nil {
		fail(fmt.Sprintf("storing montage: %v", err))
		return
	}

	if err := p.montageRepo.MarkCompleted(ctx, montage.MontageID, resultKey); err != nil {
		p.logger.Errorf("handleComposeMontage - MarkCompleted %s: %v", montage.MontageID, err)
		return
	}
	p.logger.Infof("handleComposeMontage - %s completed as %s", montage.MontageID, resultKey)
}

// resolveSourceArtifact maps the source ref onto the bucket and key of a
// ready video artifact, or explains why there is none.
func (p *Pool) resolveSourceArtifact(ctx context.Context, source models.SourceRef) (string, string, error) {
	switch source.Kind {
	case models.SourceKindVideo:
		video, err := p.videoRepo.GetByID(ctx, source.ID)
		if err != nil {
			if errors.Is(errors.Cause(err), sql.ErrNoRows) {
				return "", "", fmt.Errorf("source video no longer exists")
			}
			return "", "", err
		}
		if video.Status != models.VideoStatusDownloaded {
			return "", "", fmt.Errorf("source video not ready: status is %s", video.Status)
		}
		return p.cfg.S3.VideoBucket, video.StorageKey, nil
	case models.SourceKindMotion:
		motion, err := p.motionRepo.GetByID(ctx, source.ID)
		if err != nil {
			if errors.Is(errors.Cause(err), sql.ErrNoRows) {
				return "", "", fmt.Errorf("source motion job no longer exists")
			}
			return "", "", err
		}
		if motion.Status != models.JobStatusSuccess || motion.ResultVideoKey == "" {
			return "", "", fmt.Errorf("source motion job not ready: status is %s", motion.Status)
		}
		return p.cfg.S3.MotionBucket, motion.ResultVideoKey, nil
	}
	return "", "", fmt.Errorf("unknown source kind %q", source.Kind)
}

func (p *Pool) downloadBlob(ctx context.Context, bucket, key, path string) error {
	obj, err := p.storeRepo.GetObject(ctx, bucket, key)
	if err != nil {
		return err
	}
	defer obj.Body.Close()
	_, err = media.SaveStream(obj.Body, path)
	return err
}
