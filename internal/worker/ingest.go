package worker

import (
	"context"
	"math"
	"os"
	"path/filepath"

	"github.com/motionmix/montage-backend/internal/media"
	"github.com/motionmix/montage-backend/internal/models"
)

// handleProbeTrack measures the duration of a freshly uploaded track and
// activates it. A track that cannot be probed is not usable for compositing
// and is flipped to inactive instead of staying stuck in processing.
func (p *Pool) handleProbeTrack(ctx context.Context, task *models.Task) {
	track, err := p.trackRepo.ClaimProcessing(ctx, task.RecordID)
	if err != nil {
		p.logger.Errorf("handleProbeTrack - ClaimProcessing %s: %v", task.RecordID, err)
		return
	}
	if track == nil {
		p.logger.Infof("handleProbeTrack - %s already settled, skipping", task.RecordID)
		return
	}

	fail := func(reason string, cause error) {
		p.logger.Errorf("handleProbeTrack - %s %s: %v", track.TrackID, reason, cause)
		if err := p.trackRepo.MarkInactive(context.WithoutCancel(ctx), track.TrackID); err != nil {
			p.logger.Errorf("handleProbeTrack - MarkInactive %s: %v", track.TrackID, err)
		}
	}

	obj, err := p.storeRepo.GetObject(ctx, p.cfg.S3.AudioBucket, track.StorageKey)
	if err != nil {
		fail("fetch blob", err)
		return
	}
	defer obj.Body.Close()

	dir := filepath.Join(p.scratchDir(), "track_"+track.TrackID.String())
	defer os.RemoveAll(dir)
	localPath := filepath.Join(dir, filepath.Base(track.StorageKey))
	if _, err := media.SaveStream(obj.Body, localPath); err != nil {
		fail("save blob", err)
		return
	}

	duration, err := media.ProbeDuration(ctx, localPath)
	if err != nil {
		fail("probe", err)
		return
	}

	if err := p.trackRepo.MarkActive(ctx, track.TrackID, int64(math.Round(duration))); err != nil {
		p.logger.Errorf("handleProbeTrack - MarkActive %s: %v", track.TrackID, err)
		return
	}
	p.logger.Infof("handleProbeTrack - %s active, %.1fs", track.TrackID, duration)
}
