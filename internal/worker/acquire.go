package worker

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/motionmix/montage-backend/internal/media"
	"github.com/motionmix/montage-backend/internal/models"
)

// handleAcquireVideo pulls the remote source referenced by a pending
// SourceVideo row into the artifact store. The claim is the conditional
// pending-to-processing update; a second delivery of the same task finds
// nothing to claim and exits.
func (p *Pool) handleAcquireVideo(ctx context.Context, task *models.Task) {
	video, err := p.videoRepo.ClaimPending(ctx, task.RecordID)
	if err != nil {
		p.logger.Errorf("handleAcquireVideo - ClaimPending %s: %v", task.RecordID, err)
		return
	}
	if video == nil {
		p.logger.Infof("handleAcquireVideo - %s not claimable, skipping", task.RecordID)
		return
	}

	fail := func(msg string) {
		if err := p.videoRepo.MarkFailed(context.WithoutCancel(ctx), video.VideoID, msg); err != nil {
			p.logger.Errorf("handleAcquireVideo - MarkFailed %s: %v", video.VideoID, err)
		}
	}

	dir := filepath.Join(p.scratchDir(), "video_"+video.VideoID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fail(fmt.Sprintf("scratch dir: %v", err))
		return
	}
	defer os.RemoveAll(dir)

	localPath, err := media.FetchRemoteVideo(ctx, video.OriginURL, dir, video.VideoID.String())
	if err != nil {
		p.logger.Errorf("handleAcquireVideo - fetch %s: %v", video.OriginURL, err)
		fail(err.Error())
		return
	}

	ext := filepath.Ext(localPath)
	storageKey := fmt.Sprintf("video_%s%s", video.VideoID.String(), ext)
	if err := p.uploadFile(ctx, p.cfg.S3.VideoBucket, storageKey, localPath, videoMime(ext)); err != nil {
		p.logger.Errorf("handleAcquireVideo - upload %s: %v", storageKey, err)
		fail(fmt.Sprintf("storing video: %v", err))
		return
	}

	// Thumbnail is best effort; acquisition succeeds without one.
	thumbnailKey := ""
	thumbPath := filepath.Join(dir, "thumb.jpg")
	if err := media.ExtractThumbnail(ctx, localPath, thumbPath); err != nil {
		p.logger.Warnf("handleAcquireVideo - thumbnail %s: %v", video.VideoID, err)
	} else {
		key := fmt.Sprintf("video_%s_thumb.jpg", video.VideoID.String())
		if err := p.uploadFile(ctx, p.cfg.S3.VideoBucket, key, thumbPath, "image/jpeg"); err != nil {
			p.logger.Warnf("handleAcquireVideo - upload thumbnail %s: %v", key, err)
		} else {
			thumbnailKey = key
		}
	}

	if err := p.videoRepo.MarkDownloaded(ctx, video.VideoID, storageKey, thumbnailKey); err != nil {
		p.logger.Errorf("handleAcquireVideo - MarkDownloaded %s: %v", video.VideoID, err)
		return
	}
	p.logger.Infof("handleAcquireVideo - %s downloaded as %s", video.VideoID, storageKey)
}

func (p *Pool) uploadFile(ctx context.Context, bucket, key, path, mimeType string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	_, err = p.storeRepo.PutObject(ctx, models.UploadInput{
		File:     f,
		Key:      key,
		MimeType: mimeType,
		Size:     info.Size(),
		Bucket:   bucket,
	})
	return err
}

func videoMime(ext string) string {
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "video/mp4"
}
