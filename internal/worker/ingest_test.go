package worker

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type nopLogger struct{}

func (nopLogger) InitLogger()                          {}
func (nopLogger) Debug(args ...interface{})            {}
func (nopLogger) Debugf(t string, args ...interface{}) {}
func (nopLogger) Info(args ...interface{})             {}
func (nopLogger) Infof(t string, args ...interface{})  {}
func (nopLogger) Warn(args ...interface{})             {}
func (nopLogger) Warnf(t string, args ...interface{})  {}
func (nopLogger) Error(args ...interface{})            {}
func (nopLogger) Errorf(t string, args ...interface{}) {}
func (nopLogger) Fatal(args ...interface{})            {}
func (nopLogger) Fatalf(t string, args ...interface{}) {}

type fakeTrackRepo struct {
	claimFn  func(uuid.UUID) (*models.AudioTrack, error)
	active   []uuid.UUID
	inactive []uuid.UUID
}

func (f *fakeTrackRepo) Create(ctx context.Context, track *models.AudioTrack) (*models.AudioTrack, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeTrackRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AudioTrack, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeTrackRepo) ClaimProcessing(ctx context.Context, id uuid.UUID) (*models.AudioTrack, error) {
	return f.claimFn(id)
}
func (f *fakeTrackRepo) List(ctx context.Context, search string, pq *utils.Pagination) (*models.AudioTrackList, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeTrackRepo) MarkActive(ctx context.Context, id uuid.UUID, d int64) error {
	f.active = append(f.active, id)
	return nil
}
func (f *fakeTrackRepo) MarkInactive(ctx context.Context, id uuid.UUID) error {
	f.inactive = append(f.inactive, id)
	return nil
}
func (f *fakeTrackRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return fmt.Errorf("not implemented")
}

type fakeStore struct {
	gets []string
}

func (f *fakeStore) PutObject(ctx context.Context, in models.UploadInput) (*s3.PutObjectOutput, error) {
	return &s3.PutObjectOutput{}, nil
}
func (f *fakeStore) GetObject(ctx context.Context, bucket, key string) (*s3.GetObjectOutput, error) {
	f.gets = append(f.gets, bucket+"/"+key)
	return nil, fmt.Errorf("no blob here")
}
func (f *fakeStore) RemoveObject(ctx context.Context, bucket, key string) error { return nil }
func (f *fakeStore) ResolveURL(ctx context.Context, bucket, key string) (string, error) {
	return "", fmt.Errorf("not implemented")
}

// A probe task whose row was settled by an earlier pass must stop at the
// claim: no blob fetch, no further status writes.
func TestProbeTrackSkipsSettledRow(t *testing.T) {
	trackID := uuid.New()
	repo := &fakeTrackRepo{claimFn: func(uuid.UUID) (*models.AudioTrack, error) { return nil, nil }}
	store := &fakeStore{}
	p := NewPool(&config.Config{}, nil, repo, nil, nil, store, nil, nopLogger{})

	p.handleProbeTrack(context.Background(), &models.Task{Kind: models.TaskProbeTrack, RecordID: trackID})

	if len(store.gets) != 0 {
		t.Errorf("settled track must not be fetched: %v", store.gets)
	}
	if len(repo.active) != 0 || len(repo.inactive) != 0 {
		t.Errorf("settled track must not be transitioned again: active=%v inactive=%v", repo.active, repo.inactive)
	}
}

// A claimed track whose blob cannot be fetched flips to inactive instead of
// staying stuck in processing.
func TestProbeTrackBlobFailureMarksInactive(t *testing.T) {
	trackID := uuid.New()
	repo := &fakeTrackRepo{claimFn: func(id uuid.UUID) (*models.AudioTrack, error) {
		return &models.AudioTrack{TrackID: id, StorageKey: "track.mp3", Status: models.TrackStatusProcessing}, nil
	}}
	store := &fakeStore{}
	p := NewPool(&config.Config{}, nil, repo, nil, nil, store, nil, nopLogger{})

	p.handleProbeTrack(context.Background(), &models.Task{Kind: models.TaskProbeTrack, RecordID: trackID})

	if len(repo.inactive) != 1 || repo.inactive[0] != trackID {
		t.Errorf("unfetchable track not marked inactive: %v", repo.inactive)
	}
	if len(repo.active) != 0 {
		t.Errorf("track must not go active without a probe: %v", repo.active)
	}
}
