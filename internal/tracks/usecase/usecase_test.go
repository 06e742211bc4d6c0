package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/models"
	trackRepository "github.com/motionmix/montage-backend/internal/tracks/repository"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
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
	createErr   error
	hardDeleted []uuid.UUID
}

func (f *fakeTrackRepo) Create(ctx context.Context, track *models.AudioTrack) (*models.AudioTrack, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *track
	out.TrackID = uuid.New()
	out.Status = models.TrackStatusProcessing
	return &out, nil
}
func (f *fakeTrackRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AudioTrack, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeTrackRepo) ClaimProcessing(ctx context.Context, id uuid.UUID) (*models.AudioTrack, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeTrackRepo) List(ctx context.Context, search string, pq *utils.Pagination) (*models.AudioTrackList, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeTrackRepo) MarkActive(ctx context.Context, id uuid.UUID, d int64) error {
	return fmt.Errorf("not implemented")
}
func (f *fakeTrackRepo) MarkInactive(ctx context.Context, id uuid.UUID) error {
	return fmt.Errorf("not implemented")
}
func (f *fakeTrackRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	f.hardDeleted = append(f.hardDeleted, id)
	return nil
}

type fakeStore struct {
	putErr  error
	putKeys []string
}

func (f *fakeStore) PutObject(ctx context.Context, in models.UploadInput) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.putKeys = append(f.putKeys, in.Key)
	return &s3.PutObjectOutput{}, nil
}
func (f *fakeStore) GetObject(ctx context.Context, bucket, key string) (*s3.GetObjectOutput, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeStore) RemoveObject(ctx context.Context, bucket, key string) error { return nil }
func (f *fakeStore) ResolveURL(ctx context.Context, bucket, key string) (string, error) {
	return "", fmt.Errorf("not implemented")
}

type fakeQueue struct {
	tasks []*models.Task
}

func (f *fakeQueue) EnqueueTask(ctx context.Context, key string, task *models.Task) error {
	f.tasks = append(f.tasks, task)
	return nil
}
func (f *fakeQueue) DequeueTask(ctx context.Context, key string, timeout time.Duration) (*models.Task, error) {
	return nil, fmt.Errorf("not implemented")
}

func uploadInput() *models.TrackUploadInput {
	return &models.TrackUploadInput{
		Name:     "sunset drive",
		Artist:   "unknown",
		MimeType: "audio/mpeg",
		Size:     1 << 20,
	}
}

func TestUploadTrackQueuesProbe(t *testing.T) {
	repo := &fakeTrackRepo{}
	store := &fakeStore{}
	queue := &fakeQueue{}
	uc := NewTrackUseCase(&config.Config{}, repo, store, queue, nopLogger{})

	track, err := uc.UploadTrack(context.Background(), uploadInput(), strings.NewReader("mp3-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if track.Status != models.TrackStatusProcessing {
		t.Errorf("expected processing, got %s", track.Status)
	}
	if len(store.putKeys) != 1 || !strings.HasSuffix(store.putKeys[0], ".mp3") {
		t.Errorf("expected one mp3 blob, got %v", store.putKeys)
	}
	if len(queue.tasks) != 1 || queue.tasks[0].Kind != models.TaskProbeTrack {
		t.Errorf("expected one probe task, got %+v", queue.tasks)
	}
}

func TestUploadTrackNameConflictCommitsNoBlob(t *testing.T) {
	repo := &fakeTrackRepo{createErr: trackRepository.ErrNameTaken}
	store := &fakeStore{}
	uc := NewTrackUseCase(&config.Config{}, repo, store, &fakeQueue{}, nopLogger{})

	_, err := uc.UploadTrack(context.Background(), uploadInput(), strings.NewReader("mp3-bytes"))
	if !httpErrors.IsStatus(err, http.StatusConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(store.putKeys) != 0 {
		t.Errorf("conflict must not commit a blob, got %v", store.putKeys)
	}
}

func TestUploadTrackBlobFailureRemovesRow(t *testing.T) {
	repo := &fakeTrackRepo{}
	store := &fakeStore{putErr: fmt.Errorf("connection reset")}
	uc := NewTrackUseCase(&config.Config{}, repo, store, &fakeQueue{}, nopLogger{})

	_, err := uc.UploadTrack(context.Background(), uploadInput(), strings.NewReader("mp3-bytes"))
	if !httpErrors.IsStatus(err, http.StatusInternalServerError) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(repo.hardDeleted) != 1 {
		t.Error("failed upload must remove the inserted row")
	}
}

func TestUploadTrackRejectsUnsupportedMime(t *testing.T) {
	uc := NewTrackUseCase(&config.Config{}, &fakeTrackRepo{}, &fakeStore{}, &fakeQueue{}, nopLogger{})
	in := uploadInput()
	in.MimeType = "audio/flac"
	_, err := uc.UploadTrack(context.Background(), in, strings.NewReader("flac-bytes"))
	if !httpErrors.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}
