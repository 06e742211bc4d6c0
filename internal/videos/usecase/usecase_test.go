package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

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

type fakeVideoRepo struct {
	existing map[string]*models.SourceVideo
	created  []*models.SourceVideo
}

func (f *fakeVideoRepo) Create(ctx context.Context, video *models.SourceVideo) (*models.SourceVideo, error) {
	out := *video
	out.VideoID = uuid.New()
	out.Status = models.VideoStatusPending
	f.created = append(f.created, &out)
	return &out, nil
}
func (f *fakeVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SourceVideo, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeVideoRepo) GetByOriginURL(ctx context.Context, originURL string) (*models.SourceVideo, error) {
	return f.existing[originURL], nil
}
func (f *fakeVideoRepo) List(ctx context.Context, pq *utils.Pagination) (*models.SourceVideoList, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeVideoRepo) ClaimPending(ctx context.Context, id uuid.UUID) (*models.SourceVideo, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeVideoRepo) MarkDownloaded(ctx context.Context, id uuid.UUID, k, t string) error {
	return fmt.Errorf("not implemented")
}
func (f *fakeVideoRepo) MarkFailed(ctx context.Context, id uuid.UUID, e string) error {
	return fmt.Errorf("not implemented")
}
func (f *fakeVideoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return fmt.Errorf("not implemented")
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

func TestCreateDownloadsDedupsByURL(t *testing.T) {
	seenURL := "https://videos.example.com/a"
	newURL := "https://videos.example.com/b"
	existing := &models.SourceVideo{
		VideoID:   uuid.New(),
		OriginURL: seenURL,
		Status:    models.VideoStatusDownloaded,
	}

	repo := &fakeVideoRepo{existing: map[string]*models.SourceVideo{seenURL: existing}}
	queue := &fakeQueue{}
	uc := NewVideoUseCase(&config.Config{}, repo, queue, nopLogger{})

	results, err := uc.CreateDownloads(context.Background(), &models.VideoDownloadInput{
		OriginURLs: []string{seenURL, newURL},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected a record per requested url, got %d", len(results))
	}
	if results[0].VideoID != existing.VideoID {
		t.Errorf("seen url must return the existing record, got %+v", results[0])
	}
	if len(repo.created) != 1 || repo.created[0].OriginURL != newURL {
		t.Errorf("exactly the unseen url should be registered, created %+v", repo.created)
	}
	if len(queue.tasks) != 1 || queue.tasks[0].Kind != models.TaskAcquireVideo {
		t.Errorf("exactly one acquisition task should be queued, got %+v", queue.tasks)
	}
	if queue.tasks[0].RecordID != repo.created[0].VideoID {
		t.Errorf("queued task must reference the new record")
	}
}

func TestCreateDownloadsRejectsEmptyInput(t *testing.T) {
	uc := NewVideoUseCase(&config.Config{}, &fakeVideoRepo{}, &fakeQueue{}, nopLogger{})
	if _, err := uc.CreateDownloads(context.Background(), &models.VideoDownloadInput{}); err == nil {
		t.Fatal("expected validation error for empty url list")
	}
}
