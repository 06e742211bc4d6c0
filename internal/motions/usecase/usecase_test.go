package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/motions"
	"github.com/motionmix/montage-backend/internal/motions/external"
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

type fakeMotionRepo struct {
	createFn            func(*models.MotionJob) (*models.MotionJob, error)
	getByExternalFn     func(string) (*models.MotionJob, error)
	findSuccessByPairFn func(uuid.UUID, uuid.UUID) (*models.MotionJob, error)
	completeSuccessFn   func(uuid.UUID, string, string) (bool, error)
	completeFailedFn    func(uuid.UUID, string) (bool, error)
}

func (f *fakeMotionRepo) Create(ctx context.Context, m *models.MotionJob) (*models.MotionJob, error) {
	return f.createFn(m)
}
func (f *fakeMotionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MotionJob, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeMotionRepo) GetByExternalJobID(ctx context.Context, id string) (*models.MotionJob, error) {
	return f.getByExternalFn(id)
}
func (f *fakeMotionRepo) FindSuccessByPair(ctx context.Context, avatarID, referenceID uuid.UUID) (*models.MotionJob, error) {
	if f.findSuccessByPairFn == nil {
		return nil, nil
	}
	return f.findSuccessByPairFn(avatarID, referenceID)
}
func (f *fakeMotionRepo) List(ctx context.Context, pq *utils.Pagination) (*models.MotionJobList, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeMotionRepo) CompleteSuccess(ctx context.Context, id uuid.UUID, videoKey, thumbKey string) (bool, error) {
	return f.completeSuccessFn(id, videoKey, thumbKey)
}
func (f *fakeMotionRepo) CompleteFailed(ctx context.Context, id uuid.UUID, errLog string) (bool, error) {
	return f.completeFailedFn(id, errLog)
}
func (f *fakeMotionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return fmt.Errorf("not implemented")
}

type fakeAvatarRepo struct {
	getByIDFn func(uuid.UUID) (*models.Avatar, error)
}

func (f *fakeAvatarRepo) Create(ctx context.Context, a *models.Avatar) (*models.Avatar, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeAvatarRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Avatar, error) {
	return f.getByIDFn(id)
}
func (f *fakeAvatarRepo) List(ctx context.Context, pq *utils.Pagination) ([]*models.Avatar, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeAvatarRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return fmt.Errorf("not implemented")
}

type fakeVideoRepo struct {
	getByIDFn func(uuid.UUID) (*models.SourceVideo, error)
}

func (f *fakeVideoRepo) Create(ctx context.Context, v *models.SourceVideo) (*models.SourceVideo, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SourceVideo, error) {
	return f.getByIDFn(id)
}
func (f *fakeVideoRepo) GetByOriginURL(ctx context.Context, u string) (*models.SourceVideo, error) {
	return nil, fmt.Errorf("not implemented")
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

type fakeStore struct {
	putKeys    []string
	putErr     error
	removeKeys []string
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
func (f *fakeStore) RemoveObject(ctx context.Context, bucket, key string) error {
	f.removeKeys = append(f.removeKeys, key)
	return nil
}
func (f *fakeStore) ResolveURL(ctx context.Context, bucket, key string) (string, error) {
	return "https://store.local/" + bucket + "/" + key, nil
}

type fakeGenClient struct {
	submitFn func(avatarURL, referenceURL string) (string, error)
	fetchFn  func(resultURL string) (io.ReadCloser, int64, error)
}

func (f *fakeGenClient) Submit(ctx context.Context, avatarURL, referenceURL string) (string, error) {
	return f.submitFn(avatarURL, referenceURL)
}
func (f *fakeGenClient) FetchResult(ctx context.Context, resultURL string) (io.ReadCloser, int64, error) {
	return f.fetchFn(resultURL)
}

func newTestUC(t *testing.T, motionRepo *fakeMotionRepo, avatarRepo *fakeAvatarRepo, videoRepo *fakeVideoRepo, store *fakeStore, gen *fakeGenClient) motions.UseCase {
	t.Helper()
	cfg := &config.Config{}
	cfg.S3.AvatarBucket = "avatars"
	cfg.S3.VideoBucket = "videos"
	cfg.S3.MotionBucket = "motion-results"
	cfg.Worker.ScratchDir = t.TempDir()
	return NewMotionUseCase(cfg, motionRepo, avatarRepo, videoRepo, store, gen, nopLogger{})
}

// waitRehost blocks until every detached result transfer spawned by a
// callback has finished.
func waitRehost(t *testing.T, uc motions.UseCase) {
	t.Helper()
	uc.(*motionUC).rehostWG.Wait()
}

func downloadedVideo(id uuid.UUID) *models.SourceVideo {
	return &models.SourceVideo{VideoID: id, StorageKey: "video.mp4", Status: models.VideoStatusDownloaded}
}

func TestCreateMotionServedFromCache(t *testing.T) {
	avatarID, referenceID := uuid.New(), uuid.New()
	cached := &models.MotionJob{MotionID: uuid.New(), Status: models.JobStatusSuccess}

	submitted := false
	uc := newTestUC(t,
		&fakeMotionRepo{
			findSuccessByPairFn: func(a, r uuid.UUID) (*models.MotionJob, error) { return cached, nil },
		},
		&fakeAvatarRepo{getByIDFn: func(uuid.UUID) (*models.Avatar, error) {
			t.Fatal("avatar lookup should not happen on cache hit")
			return nil, nil
		}},
		&fakeVideoRepo{},
		&fakeStore{},
		&fakeGenClient{submitFn: func(a, r string) (string, error) {
			submitted = true
			return "", nil
		}},
	)

	got, err := uc.CreateMotion(context.Background(), &models.MotionCreateInput{AvatarID: avatarID, ReferenceID: referenceID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != cached {
		t.Errorf("expected cached job, got %+v", got)
	}
	if submitted {
		t.Error("cache hit must not resubmit to the generation service")
	}
}

func TestCreateMotionReferenceNotReady(t *testing.T) {
	avatarID, referenceID := uuid.New(), uuid.New()
	uc := newTestUC(t,
		&fakeMotionRepo{},
		&fakeAvatarRepo{getByIDFn: func(uuid.UUID) (*models.Avatar, error) {
			return &models.Avatar{AvatarID: avatarID, StorageKey: "avatar.png"}, nil
		}},
		&fakeVideoRepo{getByIDFn: func(uuid.UUID) (*models.SourceVideo, error) {
			return &models.SourceVideo{VideoID: referenceID, Status: models.VideoStatusPending}, nil
		}},
		&fakeStore{},
		&fakeGenClient{submitFn: func(a, r string) (string, error) {
			t.Fatal("submit must not run for an unready reference")
			return "", nil
		}},
	)

	_, err := uc.CreateMotion(context.Background(), &models.MotionCreateInput{AvatarID: avatarID, ReferenceID: referenceID})
	if !httpErrors.IsStatus(err, http.StatusUnprocessableEntity) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestCreateMotionSubmitFailureCreatesNothing(t *testing.T) {
	avatarID, referenceID := uuid.New(), uuid.New()
	uc := newTestUC(t,
		&fakeMotionRepo{
			createFn: func(*models.MotionJob) (*models.MotionJob, error) {
				t.Fatal("no record may exist after a rejected submission")
				return nil, nil
			},
		},
		&fakeAvatarRepo{getByIDFn: func(uuid.UUID) (*models.Avatar, error) {
			return &models.Avatar{AvatarID: avatarID, StorageKey: "avatar.png"}, nil
		}},
		&fakeVideoRepo{getByIDFn: func(uuid.UUID) (*models.SourceVideo, error) {
			return downloadedVideo(referenceID), nil
		}},
		&fakeStore{},
		&fakeGenClient{submitFn: func(a, r string) (string, error) {
			return "", fmt.Errorf("service unavailable")
		}},
	)

	_, err := uc.CreateMotion(context.Background(), &models.MotionCreateInput{AvatarID: avatarID, ReferenceID: referenceID})
	if !httpErrors.IsStatus(err, http.StatusInternalServerError) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestCreateMotionPersistsExternalJobID(t *testing.T) {
	avatarID, referenceID := uuid.New(), uuid.New()
	var created *models.MotionJob
	uc := newTestUC(t,
		&fakeMotionRepo{
			createFn: func(m *models.MotionJob) (*models.MotionJob, error) {
				created = m
				out := *m
				out.MotionID = uuid.New()
				out.Status = models.JobStatusProcessing
				return &out, nil
			},
		},
		&fakeAvatarRepo{getByIDFn: func(uuid.UUID) (*models.Avatar, error) {
			return &models.Avatar{AvatarID: avatarID, StorageKey: "avatar.png"}, nil
		}},
		&fakeVideoRepo{getByIDFn: func(uuid.UUID) (*models.SourceVideo, error) {
			return downloadedVideo(referenceID), nil
		}},
		&fakeStore{},
		&fakeGenClient{submitFn: func(a, r string) (string, error) { return "ext-42", nil }},
	)

	got, err := uc.CreateMotion(context.Background(), &models.MotionCreateInput{AvatarID: avatarID, ReferenceID: referenceID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.ExternalJobID != "ext-42" {
		t.Fatalf("external id not persisted with the record: %+v", created)
	}
	if got.Status != models.JobStatusProcessing {
		t.Errorf("expected processing, got %s", got.Status)
	}
}

func callbackNote(taskID, state, resultJSON, failMsg string) *external.Notification {
	return &external.Notification{
		Code: 200,
		Data: external.NotificationData{TaskID: taskID, State: state, ResultJSON: resultJSON, FailMsg: failMsg},
	}
}

func TestHandleCallbackMissingTaskID(t *testing.T) {
	uc := newTestUC(t, &fakeMotionRepo{}, &fakeAvatarRepo{}, &fakeVideoRepo{}, &fakeStore{}, &fakeGenClient{})
	_, err := uc.HandleCallback(context.Background(), callbackNote("", external.StateSuccess, "", ""))
	if !httpErrors.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestHandleCallbackNon200Ignored(t *testing.T) {
	uc := newTestUC(t, &fakeMotionRepo{}, &fakeAvatarRepo{}, &fakeVideoRepo{}, &fakeStore{}, &fakeGenClient{})
	note := callbackNote("ext-1", external.StateFail, "", "boom")
	note.Code = 500
	token, err := uc.HandleCallback(context.Background(), note)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != motions.CallbackIgnored {
		t.Errorf("got token %q", token)
	}
}

func TestHandleCallbackUnknownTaskID(t *testing.T) {
	uc := newTestUC(t,
		&fakeMotionRepo{getByExternalFn: func(string) (*models.MotionJob, error) { return nil, nil }},
		&fakeAvatarRepo{}, &fakeVideoRepo{}, &fakeStore{}, &fakeGenClient{})
	token, err := uc.HandleCallback(context.Background(), callbackNote("ext-404", external.StateSuccess, "", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != motions.CallbackUnknown {
		t.Errorf("got token %q", token)
	}
}

func TestHandleCallbackRedeliveryAfterTerminal(t *testing.T) {
	motionID := uuid.New()
	uc := newTestUC(t,
		&fakeMotionRepo{
			getByExternalFn: func(string) (*models.MotionJob, error) {
				return &models.MotionJob{MotionID: motionID, Status: models.JobStatusFailed}, nil
			},
			completeFailedFn: func(uuid.UUID, string) (bool, error) {
				t.Fatal("terminal row must not be written again")
				return false, nil
			},
		},
		&fakeAvatarRepo{}, &fakeVideoRepo{}, &fakeStore{}, &fakeGenClient{})
	token, err := uc.HandleCallback(context.Background(), callbackNote("ext-1", external.StateFail, "", "boom"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != motions.CallbackAlreadyProcessed {
		t.Errorf("got token %q", token)
	}
}

func TestHandleCallbackFailureCommitsErrorLog(t *testing.T) {
	motionID := uuid.New()
	var gotLog string
	uc := newTestUC(t,
		&fakeMotionRepo{
			getByExternalFn: func(string) (*models.MotionJob, error) {
				return &models.MotionJob{MotionID: motionID, Status: models.JobStatusProcessing}, nil
			},
			completeFailedFn: func(id uuid.UUID, errLog string) (bool, error) {
				gotLog = errLog
				return true, nil
			},
		},
		&fakeAvatarRepo{}, &fakeVideoRepo{}, &fakeStore{}, &fakeGenClient{})
	token, err := uc.HandleCallback(context.Background(), callbackNote("ext-1", external.StateFail, "", "face not detected"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != motions.CallbackOK {
		t.Errorf("got token %q", token)
	}
	if gotLog != "face not detected" {
		t.Errorf("got error log %q", gotLog)
	}
}

func TestHandleCallbackSuccessWithoutResultURLFails(t *testing.T) {
	motionID := uuid.New()
	failed := false
	uc := newTestUC(t,
		&fakeMotionRepo{
			getByExternalFn: func(string) (*models.MotionJob, error) {
				return &models.MotionJob{MotionID: motionID, Status: models.JobStatusProcessing}, nil
			},
			completeFailedFn: func(id uuid.UUID, errLog string) (bool, error) {
				failed = true
				return true, nil
			},
			completeSuccessFn: func(uuid.UUID, string, string) (bool, error) {
				t.Fatal("success must not be committed without a result artifact")
				return false, nil
			},
		},
		&fakeAvatarRepo{}, &fakeVideoRepo{}, &fakeStore{}, &fakeGenClient{})
	token, err := uc.HandleCallback(context.Background(), callbackNote("ext-1", external.StateSuccess, `{"resultUrls":[]}`, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != motions.CallbackOK || !failed {
		t.Errorf("expected failed transition with ok token, got token %q failed=%v", token, failed)
	}
}

func TestHandleCallbackRehostFailureFailsJob(t *testing.T) {
	motionID := uuid.New()
	failed := false
	uc := newTestUC(t,
		&fakeMotionRepo{
			getByExternalFn: func(string) (*models.MotionJob, error) {
				return &models.MotionJob{MotionID: motionID, Status: models.JobStatusProcessing}, nil
			},
			completeFailedFn: func(id uuid.UUID, errLog string) (bool, error) {
				failed = true
				return true, nil
			},
		},
		&fakeAvatarRepo{}, &fakeVideoRepo{}, &fakeStore{},
		&fakeGenClient{fetchFn: func(string) (io.ReadCloser, int64, error) {
			return nil, 0, fmt.Errorf("result link expired")
		}},
	)
	token, err := uc.HandleCallback(context.Background(), callbackNote("ext-1", external.StateSuccess, `{"resultUrls":["https://cdn/a.mp4"]}`, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitRehost(t, uc)
	if token != motions.CallbackOK || !failed {
		t.Errorf("expected failed transition with ok token, got token %q failed=%v", token, failed)
	}
}

func TestHandleCallbackSuccessRehostsResult(t *testing.T) {
	motionID := uuid.New()
	store := &fakeStore{}
	var gotVideoKey string
	uc := newTestUC(t,
		&fakeMotionRepo{
			getByExternalFn: func(string) (*models.MotionJob, error) {
				return &models.MotionJob{MotionID: motionID, Status: models.JobStatusProcessing}, nil
			},
			completeSuccessFn: func(id uuid.UUID, videoKey, thumbKey string) (bool, error) {
				gotVideoKey = videoKey
				return true, nil
			},
		},
		&fakeAvatarRepo{}, &fakeVideoRepo{}, store,
		&fakeGenClient{fetchFn: func(string) (io.ReadCloser, int64, error) {
			return io.NopCloser(strings.NewReader("video-bytes")), 11, nil
		}},
	)
	token, err := uc.HandleCallback(context.Background(), callbackNote("ext-1", external.StateSuccess, `{"resultUrls":["https://cdn/a.mp4"]}`, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitRehost(t, uc)
	if token != motions.CallbackOK {
		t.Errorf("got token %q", token)
	}
	wantKey := fmt.Sprintf("motion_%s.mp4", motionID)
	if gotVideoKey != wantKey {
		t.Errorf("got video key %q, want %q", gotVideoKey, wantKey)
	}
	if len(store.putKeys) == 0 || store.putKeys[0] != wantKey {
		t.Errorf("result not re-hosted: %v", store.putKeys)
	}
}

func TestHandleCallbackAcksBeforeTransferFinishes(t *testing.T) {
	motionID := uuid.New()
	release := make(chan struct{})
	committed := make(chan string, 1)
	uc := newTestUC(t,
		&fakeMotionRepo{
			getByExternalFn: func(string) (*models.MotionJob, error) {
				return &models.MotionJob{MotionID: motionID, Status: models.JobStatusProcessing}, nil
			},
			completeSuccessFn: func(id uuid.UUID, videoKey, thumbKey string) (bool, error) {
				committed <- videoKey
				return true, nil
			},
		},
		&fakeAvatarRepo{}, &fakeVideoRepo{}, &fakeStore{},
		&fakeGenClient{fetchFn: func(string) (io.ReadCloser, int64, error) {
			<-release
			return io.NopCloser(strings.NewReader("video-bytes")), 11, nil
		}},
	)

	token, err := uc.HandleCallback(context.Background(), callbackNote("ext-1", external.StateSuccess, `{"resultUrls":["https://cdn/a.mp4"]}`, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != motions.CallbackOK {
		t.Errorf("got token %q", token)
	}
	select {
	case key := <-committed:
		t.Fatalf("terminal write %q landed before the transfer was released", key)
	default:
	}

	close(release)
	waitRehost(t, uc)
	select {
	case key := <-committed:
		if want := fmt.Sprintf("motion_%s.mp4", motionID); key != want {
			t.Errorf("got video key %q, want %q", key, want)
		}
	default:
		t.Fatal("success was never committed after the transfer finished")
	}
}

func TestRehostScratchFallsBackOutsideCWD(t *testing.T) {
	cfg := &config.Config{}
	cfg.S3.MotionBucket = "motion-results"
	uc := NewMotionUseCase(cfg, &fakeMotionRepo{}, &fakeAvatarRepo{}, &fakeVideoRepo{}, &fakeStore{}, &fakeGenClient{}, nopLogger{}).(*motionUC)

	root := uc.scratchRoot()
	if root == "" || !filepath.IsAbs(root) {
		t.Fatalf("scratch root %q must be absolute when none is configured", root)
	}

	cfg.Worker.ScratchDir = "/var/lib/montage-scratch"
	if got := uc.scratchRoot(); got != "/var/lib/montage-scratch" {
		t.Errorf("configured scratch dir not honored: %q", got)
	}
}
