package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/motionmix/montage-backend/internal/artifacts"
	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/jobqueue"
	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/montages"
	"github.com/motionmix/montage-backend/internal/motions"
	"github.com/motionmix/montage-backend/internal/tracks"
	"github.com/motionmix/montage-backend/internal/videos"
	"github.com/motionmix/montage-backend/pkg/logger"
	"github.com/motionmix/montage-backend/pkg/utils"
)

const (
	dequeueTimeout  = 5 * time.Second
	cpuBackoff      = 10 * time.Second
	acquireTimeout  = 30 * time.Minute
	probeTimeout    = 5 * time.Minute
	composeTimeout  = 30 * time.Minute
	defaultScratch  = "/tmp/montage-worker"
	defaultWorkers  = 3
	defaultMaxUsage = 80.0
)

// Pool consumes the shared task queue. Each worker claims the referenced row
// before doing any work, so duplicate task deliveries and competing workers
// resolve at the database, not in the queue.
type Pool struct {
	cfg         *config.Config
	videoRepo   videos.Repository
	trackRepo   tracks.Repository
	motionRepo  motions.Repository
	montageRepo montages.Repository
	storeRepo   artifacts.Repository
	queueRepo   jobqueue.Repository
	logger      logger.Logger
}

func NewPool(
	cfg *config.Config,
	videoRepo videos.Repository,
	trackRepo tracks.Repository,
	motionRepo motions.Repository,
	montageRepo montages.Repository,
	storeRepo artifacts.Repository,
	queueRepo jobqueue.Repository,
	log logger.Logger,
) *Pool {
	return &Pool{
		cfg:         cfg,
		videoRepo:   videoRepo,
		trackRepo:   trackRepo,
		motionRepo:  motionRepo,
		montageRepo: montageRepo,
		storeRepo:   storeRepo,
		queueRepo:   queueRepo,
		logger:      log,
	}
}

// Run blocks until ctx is cancelled and every worker goroutine drained.
func (p *Pool) Run(ctx context.Context) {
	count := p.cfg.Worker.WorkerCount
	if count <= 0 {
		count = defaultWorkers
	}
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.loop(ctx, id)
		}(i)
	}
	wg.Wait()
}

func (p *Pool) loop(ctx context.Context, id int) {
	maxUsage := p.cfg.Worker.MaxCPUUsage
	if maxUsage <= 0 {
		maxUsage = defaultMaxUsage
	}
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if ok, usage := utils.CheckCPUUsage(maxUsage); !ok {
			p.logger.Warnf("worker %d: cpu usage %.1f%% over limit, backing off", id, usage)
			select {
			case <-ctx.Done():
				return
			case <-time.After(cpuBackoff):
			}
			continue
		}

		task, err := p.queueRepo.DequeueTask(ctx, p.cfg.Redis.TaskQueueKey, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Errorf("worker %d: dequeue: %v", id, err)
			time.Sleep(time.Second)
			continue
		}
		if task == nil {
			continue
		}
		p.dispatch(ctx, id, task)
	}
}

// dispatch runs one task behind a recover guard. A panicking handler still
// leaves the claimed row with a terminal status instead of stranding it in
// processing.
func (p *Pool) dispatch(ctx context.Context, id int, task *models.Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("worker %d: panic in %s task %s: %v", id, task.Kind, task.RecordID, r)
			p.failRecord(task, fmt.Sprintf("internal worker failure: %v", r))
		}
	}()

	p.logger.Infof("worker %d: handling %s task for %s", id, task.Kind, task.RecordID)
	switch task.Kind {
	case models.TaskAcquireVideo:
		taskCtx, cancel := context.WithTimeout(ctx, acquireTimeout)
		defer cancel()
		p.handleAcquireVideo(taskCtx, task)
	case models.TaskProbeTrack:
		taskCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		p.handleProbeTrack(taskCtx, task)
	case models.TaskComposeMontage:
		taskCtx, cancel := context.WithTimeout(ctx, composeTimeout)
		defer cancel()
		p.handleComposeMontage(taskCtx, task)
	default:
		p.logger.Warnf("worker %d: unknown task kind %q, dropping", id, task.Kind)
	}
}

// failRecord writes the terminal failure for a panicked task. Terminal writes
// are conditional on processing, so this is safe to attempt even when the
// handler never claimed the row.
func (p *Pool) failRecord(task *models.Task, msg string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var err error
	switch task.Kind {
	case models.TaskAcquireVideo:
		err = p.videoRepo.MarkFailed(ctx, task.RecordID, msg)
	case models.TaskProbeTrack:
		err = p.trackRepo.MarkInactive(ctx, task.RecordID)
	case models.TaskComposeMontage:
		err = p.montageRepo.MarkFailed(ctx, task.RecordID, msg)
	}
	if err != nil {
		p.logger.Errorf("failRecord %s %s: %v", task.Kind, task.RecordID, err)
	}
}

func (p *Pool) scratchDir() string {
	if p.cfg.Worker.ScratchDir != "" {
		return p.cfg.Worker.ScratchDir
	}
	return defaultScratch
}
