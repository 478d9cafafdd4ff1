package taskrunner

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"clipmaster/internal/dto"
	"clipmaster/internal/service"
	"clipmaster/internal/storage"
	"clipmaster/internal/types"
	"clipmaster/log"
)

const (
	defaultQueueSize   = 128
	defaultConcurrency = 2
)

var (
	ErrRunnerStopped = errors.New("task runner stopped")
	ErrQueueFull     = errors.New("task queue is full")
)

// Config controls in-process task runner behavior.
type Config struct {
	QueueSize   int
	Concurrency int
}

func DefaultConfig() Config {
	return Config{
		QueueSize:   defaultQueueSize,
		Concurrency: defaultConcurrency,
	}
}

// DetectTaskPayload contains clip detection enqueue data.
type DetectTaskPayload struct {
	TaskID         string                    `json:"task_id"`
	Segments       []types.TranscriptSegment `json:"segments"`
	TargetDuration float64                   `json:"target_duration"`
	MinDuration    float64                   `json:"min_duration"`
	MaxDuration    float64                   `json:"max_duration"`
	MaxClips       int                       `json:"max_clips"`
}

// Runner executes queued detection runs with in-memory workers.
type Runner struct {
	service *service.Service
	config  Config

	queue  chan DetectTaskPayload
	ctx    context.Context
	cancel context.CancelFunc

	workerWg sync.WaitGroup
	closed   atomic.Bool
}

// New creates and starts a task runner.
func New(svc *service.Service, cfg Config) *Runner {
	if svc == nil {
		svc = service.NewService()
	}

	cfg = normalizeConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	runner := &Runner{
		service: svc,
		config:  cfg,
		queue:   make(chan DetectTaskPayload, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < cfg.Concurrency; i++ {
		runner.workerWg.Add(1)
		go runner.worker(i + 1)
	}

	return runner
}

func normalizeConfig(cfg Config) Config {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return cfg
}

// SubmitDetectTask queues a clip detection run.
func (r *Runner) SubmitDetectTask(payload DetectTaskPayload) error {
	if payload.TaskID == "" {
		return errors.New("detect task id is required")
	}
	if r.closed.Load() {
		return ErrRunnerStopped
	}

	select {
	case <-r.ctx.Done():
		return ErrRunnerStopped
	case r.queue <- payload:
		log.GetLogger().Info("[TaskRunner] task submitted", zap.String("task_id", payload.TaskID))
		return nil
	default:
		return ErrQueueFull
	}
}

func (r *Runner) worker(workerID int) {
	defer r.workerWg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		select {
		case <-r.ctx.Done():
			return
		case payload := <-r.queue:
			if err := ProcessDetectTask(r.ctx, r.service, payload); err != nil {
				log.GetLogger().Error("[TaskRunner] task failed",
					zap.Int("worker_id", workerID),
					zap.String("task_id", payload.TaskID),
					zap.Error(err))
				continue
			}
			log.GetLogger().Info("[TaskRunner] task completed",
				zap.Int("worker_id", workerID),
				zap.String("task_id", payload.TaskID))
		}
	}
}

// ProcessDetectTask runs one detection job end to end: status transitions,
// the detection itself and persisting the ranked clips. Shared with the
// Redis-backed queue workers.
func ProcessDetectTask(ctx context.Context, svc *service.Service, payload DetectTaskPayload) error {
	task, err := storage.GetTask(payload.TaskID)
	if err != nil {
		return err
	}

	task.Status = types.ClipTaskStatusRunning
	task.StatusMsg = "Detecting clips"
	if err := storage.SaveTask(task); err != nil {
		return err
	}

	result, err := svc.DetectClips(ctx, dto.DetectClipsReq{
		Segments:       payload.Segments,
		TargetDuration: payload.TargetDuration,
		MinDuration:    payload.MinDuration,
		MaxDuration:    payload.MaxDuration,
		MaxClips:       payload.MaxClips,
	})
	if err != nil {
		task.Status = types.ClipTaskStatusFailed
		task.StatusMsg = "Failed"
		task.FailReason = err.Error()
		_ = storage.SaveTask(task)
		return err
	}

	records := make([]types.ClipRecord, 0, len(result.Clips))
	for i, clip := range result.Clips {
		detailsJson, _ := json.Marshal(clip.Details)
		records = append(records, types.ClipRecord{
			TaskRef:     payload.TaskID,
			Rank:        i + 1,
			StartTime:   clip.StartTime,
			EndTime:     clip.EndTime,
			Duration:    clip.Duration,
			Score:       clip.Score,
			Text:        clip.Text,
			Title:       clip.Title,
			Summary:     clip.Summary,
			DetailsJson: string(detailsJson),
		})
	}
	if err := storage.ReplaceTaskClips(payload.TaskID, records); err != nil {
		task.Status = types.ClipTaskStatusFailed
		task.StatusMsg = "Failed"
		task.FailReason = err.Error()
		_ = storage.SaveTask(task)
		return err
	}

	task.Status = types.ClipTaskStatusDone
	task.StatusMsg = "Done"
	task.FailReason = ""
	return storage.SaveTask(task)
}

// Close stops workers and rejects new tasks.
func (r *Runner) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}

	r.cancel()
	r.workerWg.Wait()
}

// Pending returns the number of queued tasks waiting for workers.
func (r *Runner) Pending() int {
	return len(r.queue)
}
