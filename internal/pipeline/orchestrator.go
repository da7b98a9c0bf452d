package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/careerstack/resumegest/internal/config"
	"github.com/careerstack/resumegest/internal/layout"
	"github.com/careerstack/resumegest/internal/reader"
)

// Orchestrator manages the resume parse pipeline.
type Orchestrator struct {
	jobs       *JobStore
	queue      chan *Job
	remote     *reader.RemoteReader
	log        *slog.Logger
	cfg        config.Config
	lineCfg    layout.LineConfig
	sectionCfg layout.SectionConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. remote may be nil, in which
// case the local format readers are used.
func NewOrchestrator(cfg config.Config, remote *reader.RemoteReader, log *slog.Logger) *Orchestrator {
	lineCfg := layout.DefaultLineConfig()
	lineCfg.BaselineTolerance = cfg.LineTolerance

	sectionCfg := layout.DefaultSectionConfig()
	sectionCfg.MaxHeadingWords = cfg.MaxHeadingWords

	return &Orchestrator{
		jobs:       NewJobStore(cfg.JobTTL),
		queue:      make(chan *Job, cfg.MaxQueueSize),
		remote:     remote,
		log:        log,
		cfg:        cfg,
		lineCfg:    lineCfg,
		sectionCfg: sectionCfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.remote, o.log, o.lineCfg, o.sectionCfg)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// RemoteReader returns the remote reader client, or nil when local
// readers are in use.
func (o *Orchestrator) RemoteReader() *reader.RemoteReader {
	return o.remote
}
