package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/betpay/betpay-wallet/internal/crashtracker"
	"github.com/betpay/betpay-wallet/internal/scheduler/jobs"
)

// Scheduler runs background jobs at their intervals, distributing them over a small worker pool.
type Scheduler struct {
	jobs               map[string]jobs.Job
	cancel             context.CancelFunc
	crashTrackerClient crashtracker.CrashTrackerClient
	jobQueue           chan jobs.Job
	// enqueuedJobs keeps a job that runs longer than its interval from being queued twice.
	enqueuedJobs sync.Map
}

type SchedulerJobRegisterOption func(*Scheduler)

// SchedulerWorkerCount is the number of workers that will be started to process jobs
const SchedulerWorkerCount = 2

// StartScheduler registers the jobs and runs them until ctx is done. This method blocks.
func StartScheduler(ctx context.Context, crashTrackerClient crashtracker.CrashTrackerClient, schedulerJobRegisters ...SchedulerJobRegisterOption) {
	defer crashTrackerClient.Recover()

	ctx, cancel := context.WithCancel(ctx)
	scheduler := newScheduler(cancel)
	scheduler.crashTrackerClient = crashTrackerClient

	for _, schedulerJobRegister := range schedulerJobRegisters {
		schedulerJobRegister(scheduler)
	}

	if !scheduler.start(ctx) {
		return
	}

	<-ctx.Done()
	scheduler.stop()
}

func newScheduler(cancel context.CancelFunc) *Scheduler {
	return &Scheduler{
		jobs:     make(map[string]jobs.Job),
		cancel:   cancel,
		jobQueue: make(chan jobs.Job),
	}
}

// addJob adds a job to the scheduler. The job only runs after start is called.
func (s *Scheduler) addJob(job jobs.Job) {
	log.Infof("registering job to scheduler [name: %s], [interval: %s]", job.GetName(), job.GetInterval())
	s.jobs[job.GetName()] = job
}

// start launches the workers and one ticker per job. It reports false when there is nothing to run.
func (s *Scheduler) start(ctx context.Context) bool {
	if len(s.jobs) == 0 {
		log.Ctx(ctx).Info("No jobs to start")
		s.stop()
		return false
	}
	log.Ctx(ctx).Infof("Starting scheduler with %d workers...", SchedulerWorkerCount)

	for i := 1; i <= SchedulerWorkerCount; i++ {
		go worker(ctx, i, s.crashTrackerClient.Clone(), s)
	}

	for _, job := range s.jobs {
		go s.tick(ctx, job)
	}
	return true
}

func (s *Scheduler) tick(ctx context.Context, job jobs.Job) {
	ticker := time.NewTicker(job.GetInterval())
	defer ticker.Stop()

	jobName := job.GetName()
	for {
		select {
		case <-ticker.C:
			if _, alreadyEnqueued := s.enqueuedJobs.LoadOrStore(jobName, true); alreadyEnqueued {
				log.Ctx(ctx).Debugf("Skipping job %s, already in queue", jobName)
				continue
			}
			log.Ctx(ctx).Debugf("Enqueuing job: %s", jobName)
			select {
			case s.jobQueue <- job:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) stop() {
	log.Info("Stopping scheduler...")
	s.cancel()
}

func worker(ctx context.Context, workerID int, crashTrackerClient crashtracker.CrashTrackerClient, scheduler *Scheduler) {
	defer func() {
		if r := recover(); r != nil {
			log.Ctx(ctx).Errorf("Worker %d encountered a panic while processing a job: %v", workerID, r)
		}
	}()
	for {
		select {
		case job := <-scheduler.jobQueue:
			executeJob(ctx, job, workerID, crashTrackerClient)
			scheduler.enqueuedJobs.Delete(job.GetName())
		case <-ctx.Done():
			log.Ctx(ctx).Infof("Worker %d stopping...", workerID)
			return
		}
	}
}

// executeJob executes a job and reports any errors to the crash tracker.
func executeJob(ctx context.Context, job jobs.Job, workerID int, crashTrackerClient crashtracker.CrashTrackerClient) {
	log.Ctx(ctx).Debugf("Processing job %s on worker %d", job.GetName(), workerID)
	if err := job.Execute(ctx); err != nil {
		msg := fmt.Sprintf("error processing job %s on worker %d", job.GetName(), workerID)
		crashTrackerClient.LogAndReportErrors(ctx, err, msg)
	}
}

func WithCatalogRefreshJobOption(opts jobs.CatalogRefreshJobOptions) SchedulerJobRegisterOption {
	return func(s *Scheduler) {
		j, err := jobs.NewCatalogRefreshJob(opts)
		if err != nil {
			log.Errorf("error creating catalog refresh job: %v", err)
			return
		}
		s.addJob(j)
	}
}
