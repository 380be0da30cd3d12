package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
)

const defaultAutoLockInterval = 15 * time.Second

type autoLockJob struct {
	lock     VaultLock
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAutoLockJob creates a job that checks the lock every interval. The job
// is idle until Start is called.
func NewAutoLockJob(lock VaultLock, interval time.Duration, logger *logger.Logger) AutoLockJob {
	if interval <= 0 {
		interval = defaultAutoLockInterval
	}
	return &autoLockJob{lock: lock, interval: interval, logger: logger}
}

// Start implements AutoLockJob. The goroutine exits when ctx is cancelled or
// Stop is called.
func (j *autoLockJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// Stop implements AutoLockJob. Safe to call when the job is not running.
func (j *autoLockJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *autoLockJob) tick(ctx context.Context) {
	if j.lock.State() != models.Unlocked {
		return
	}

	due, err := j.lock.ShouldAutoLock(ctx)
	if err != nil {
		j.logger.Err(err).Str("func", "autoLockJob.tick").Msg("failed to check auto-lock")
		return
	}
	if !due {
		return
	}

	if err = j.lock.Lock(ctx); err != nil {
		j.logger.Err(err).Str("func", "autoLockJob.tick").Msg("failed to auto-lock vault")
		return
	}
	j.logger.Info().Str("func", "autoLockJob.tick").Msg("vault auto-locked")
}
