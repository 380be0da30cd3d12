package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/mock"
	"github.com/MKhiriev/go-pass-guard/models"
)

// ── NewAutoLockJob ───────────────────────────────────────────────────────────

func TestNewAutoLockJob_DefaultInterval(t *testing.T) {
	job := NewAutoLockJob(nil, 0, logger.Nop()).(*autoLockJob)
	assert.Equal(t, defaultAutoLockInterval, job.interval)
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestAutoLockJob_LocksWhenDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	vaultLock := mock.NewMockVaultLock(ctrl)

	locked := make(chan struct{})
	var once sync.Once

	vaultLock.EXPECT().State().Return(models.Unlocked).AnyTimes()
	vaultLock.EXPECT().ShouldAutoLock(gomock.Any()).Return(true, nil).MinTimes(1)
	vaultLock.EXPECT().Lock(gomock.Any()).DoAndReturn(func(context.Context) error {
		once.Do(func() { close(locked) })
		return nil
	}).MinTimes(1)

	job := NewAutoLockJob(vaultLock, 5*time.Millisecond, logger.Nop())
	job.Start(context.Background())
	defer job.Stop()

	select {
	case <-locked:
	case <-time.After(time.Second):
		t.Fatal("vault was not auto-locked")
	}
}

func TestAutoLockJob_SkipsWhenNotDueOrLocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	vaultLock := mock.NewMockVaultLock(ctrl)

	var mu sync.Mutex
	calls := 0
	vaultLock.EXPECT().State().DoAndReturn(func() models.LockState {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls%2 == 0 {
			return models.Locked
		}
		return models.Unlocked
	}).AnyTimes()
	vaultLock.EXPECT().ShouldAutoLock(gomock.Any()).Return(false, nil).AnyTimes()
	// no Lock expectation: calling it fails the test

	job := NewAutoLockJob(vaultLock, 5*time.Millisecond, logger.Nop())
	job.Start(context.Background())
	time.Sleep(40 * time.Millisecond)
	job.Stop()
}

func TestAutoLockJob_CheckErrorDoesNotLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	vaultLock := mock.NewMockVaultLock(ctrl)

	vaultLock.EXPECT().State().Return(models.Unlocked).AnyTimes()
	vaultLock.EXPECT().ShouldAutoLock(gomock.Any()).Return(false, errors.New("kv closed")).AnyTimes()

	job := NewAutoLockJob(vaultLock, 5*time.Millisecond, logger.Nop())
	job.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	job.Stop()
}

func TestAutoLockJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewAutoLockJob(nil, time.Second, logger.Nop())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestAutoLockJob_StopsWithContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	vaultLock := mock.NewMockVaultLock(ctrl)
	vaultLock.EXPECT().State().Return(models.Locked).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	job := NewAutoLockJob(vaultLock, 5*time.Millisecond, logger.Nop())
	job.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancel")
	}
}

func TestAutoLockJob_RestartReplacesRunningJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	vaultLock := mock.NewMockVaultLock(ctrl)
	vaultLock.EXPECT().State().Return(models.Locked).AnyTimes()

	job := NewAutoLockJob(vaultLock, 5*time.Millisecond, logger.Nop())
	job.Start(context.Background())
	job.Start(context.Background())
	job.Stop()
}
