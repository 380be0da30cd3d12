package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/lock"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/mock"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/models"
)

func newTestKV(t *testing.T) *store.BoltStore {
	t.Helper()
	kv, err := store.NewBoltStore(config.ClientKV{Path: filepath.Join(t.TempDir(), "settings.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSettingsService_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	vaultLock := mock.NewMockVaultLock(ctrl)
	vaultLock.EXPECT().Timeout(gomock.Any()).Return(int32(1), nil)

	svc := NewSettingsService(newTestKV(t), vaultLock, 30*time.Second, logger.Nop())

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.UserSettings{AutoLockTimeoutMinutes: 1, ClipboardClearSeconds: 30}, got)
}

func TestSettingsService_ClipboardClear(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	vaultLock := mock.NewMockVaultLock(ctrl)
	vaultLock.EXPECT().State().Return(models.Unlocked).AnyTimes()
	vaultLock.EXPECT().Timeout(gomock.Any()).Return(int32(5), nil)

	svc := NewSettingsService(newTestKV(t), vaultLock, 30*time.Second, logger.Nop())

	require.NoError(t, svc.SetClipboardClear(ctx, 45))
	assert.ErrorIs(t, svc.SetClipboardClear(ctx, 0), ErrInvalidInput)
	assert.ErrorIs(t, svc.SetClipboardClear(ctx, maxClipboardClearSeconds+1), ErrInvalidInput)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.UserSettings{AutoLockTimeoutMinutes: 5, ClipboardClearSeconds: 45}, got)
}

func TestSettingsService_AutoLockTimeoutGoesThroughLock(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	sm, err := lock.NewStateMachine(ctx, kv, config.ClientLock{}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, sm.SetPin(ctx, "1234"))

	svc := NewSettingsService(kv, sm, 30*time.Second, logger.Nop())

	// locked: refused
	assert.ErrorIs(t, svc.SetAutoLockTimeout(ctx, 10), ErrVaultLocked)

	ok, err := sm.ValidatePin(ctx, "1234")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.SetAutoLockTimeout(ctx, 10))
	assert.ErrorIs(t, svc.SetAutoLockTimeout(ctx, 0), ErrInvalidInput)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(10), got.AutoLockTimeoutMinutes)

	timeout, err := sm.Timeout(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(10), timeout)
}

func TestSettingsService_InvalidStoredValue(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	require.NoError(t, kv.Put(ctx, store.SettingsBucket, clipboardClearKey, []byte("soon")))

	ctrl := gomock.NewController(t)
	vaultLock := mock.NewMockVaultLock(ctrl)
	vaultLock.EXPECT().Timeout(gomock.Any()).Return(int32(1), nil)

	svc := NewSettingsService(kv, vaultLock, 20*time.Second, logger.Nop())
	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(20), got.ClipboardClearSeconds)
}
