package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/mock"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/validators"
	"github.com/MKhiriev/go-pass-guard/models"
)

func TestCategoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("locked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lock := mock.NewMockVaultLock(ctrl)
		lock.EXPECT().State().Return(models.Locked).Times(3)
		svc := NewCategoryService(mock.NewMockCategoryRepository(ctrl), lock, logger.Nop())

		_, err := svc.Save(ctx, models.Category{Name: "Work"})
		assert.ErrorIs(t, err, ErrVaultLocked)
		_, err = svc.List(ctx)
		assert.ErrorIs(t, err, ErrVaultLocked)
		assert.ErrorIs(t, svc.Delete(ctx, 1), ErrVaultLocked)
	})

	t.Run("save list delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lock := mock.NewMockVaultLock(ctrl)
		repo := mock.NewMockCategoryRepository(ctrl)
		lock.EXPECT().State().Return(models.Unlocked).AnyTimes()

		repo.EXPECT().SaveCategory(gomock.Any(), models.Category{Name: "Work", IconRes: "ic_work"}).Return(int64(3), nil)
		repo.EXPECT().GetAllCategories(gomock.Any()).Return([]models.Category{{ID: 3, Name: "Work", IconRes: "ic_work"}}, nil)
		repo.EXPECT().DeleteCategory(gomock.Any(), int64(3)).Return(nil)
		repo.EXPECT().DeleteCategory(gomock.Any(), int64(4)).Return(store.ErrRecordNotFound)

		svc := NewCategoryService(repo, lock, logger.Nop())

		id, err := svc.Save(ctx, models.Category{Name: "Work", IconRes: "ic_work"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), id)

		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, svc.Delete(ctx, 3))
		assert.ErrorIs(t, svc.Delete(ctx, 4), ErrNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lock := mock.NewMockVaultLock(ctrl)
		lock.EXPECT().State().Return(models.Unlocked)
		svc := NewCategoryService(mock.NewMockCategoryRepository(ctrl), lock, logger.Nop())

		_, err := svc.Save(ctx, models.Category{})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, validators.ErrEmptyName)
	})
}
