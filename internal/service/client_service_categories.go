package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/validators"
	"github.com/MKhiriev/go-pass-guard/models"
)

type categoryService struct {
	categories store.CategoryRepository
	lock       VaultLock
	validator  validators.Validator
	logger     *logger.Logger
}

func NewCategoryService(categories store.CategoryRepository, lock VaultLock, logger *logger.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		lock:       lock,
		validator:  validators.NewRecordValidator(),
		logger:     logger,
	}
}

func (s *categoryService) Save(ctx context.Context, c models.Category) (int64, error) {
	if err := requireUnlocked(s.lock); err != nil {
		return 0, err
	}
	if err := s.validator.Validate(ctx, c); err != nil {
		return 0, mapValidationError(err)
	}

	id, err := s.categories.SaveCategory(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("save category: %w", mapStoreError(err))
	}
	return id, nil
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	if err := requireUnlocked(s.lock); err != nil {
		return nil, err
	}

	categories, err := s.categories.GetAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", mapStoreError(err))
	}
	return categories, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if err := requireUnlocked(s.lock); err != nil {
		return err
	}

	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category %d: %w", id, mapStoreError(err))
	}

	s.logger.Info().Str("func", "categoryService.Delete").Int64("id", id).Msg("category deleted")
	return nil
}
