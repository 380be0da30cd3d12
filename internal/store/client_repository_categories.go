package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
)

type categoryRepository struct {
	*DB
	logger *logger.Logger
}

func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	return &categoryRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *categoryRepository) SaveCategory(ctx context.Context, c models.Category) (int64, error) {
	log := logger.FromContext(ctx)

	if c.ID == 0 {
		res, err := r.DB.ExecContext(ctx, insertCategory, c.Name, c.IconRes)
		if err != nil {
			log.Err(err).Str("func", "categoryRepository.SaveCategory").Msg("failed to insert category")
			return 0, r.wrapErr(ErrExecutingStatement, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrRecordNotSaved, err)
		}
		return id, nil
	}

	if _, err := r.DB.ExecContext(ctx, upsertCategory, c.ID, c.Name, c.IconRes); err != nil {
		log.Err(err).
			Str("func", "categoryRepository.SaveCategory").
			Int64("id", c.ID).
			Msg("failed to upsert category")
		return 0, r.wrapErr(ErrExecutingStatement, err)
	}

	return c.ID, nil
}

func (r *categoryRepository) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	var c models.Category
	err := r.DB.QueryRowContext(ctx, getCategory, id).Scan(&c.ID, &c.Name, &c.IconRes)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrRecordNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "categoryRepository.GetCategory").
			Int64("id", id).
			Msg("failed to scan category row")
		return models.Category{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return c, nil
}

func (r *categoryRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getAllCategories)
	if err != nil {
		log.Err(err).Str("func", "categoryRepository.GetAllCategories").Msg("failed to query categories")
		return nil, r.wrapErr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err = rows.Scan(&c.ID, &c.Name, &c.IconRes); err != nil {
			log.Err(err).Str("func", "categoryRepository.GetAllCategories").Msg("failed to scan category rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// DeleteCategory implements [CategoryRepository]. The detach and the delete
// share one transaction.
func (r *categoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "categoryRepository.DeleteCategory").Msg("failed to begin transaction")
		return r.wrapErr(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, detachCategoryFromCredentials, id); err != nil {
		log.Err(err).
			Str("func", "categoryRepository.DeleteCategory").
			Int64("id", id).
			Msg("failed to detach credentials from category")
		return r.wrapErr(ErrExecutingStatement, err)
	}

	res, err := tx.ExecContext(ctx, deleteCategory, id)
	if err != nil {
		log.Err(err).
			Str("func", "categoryRepository.DeleteCategory").
			Int64("id", id).
			Msg("failed to delete category")
		return r.wrapErr(ErrExecutingStatement, err)
	}
	if err = requireAffected(res); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "categoryRepository.DeleteCategory").Msg("failed to commit transaction")
		return r.wrapErr(ErrCommitingTransaction, err)
	}

	return nil
}
