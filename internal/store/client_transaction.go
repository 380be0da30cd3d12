package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
)

type recordTransactor struct {
	*DB
	logger *logger.Logger
}

func NewRecordTransactor(db *DB, logger *logger.Logger) RecordTransactor {
	return &recordTransactor{
		DB:     db,
		logger: logger,
	}
}

// WithinTransaction implements [RecordTransactor].
func (t *recordTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx RecordTx) error) error {
	log := logger.FromContext(ctx)

	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "recordTransactor.WithinTransaction").Msg("failed to begin transaction")
		return t.wrapErr(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(ctx, &sqlRecordTx{tx: tx, db: t.DB}); err != nil {
		log.Warn().Err(err).Str("func", "recordTransactor.WithinTransaction").Msg("transaction rolled back")
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "recordTransactor.WithinTransaction").Msg("failed to commit transaction")
		return t.wrapErr(ErrCommitingTransaction, err)
	}

	return nil
}

type sqlRecordTx struct {
	tx *sql.Tx
	db *DB
}

func (s *sqlRecordTx) DeleteAllCredentials(ctx context.Context) error {
	return s.exec(ctx, deleteAllCredentials)
}

func (s *sqlRecordTx) DeleteAllCategories(ctx context.Context) error {
	return s.exec(ctx, deleteAllCategories)
}

func (s *sqlRecordTx) InsertCategory(ctx context.Context, c models.Category) error {
	return s.exec(ctx, insertCategoryWithID, c.ID, c.Name, c.IconRes)
}

func (s *sqlRecordTx) InsertCredential(ctx context.Context, c models.Credential) error {
	return s.exec(ctx, insertCredentialWithID, append([]any{c.ID}, credentialArgs(c)...)...)
}

func (s *sqlRecordTx) exec(ctx context.Context, query string, args ...any) error {
	if _, err := s.tx.ExecContext(ctx, query, args...); err != nil {
		return s.db.wrapErr(ErrExecutingStatement, err)
	}
	return nil
}
