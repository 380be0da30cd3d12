package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
)

// RecentWindow is how far back [models.CredentialFilter.RecentOnly] looks.
const RecentWindow = 7 * 24 * time.Hour

type credentialRepository struct {
	*DB
	logger *logger.Logger
}

func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	return &credentialRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *credentialRepository) SaveCredential(ctx context.Context, c models.Credential) (int64, error) {
	log := logger.FromContext(ctx)

	if c.ID == 0 {
		res, err := r.DB.ExecContext(ctx, insertCredential, credentialArgs(c)...)
		if err != nil {
			log.Err(err).
				Str("func", "credentialRepository.SaveCredential").
				Msg("failed to insert credential")
			return 0, r.wrapErr(ErrExecutingStatement, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrRecordNotSaved, err)
		}
		return id, nil
	}

	args := append([]any{c.ID}, credentialArgs(c)...)
	if _, err := r.DB.ExecContext(ctx, upsertCredential, args...); err != nil {
		log.Err(err).
			Str("func", "credentialRepository.SaveCredential").
			Int64("id", c.ID).
			Msg("failed to upsert credential")
		return 0, r.wrapErr(ErrExecutingStatement, err)
	}

	return c.ID, nil
}

func (r *credentialRepository) GetCredential(ctx context.Context, id int64) (models.Credential, error) {
	log := logger.FromContext(ctx)

	c, err := scanCredential(r.DB.QueryRowContext(ctx, getCredential, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Credential{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.GetCredential").
			Int64("id", id).
			Msg("failed to scan credential row")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return c, nil
}

func (r *credentialRepository) GetAllCredentials(ctx context.Context) ([]models.Credential, error) {
	return r.queryCredentials(ctx, "credentialRepository.GetAllCredentials", getAllCredentials)
}

// SearchCredentials matches filter.Query case-insensitively against title,
// username and url. Notes are sealed and cannot be matched here.
func (r *credentialRepository) SearchCredentials(ctx context.Context, filter models.CredentialFilter, now time.Time) ([]models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSearchQuery(filter, now)
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.SearchCredentials").Msg("failed to build search query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryCredentials(ctx, "credentialRepository.SearchCredentials", query, args...)
}

func (r *credentialRepository) SetFavorite(ctx context.Context, id int64, favorite bool, updatedAt int64) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, setCredentialFavorite, favorite, updatedAt, id)
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.SetFavorite").
			Int64("id", id).
			Msg("failed to update favorite flag")
		return r.wrapErr(ErrExecutingStatement, err)
	}

	return requireAffected(res)
}

func (r *credentialRepository) DeleteCredential(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, deleteCredential, id)
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.DeleteCredential").
			Int64("id", id).
			Msg("failed to delete credential")
		return r.wrapErr(ErrExecutingStatement, err)
	}

	return requireAffected(res)
}

func (r *credentialRepository) queryCredentials(ctx context.Context, fn, query string, args ...any) ([]models.Credential, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to query credentials")
		return nil, r.wrapErr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Credential
	for rows.Next() {
		c, scanErr := scanCredential(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan credential rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		items = append(items, c)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error during credential rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func buildSearchQuery(filter models.CredentialFilter, now time.Time) (string, []any, error) {
	q := sq.Select(credentialColumns...).From("credentials")

	if text := strings.TrimSpace(filter.Query); text != "" {
		pattern := "%" + escapeLike(text) + "%"
		q = q.Where(sq.Or{
			sq.Expr(`title LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`username LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`url LIKE ? ESCAPE '\'`, pattern),
		})
	}
	if filter.CategoryID != nil {
		q = q.Where(sq.Eq{"category_id": *filter.CategoryID})
	}
	if filter.FavoritesOnly {
		q = q.Where(sq.Eq{"favorite": true})
	}
	if filter.RecentOnly {
		q = q.Where(sq.GtOrEq{"updated_at": now.Add(-RecentWindow).UnixMilli()})
	}

	return q.OrderBy("favorite DESC", "title COLLATE NOCASE ASC").ToSql()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCredential(row rowScanner) (models.Credential, error) {
	var (
		c                          models.Credential
		passwordCipher, passwordIV string
		url, notesCipher, notesIV  sql.NullString
		categoryID                 sql.NullInt64
		keyID                      string
	)

	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Username,
		&passwordCipher,
		&passwordIV,
		&url,
		&notesCipher,
		&notesIV,
		&categoryID,
		&c.Favorite,
		&c.CreatedAt,
		&c.UpdatedAt,
		&keyID,
	)
	if err != nil {
		return models.Credential{}, err
	}

	c.Password, err = models.DecodeEncryptedPayload(passwordCipher, passwordIV)
	if err != nil {
		return models.Credential{}, err
	}
	c.Password.KeyID = keyID
	if notesCipher.Valid && notesIV.Valid {
		notes, decodeErr := models.DecodeEncryptedPayload(notesCipher.String, notesIV.String)
		if decodeErr != nil {
			return models.Credential{}, decodeErr
		}
		notes.KeyID = keyID
		c.Notes = &notes
	}
	c.URL = url.String
	if categoryID.Valid {
		id := categoryID.Int64
		c.CategoryID = &id
	}

	return c, nil
}

// credentialArgs returns the insert arguments for c without its id. Both
// fields of a row are sealed together, so the row keeps one key id.
func credentialArgs(c models.Credential) []any {
	passwordCipher, passwordIV := c.Password.Encode()

	var url, notesCipher, notesIV sql.NullString
	if c.URL != "" {
		url = sql.NullString{String: c.URL, Valid: true}
	}
	if c.Notes != nil {
		nc, ni := c.Notes.Encode()
		notesCipher = sql.NullString{String: nc, Valid: true}
		notesIV = sql.NullString{String: ni, Valid: true}
	}

	var categoryID sql.NullInt64
	if c.CategoryID != nil {
		categoryID = sql.NullInt64{Int64: *c.CategoryID, Valid: true}
	}

	return []any{
		c.Title,
		c.Username,
		passwordCipher,
		passwordIV,
		url,
		notesCipher,
		notesIV,
		categoryID,
		c.Favorite,
		c.CreatedAt,
		c.UpdatedAt,
		c.Password.KeyID,
	}
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}
