package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/validators"
	"github.com/MKhiriev/go-pass-guard/models"
)

type credentialService struct {
	credentials store.CredentialRepository
	lock        VaultLock
	crypto      crypto.FieldCrypto
	validator   validators.Validator
	now         func() time.Time
	logger      *logger.Logger
}

func NewCredentialService(credentials store.CredentialRepository, lock VaultLock, fieldCrypto crypto.FieldCrypto, logger *logger.Logger) CredentialService {
	return &credentialService{
		credentials: credentials,
		lock:        lock,
		crypto:      fieldCrypto,
		validator:   validators.NewRecordValidator(),
		now:         time.Now,
		logger:      logger,
	}
}

func (s *credentialService) Create(ctx context.Context, c models.PlainCredential) (int64, error) {
	if err := requireUnlocked(s.lock); err != nil {
		return 0, err
	}
	if err := s.validator.Validate(ctx, c); err != nil {
		return 0, mapValidationError(err)
	}

	sealed, err := s.seal(c)
	if err != nil {
		return 0, err
	}

	now := s.now().UnixMilli()
	sealed.ID = 0
	sealed.CreatedAt = now
	sealed.UpdatedAt = now

	id, err := s.credentials.SaveCredential(ctx, sealed)
	if err != nil {
		return 0, fmt.Errorf("save new credential: %w", mapStoreError(err))
	}

	s.logger.Info().Str("func", "credentialService.Create").Int64("id", id).Msg("credential created")
	return id, nil
}

func (s *credentialService) Update(ctx context.Context, c models.PlainCredential) error {
	if err := requireUnlocked(s.lock); err != nil {
		return err
	}
	if err := s.validator.Validate(ctx, c, validators.FieldID, validators.FieldTitle, validators.FieldPassword); err != nil {
		return mapValidationError(err)
	}

	prev, err := s.credentials.GetCredential(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("load credential %d: %w", c.ID, mapStoreError(err))
	}

	sealed, err := s.seal(c)
	if err != nil {
		return err
	}
	sealed.CreatedAt = prev.CreatedAt
	sealed.UpdatedAt = s.now().UnixMilli()

	if _, err = s.credentials.SaveCredential(ctx, sealed); err != nil {
		return fmt.Errorf("update credential %d: %w", c.ID, mapStoreError(err))
	}

	return nil
}

func (s *credentialService) Reveal(ctx context.Context, id int64) (models.PlainCredential, error) {
	if err := requireUnlocked(s.lock); err != nil {
		return models.PlainCredential{}, err
	}

	c, err := s.credentials.GetCredential(ctx, id)
	if err != nil {
		return models.PlainCredential{}, fmt.Errorf("load credential %d: %w", id, mapStoreError(err))
	}

	password, err := s.crypto.Decrypt(c.Password)
	if err != nil {
		s.logger.Err(err).Str("func", "credentialService.Reveal").Int64("id", id).Msg("failed to decrypt password")
		return models.PlainCredential{}, fmt.Errorf("decrypt password of credential %d: %w", id, err)
	}

	var notes string
	if c.Notes != nil {
		if notes, err = s.crypto.Decrypt(*c.Notes); err != nil {
			s.logger.Err(err).Str("func", "credentialService.Reveal").Int64("id", id).Msg("failed to decrypt notes")
			return models.PlainCredential{}, fmt.Errorf("decrypt notes of credential %d: %w", id, err)
		}
	}

	return models.PlainCredential{
		ID:         c.ID,
		Title:      c.Title,
		Username:   c.Username,
		Password:   password,
		URL:        c.URL,
		Notes:      notes,
		CategoryID: c.CategoryID,
		Favorite:   c.Favorite,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}, nil
}

func (s *credentialService) Search(ctx context.Context, filter models.CredentialFilter) ([]models.Credential, error) {
	if err := requireUnlocked(s.lock); err != nil {
		return nil, err
	}

	now := s.now()
	query := strings.TrimSpace(filter.Query)

	matched, err := s.credentials.SearchCredentials(ctx, filter, now)
	if err != nil {
		return nil, fmt.Errorf("search credentials: %w", mapStoreError(err))
	}
	if query == "" {
		return matched, nil
	}

	// notes are sealed, so the store cannot match them: take every row that
	// passes the other filters and look inside the notes here
	unfiltered := filter
	unfiltered.Query = ""
	candidates, err := s.credentials.SearchCredentials(ctx, unfiltered, now)
	if err != nil {
		return nil, fmt.Errorf("search credentials: %w", mapStoreError(err))
	}

	ids := make(map[int64]struct{}, len(matched))
	for _, c := range matched {
		ids[c.ID] = struct{}{}
	}

	needle := strings.ToLower(query)
	result := make([]models.Credential, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := ids[c.ID]; ok {
			result = append(result, c)
			continue
		}
		if c.Notes == nil {
			continue
		}

		// rows sealed under a lost key stay listed by their plain fields only
		notes, err := s.crypto.Decrypt(*c.Notes)
		if err != nil {
			s.logger.Warn().Err(err).Str("func", "credentialService.Search").Int64("id", c.ID).Msg("skipping credential with unreadable notes")
			continue
		}
		if strings.Contains(strings.ToLower(notes), needle) {
			result = append(result, c)
		}
	}

	return result, nil
}

func (s *credentialService) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	if err := requireUnlocked(s.lock); err != nil {
		return err
	}

	if err := s.credentials.SetFavorite(ctx, id, favorite, s.now().UnixMilli()); err != nil {
		return fmt.Errorf("set favorite on credential %d: %w", id, mapStoreError(err))
	}
	return nil
}

func (s *credentialService) Delete(ctx context.Context, id int64) error {
	if err := requireUnlocked(s.lock); err != nil {
		return err
	}

	if err := s.credentials.DeleteCredential(ctx, id); err != nil {
		return fmt.Errorf("delete credential %d: %w", id, mapStoreError(err))
	}

	s.logger.Info().Str("func", "credentialService.Delete").Int64("id", id).Msg("credential deleted")
	return nil
}

// seal encrypts the secret fields of c. Empty notes are stored as absent.
func (s *credentialService) seal(c models.PlainCredential) (models.Credential, error) {
	password, err := s.crypto.Encrypt(c.Password)
	if err != nil {
		return models.Credential{}, fmt.Errorf("encrypt password: %w", err)
	}

	sealed := models.Credential{
		ID:         c.ID,
		Title:      c.Title,
		Username:   c.Username,
		Password:   password,
		URL:        c.URL,
		CategoryID: c.CategoryID,
		Favorite:   c.Favorite,
	}

	if c.Notes != "" {
		notes, err := s.crypto.Encrypt(c.Notes)
		if err != nil {
			return models.Credential{}, fmt.Errorf("encrypt notes: %w", err)
		}
		sealed.Notes = &notes
	}

	return sealed, nil
}

func requireUnlocked(lock VaultLock) error {
	if lock.State() != models.Unlocked {
		return ErrVaultLocked
	}
	return nil
}
