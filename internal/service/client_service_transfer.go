package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
)

type transferService struct {
	codec  TransferCodec
	lock   VaultLock
	logger *logger.Logger
}

func NewTransferService(codec TransferCodec, lock VaultLock, logger *logger.Logger) TransferService {
	return &transferService{codec: codec, lock: lock, logger: logger}
}

func (s *transferService) Export(ctx context.Context, path, passphrase string) error {
	if err := requireUnlocked(s.lock); err != nil {
		return err
	}

	if err := s.codec.ExportFile(ctx, path, passphrase); err != nil {
		return fmt.Errorf("export vault: %w", err)
	}
	return nil
}

func (s *transferService) Import(ctx context.Context, path, passphrase string) (models.ImportResult, error) {
	if err := requireUnlocked(s.lock); err != nil {
		return models.ImportResult{}, err
	}

	res, err := s.codec.ImportFile(ctx, path, passphrase)
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("import vault: %w", err)
	}
	return res, nil
}
