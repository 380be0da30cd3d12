package service

import (
	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/store"
)

// ClientServices groups every client service around one vault lock.
type ClientServices struct {
	Lock              VaultLock
	CredentialService CredentialService
	CategoryService   CategoryService
	SettingsService   SettingsService
	ClipboardService  ClipboardService
	TransferService   TransferService
	AutoLockJob       AutoLockJob
}

func NewClientServices(cfg *config.ClientConfig, storages *store.ClientStorages, lock VaultLock, fieldCrypto crypto.FieldCrypto, codec TransferCodec, logger *logger.Logger) *ClientServices {
	settingsSvc := NewSettingsService(storages.KV, lock, cfg.Clipboard.ClearAfter, logger)

	return &ClientServices{
		Lock:              lock,
		CredentialService: NewCredentialService(storages.CredentialRepository, lock, fieldCrypto, logger),
		CategoryService:   NewCategoryService(storages.CategoryRepository, lock, logger),
		SettingsService:   settingsSvc,
		ClipboardService:  NewClipboardService(settingsSvc, logger),
		TransferService:   NewTransferService(codec, lock, logger),
		AutoLockJob:       NewAutoLockJob(lock, cfg.Workers.AutoLockInterval, logger),
	}
}
