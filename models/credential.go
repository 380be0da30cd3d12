// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Credential is a single vault entry as it is persisted in the record store.
//
// Password and Notes are never held in plaintext here: they carry the
// ciphertext produced by the field crypto manager. Title, Username and URL
// are stored in the clear so that the list view can be rendered without
// touching the key vault.
type Credential struct {
	// ID is the record store identifier. Zero means "not yet persisted".
	ID int64

	Title    string
	Username string

	// Password is the encrypted secret. Always present.
	Password EncryptedPayload

	// URL is optional; an empty string means "not set".
	URL string

	// Notes is optional and, when present, encrypted the same way as Password.
	Notes *EncryptedPayload

	// CategoryID links the credential to a [Category]. Nil means uncategorised.
	CategoryID *int64

	Favorite bool

	// CreatedAt and UpdatedAt are unix timestamps in milliseconds.
	CreatedAt int64
	UpdatedAt int64
}

// Category groups credentials in the UI.
type Category struct {
	ID      int64
	Name    string
	IconRes string
}

// CredentialFilter narrows a credential search.
type CredentialFilter struct {
	// Query is matched case-insensitively against title, username and URL.
	Query string

	CategoryID    *int64
	FavoritesOnly bool

	// RecentOnly keeps credentials updated within the last seven days.
	RecentOnly bool
}

// PlainCredential is the decrypted view of a [Credential] handed to the
// presentation layer. It must never be written to the record store.
type PlainCredential struct {
	ID         int64
	Title      string
	Username   string
	Password   string
	URL        string
	Notes      string
	CategoryID *int64
	Favorite   bool
	CreatedAt  int64
	UpdatedAt  int64
}
