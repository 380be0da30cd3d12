// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// credentialColumns is the column order every credential scan expects.
var credentialColumns = []string{
	"id",
	"title",
	"username",
	"password_cipher",
	"password_iv",
	"url",
	"notes_cipher",
	"notes_iv",
	"category_id",
	"favorite",
	"created_at",
	"updated_at",
	"key_id",
}

const (
	insertCredential = `
		INSERT INTO credentials (
			title,
			username,
			password_cipher,
			password_iv,
			url,
			notes_cipher,
			notes_iv,
			category_id,
			favorite,
			created_at,
			updated_at,
			key_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	insertCredentialWithID = `
		INSERT INTO credentials (
			id,
			title,
			username,
			password_cipher,
			password_iv,
			url,
			notes_cipher,
			notes_iv,
			category_id,
			favorite,
			created_at,
			updated_at,
			key_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	upsertCredential = `
		INSERT INTO credentials (
			id,
			title,
			username,
			password_cipher,
			password_iv,
			url,
			notes_cipher,
			notes_iv,
			category_id,
			favorite,
			created_at,
			updated_at,
			key_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title           = excluded.title,
			username        = excluded.username,
			password_cipher = excluded.password_cipher,
			password_iv     = excluded.password_iv,
			url             = excluded.url,
			notes_cipher    = excluded.notes_cipher,
			notes_iv        = excluded.notes_iv,
			category_id     = excluded.category_id,
			favorite        = excluded.favorite,
			updated_at      = excluded.updated_at,
			key_id          = excluded.key_id;`

	getCredential = `
		SELECT
			id,
			title,
			username,
			password_cipher,
			password_iv,
			url,
			notes_cipher,
			notes_iv,
			category_id,
			favorite,
			created_at,
			updated_at,
			key_id
		FROM credentials
		WHERE id = ?;`

	getAllCredentials = `
		SELECT
			id,
			title,
			username,
			password_cipher,
			password_iv,
			url,
			notes_cipher,
			notes_iv,
			category_id,
			favorite,
			created_at,
			updated_at,
			key_id
		FROM credentials
		ORDER BY favorite DESC, title COLLATE NOCASE ASC;`

	setCredentialFavorite = `UPDATE credentials SET favorite = ?, updated_at = ? WHERE id = ?;`

	deleteCredential = `DELETE FROM credentials WHERE id = ?;`

	deleteAllCredentials = `DELETE FROM credentials;`

	detachCategoryFromCredentials = `UPDATE credentials SET category_id = NULL WHERE category_id = ?;`
)

const (
	insertCategory = `INSERT INTO categories (name, icon_res) VALUES (?, ?);`

	insertCategoryWithID = `INSERT INTO categories (id, name, icon_res) VALUES (?, ?, ?);`

	upsertCategory = `
		INSERT INTO categories (id, name, icon_res) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name     = excluded.name,
			icon_res = excluded.icon_res;`

	getCategory = `SELECT id, name, icon_res FROM categories WHERE id = ?;`

	getAllCategories = `SELECT id, name, icon_res FROM categories ORDER BY name COLLATE NOCASE ASC;`

	deleteCategory = `DELETE FROM categories WHERE id = ?;`

	deleteAllCategories = `DELETE FROM categories;`
)
