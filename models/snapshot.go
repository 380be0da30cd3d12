package models

// VaultSnapshot is the decrypted body of a backup file.
type VaultSnapshot struct {
	Version     int                `json:"version"`
	CreatedAt   int64              `json:"createdAt"`
	Credentials []CredentialRecord `json:"credentials"`
	Categories  []CategoryRecord   `json:"categories"`
}

// ImportResult reports how many rows a successful backup import wrote.
type ImportResult struct {
	Credentials int
	Categories  int
}

// CredentialRecord is a credential as written into a backup. Password and
// notes stay sealed under the device field key; only their base64 text form
// is carried. Absent notes are written as empty strings, never null.
type CredentialRecord struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Username       string `json:"username"`
	PasswordCipher string `json:"passwordCipher"`
	PasswordNonce  string `json:"passwordIv"`
	URL            string `json:"url"`
	NotesCipher    string `json:"notesCipher"`
	NotesNonce     string `json:"notesIv"`
	CategoryID     *int64 `json:"categoryId"`
	Favorite       bool   `json:"favorite"`
	CreatedAt      int64  `json:"createdAt"`
	UpdatedAt      int64  `json:"updatedAt"`
	KeyID          string `json:"keyId,omitempty"`
}

// CategoryRecord is a category as written into a backup.
type CategoryRecord struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	IconRes string `json:"iconRes"`
}

// NewCredentialRecord converts a stored credential into its backup form.
func NewCredentialRecord(c Credential) CredentialRecord {
	passwordCipher, passwordNonce := c.Password.Encode()

	r := CredentialRecord{
		ID:             c.ID,
		Title:          c.Title,
		Username:       c.Username,
		PasswordCipher: passwordCipher,
		PasswordNonce:  passwordNonce,
		URL:            c.URL,
		CategoryID:     c.CategoryID,
		Favorite:       c.Favorite,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		KeyID:          c.Password.KeyID,
	}
	if c.Notes != nil {
		r.NotesCipher, r.NotesNonce = c.Notes.Encode()
	}

	return r
}

// Credential converts the record back. It fails with [ErrMalformedPayload]
// when a cipher or nonce field is not base64.
func (r CredentialRecord) Credential() (Credential, error) {
	password, err := DecodeEncryptedPayload(r.PasswordCipher, r.PasswordNonce)
	if err != nil {
		return Credential{}, err
	}
	password.KeyID = r.KeyID

	c := Credential{
		ID:         r.ID,
		Title:      r.Title,
		Username:   r.Username,
		Password:   password,
		URL:        r.URL,
		CategoryID: r.CategoryID,
		Favorite:   r.Favorite,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.NotesCipher != "" && r.NotesNonce != "" {
		notes, err := DecodeEncryptedPayload(r.NotesCipher, r.NotesNonce)
		if err != nil {
			return Credential{}, err
		}
		notes.KeyID = r.KeyID
		c.Notes = &notes
	}

	return c, nil
}

// NewCategoryRecord converts a stored category into its backup form.
func NewCategoryRecord(c Category) CategoryRecord {
	return CategoryRecord{ID: c.ID, Name: c.Name, IconRes: c.IconRes}
}

// Category converts the record back.
func (r CategoryRecord) Category() Category {
	return Category{ID: r.ID, Name: r.Name, IconRes: r.IconRes}
}
