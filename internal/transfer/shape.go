package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	requiredCredentialKeys = []string{"title", "username", "passwordCipher", "passwordIv"}
	requiredCategoryKeys   = []string{"name", "iconRes"}
)

// snapshotShape is the decrypted snapshot with every record left raw.
// Pointers tell an absent or null array from an empty one.
type snapshotShape struct {
	Credentials *[]map[string]json.RawMessage `json:"credentials"`
	Categories  *[]map[string]json.RawMessage `json:"categories"`
}

// checkShape fails unless both record arrays are present and every record
// carries its mandatory keys. A plain decode into models.VaultSnapshot reads
// absent arrays and keys as empty values, and an import of that would wipe
// the store.
func checkShape(plaintext []byte) error {
	var shape snapshotShape
	if err := json.Unmarshal(plaintext, &shape); err != nil {
		return err
	}

	if shape.Credentials == nil {
		return errors.New("credentials array is missing")
	}
	if shape.Categories == nil {
		return errors.New("categories array is missing")
	}

	for i, rec := range *shape.Credentials {
		if err := requireKeys(rec, requiredCredentialKeys); err != nil {
			return fmt.Errorf("credential at index %d: %w", i, err)
		}
	}
	for i, rec := range *shape.Categories {
		if err := requireKeys(rec, requiredCategoryKeys); err != nil {
			return fmt.Errorf("category at index %d: %w", i, err)
		}
	}

	return nil
}

func requireKeys(rec map[string]json.RawMessage, keys []string) error {
	if rec == nil {
		return errors.New("record is null")
	}
	for _, k := range keys {
		raw, ok := rec[k]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("missing %q", k)
		}
	}
	return nil
}
