package transfer

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/models"
)

// ExportVersion is the only envelope version this package reads and writes.
const ExportVersion = 1

// envelope is the outer, non-secret part of a backup file.
type envelope struct {
	Version int    `json:"version"`
	Salt    string `json:"salt"`
	Nonce   string `json:"nonce"`
	Cipher  string `json:"cipher"`
}

// sealed is a decoded envelope.
type sealed struct {
	salt       []byte
	nonce      []byte
	ciphertext []byte
}

func encodeEnvelope(w io.Writer, s sealed) error {
	return json.NewEncoder(w).Encode(envelope{
		Version: ExportVersion,
		Salt:    base64.StdEncoding.EncodeToString(s.salt),
		Nonce:   base64.StdEncoding.EncodeToString(s.nonce),
		Cipher:  base64.StdEncoding.EncodeToString(s.ciphertext),
	})
}

// decodeEnvelope checks the version before looking at any other field.
func decodeEnvelope(r io.Reader) (sealed, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return sealed{}, fmt.Errorf("%w: decode envelope: %w", ErrWrongPasswordOrCorruptFile, err)
	}

	if env.Version != ExportVersion {
		return sealed{}, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, env.Version, ExportVersion)
	}

	var (
		s   sealed
		err error
	)
	if s.salt, err = base64.StdEncoding.DecodeString(env.Salt); err != nil || len(s.salt) != crypto.SaltSize {
		return sealed{}, fmt.Errorf("%w: bad salt", ErrWrongPasswordOrCorruptFile)
	}
	if s.nonce, err = base64.StdEncoding.DecodeString(env.Nonce); err != nil || len(s.nonce) != models.NonceSize {
		return sealed{}, fmt.Errorf("%w: bad nonce", ErrWrongPasswordOrCorruptFile)
	}
	if s.ciphertext, err = base64.StdEncoding.DecodeString(env.Cipher); err != nil {
		return sealed{}, fmt.Errorf("%w: bad ciphertext", ErrWrongPasswordOrCorruptFile)
	}

	return s, nil
}
