package transfer

import (
	"context"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/scrypt"

	"github.com/MKhiriev/go-pass-guard/internal/crypto"
)

// KDFParams are the scrypt cost parameters.
type KDFParams struct {
	N int
	R int
	P int
}

// DefaultKDFParams is the cost every backup is written and read with.
var DefaultKDFParams = KDFParams{N: 1 << 14, R: 8, P: 1}

// deriveKey runs scrypt in its own goroutine so the caller can give up on
// ctx. An abandoned derivation finishes in the background and its key is
// wiped.
func deriveKey(ctx context.Context, params KDFParams, passphrase string, salt []byte) ([]byte, error) {
	type result struct {
		key []byte
		err error
	}

	done := make(chan result, 1)
	go func() {
		key, err := scrypt.Key([]byte(passphrase), salt, params.N, params.R, params.P, crypto.KeySize)
		done <- result{key: key, err: err}
	}()

	select {
	case res := <-done:
		return res.key, res.err
	case <-ctx.Done():
		go func() {
			if res := <-done; res.key != nil {
				memguard.WipeBytes(res.key)
			}
		}()
		return nil, ctx.Err()
	}
}
