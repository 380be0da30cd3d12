package crypto

import (
	"bytes"
	"errors"
	"testing"
	"testing/quick"

	"github.com/MKhiriev/go-pass-guard/models"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, KeySize)
}

func TestSecretBox_RoundTrip(t *testing.T) {
	box := NewSecretBox()
	key := testKey(0x2A)

	roundTrip := func(plaintext []byte) bool {
		payload, err := box.Encrypt(key, plaintext)
		if err != nil {
			return false
		}
		got, err := box.Decrypt(key, payload)
		if err != nil {
			return false
		}
		return bytes.Equal(got, plaintext)
	}

	if err := quick.Check(roundTrip, nil); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
}

func TestSecretBox_PayloadShape(t *testing.T) {
	box := NewSecretBox()

	payload, err := box.Encrypt(testKey(0x01), []byte("hunter2"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if len(payload.Nonce) != models.NonceSize {
		t.Fatalf("nonce length = %d, want %d", len(payload.Nonce), models.NonceSize)
	}
	// 7 bytes of plaintext plus a 16 byte tag.
	if len(payload.Ciphertext) != 7+16 {
		t.Fatalf("ciphertext length = %d, want %d", len(payload.Ciphertext), 7+16)
	}
}

func TestSecretBox_NonceUniqueness(t *testing.T) {
	box := NewSecretBox()
	key := testKey(0x02)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		payload, err := box.Encrypt(key, []byte("same plaintext"))
		if err != nil {
			t.Fatalf("Encrypt error: %v", err)
		}
		if _, dup := seen[string(payload.Nonce)]; dup {
			t.Fatalf("nonce repeated after %d encryptions", i)
		}
		seen[string(payload.Nonce)] = struct{}{}
	}
}

func TestSecretBox_TamperDetection(t *testing.T) {
	box := NewSecretBox()
	key := testKey(0x03)

	payload, err := box.Encrypt(key, []byte("top secret"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	for i := 0; i < len(payload.Ciphertext)*8; i++ {
		tampered := models.EncryptedPayload{
			Ciphertext: bytes.Clone(payload.Ciphertext),
			Nonce:      payload.Nonce,
		}
		tampered.Ciphertext[i/8] ^= 1 << (i % 8)

		if _, err := box.Decrypt(key, tampered); !errors.Is(err, ErrAuthentication) {
			t.Fatalf("ciphertext bit %d flipped: got err %v, want ErrAuthentication", i, err)
		}
	}

	for i := 0; i < len(payload.Nonce)*8; i++ {
		tampered := models.EncryptedPayload{
			Ciphertext: payload.Ciphertext,
			Nonce:      bytes.Clone(payload.Nonce),
		}
		tampered.Nonce[i/8] ^= 1 << (i % 8)

		if _, err := box.Decrypt(key, tampered); !errors.Is(err, ErrAuthentication) {
			t.Fatalf("nonce bit %d flipped: got err %v, want ErrAuthentication", i, err)
		}
	}
}

func TestSecretBox_MalformedInput(t *testing.T) {
	box := NewSecretBox()
	key := testKey(0x04)

	payload, err := box.Encrypt(key, []byte("x"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	tests := []struct {
		name    string
		payload models.EncryptedPayload
	}{
		{name: "short nonce", payload: models.EncryptedPayload{Ciphertext: payload.Ciphertext, Nonce: payload.Nonce[:8]}},
		{name: "empty nonce", payload: models.EncryptedPayload{Ciphertext: payload.Ciphertext}},
		{name: "truncated ciphertext", payload: models.EncryptedPayload{Ciphertext: payload.Ciphertext[:4], Nonce: payload.Nonce}},
		{name: "empty ciphertext", payload: models.EncryptedPayload{Nonce: payload.Nonce}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := box.Decrypt(key, tt.payload)
			if !errors.Is(err, ErrAuthentication) {
				t.Fatalf("got err %v, want ErrAuthentication", err)
			}
			if got != nil {
				t.Fatalf("expected no plaintext, got %q", got)
			}
		})
	}
}

func TestSecretBox_WrongKey(t *testing.T) {
	box := NewSecretBox()

	payload, err := box.Encrypt(testKey(0x05), []byte("data"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if _, err = box.Decrypt(testKey(0x06), payload); !errors.Is(err, ErrAuthentication) {
		t.Fatalf("got err %v, want ErrAuthentication", err)
	}
}

func TestSecretBox_InvalidKeyLength(t *testing.T) {
	box := NewSecretBox()

	if _, err := box.Encrypt([]byte("short"), []byte("data")); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("got err %v, want ErrInvalidKey", err)
	}
}
