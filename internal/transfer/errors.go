package transfer

import "errors"

var (
	// ErrInvalidInput is returned for an empty passphrase.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedVersion is returned before any decryption when the
	// envelope version is not [ExportVersion].
	ErrUnsupportedVersion = errors.New("unsupported backup version")

	// ErrWrongPasswordOrCorruptFile is returned when the envelope cannot be
	// read or its ciphertext fails authentication. The two cases are not
	// told apart.
	ErrWrongPasswordOrCorruptFile = errors.New("wrong password or corrupt backup file")

	// ErrMalformedBackup is returned when the decrypted snapshot does not
	// deserialize, lacks a record array or a mandatory record key, or holds
	// an invalid record. Nothing is written.
	ErrMalformedBackup = errors.New("malformed backup")
)
