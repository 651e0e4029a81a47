package types

import "errors"

// Error taxonomy for the compliance core. Handlers map these onto HTTP
// statuses; nothing below this layer retries or swallows them.
var (
	// ErrValidation covers malformed input: bad TIN shape, negative
	// amounts, empty required fields.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers references to a nonexistent contractor.
	ErrNotFound = errors.New("not found")

	// ErrDecryption means ciphertext could not be read with the current
	// key (wrong key loaded, or data corruption). Fatal for that single
	// operation; never fall back to treating ciphertext as plaintext.
	ErrDecryption = errors.New("decryption failed")
)

const (
	ErrInvalidInput  = "Invalid input"
	ErrDatabaseError = "Database error"
	ErrUnauthorized  = "Unauthorized access"
	ErrInternalError = "internal server error"
)
