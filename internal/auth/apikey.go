// Package auth holds the API key credential scheme: key generation for
// profile bootstrap and hash verification for request authentication.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrInvalidAPIKey is returned when an API key is malformed or the hash does not match.
var ErrInvalidAPIKey = errors.New("auth: invalid API key")

const (
	apiKeyPrefix  = "ldai_"
	apiKeyRandLen = 16 // 16 bytes = 32 hex chars

	// PrefixLen is how many leading characters of the raw key are stored in
	// cleartext for lookup. The rest is only ever compared by hash.
	PrefixLen = 8
)

// APIKey is a freshly generated credential. Raw is shown to the user once;
// only Prefix and Hash are persisted.
type APIKey struct {
	Raw    string
	Prefix string
	Hash   string
}

// GenerateAPIKey creates a new API key. Key format: "ldai_" + 32 random hex chars.
func GenerateAPIKey() (*APIKey, error) {
	raw := make([]byte, apiKeyRandLen)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("auth.GenerateAPIKey: %w", err)
	}

	rawKey := apiKeyPrefix + hex.EncodeToString(raw)

	return &APIKey{
		Raw:    rawKey,
		Prefix: rawKey[:PrefixLen],
		Hash:   HashAPIKey(rawKey),
	}, nil
}

// HashAPIKey returns the SHA-256 hex digest of a raw key.
func HashAPIKey(rawKey string) string {
	hash := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(hash[:])
}

// VerifyAPIKey compares a raw key against a stored hash in constant time.
func VerifyAPIKey(rawKey, storedHash string) error {
	if len(rawKey) < PrefixLen {
		return ErrInvalidAPIKey
	}
	if subtle.ConstantTimeCompare([]byte(HashAPIKey(rawKey)), []byte(storedHash)) != 1 {
		return ErrInvalidAPIKey
	}
	return nil
}
