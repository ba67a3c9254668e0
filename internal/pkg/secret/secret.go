// Package secret issues and verifies opaque bearer secrets (voice agent tokens).
// Only bcrypt hashes are persisted.
package secret

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed  = errors.New("secret hashing failed")
	ErrMismatch       = errors.New("secret mismatch")
	ErrInvalidSecret  = errors.New("invalid secret")
	ErrGenerateFailed = errors.New("secret generation failed")
)

const (
	DefaultCost = bcrypt.DefaultCost
	tokenBytes  = 32
)

// NewToken returns a url-safe random token and its bcrypt hash.
func NewToken() (plain string, hash string, err error) {
	plain, err = RandomURLSafe(tokenBytes)
	if err != nil {
		return "", "", err
	}
	hash, err = Hash(plain)
	if err != nil {
		return "", "", err
	}
	return plain, hash, nil
}

func RandomURLSafe(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", ErrGenerateFailed
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrInvalidSecret
	}
	// bcrypt only looks at the first 72 bytes; tokens are 43 chars.
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hashedBytes), nil
}

func Compare(hash, plain string) error {
	if hash == "" || plain == "" {
		return ErrInvalidSecret
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}
