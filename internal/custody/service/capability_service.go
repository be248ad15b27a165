// Package service provides the admin capability credential service.
package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/mist/internal/errors"
)

// CapabilityService mints and verifies admin capability secrets.
type CapabilityService interface {
	// Generate returns a new random secret and its Argon2id hash.
	Generate() (plainSecret string, hashedSecret string, err error)

	// Verify reports whether plainSecret matches hashedSecret.
	Verify(plainSecret string, hashedSecret string) bool
}

type capabilityService struct {
	hasher *pwdhash.PasswordHasher
}

// NewCapabilityService creates a CapabilityService using the Moderate Argon2id policy.
func NewCapabilityService() CapabilityService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		panic(err)
	}

	return &capabilityService{hasher: hasher}
}

// Generate creates a 32-byte random secret encoded as URL-safe base64.
func (s *capabilityService) Generate() (string, string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate admin capability")
	}

	plainSecret := base64.URLEncoding.EncodeToString(randomBytes)

	hashedSecret, err := s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to hash admin capability")
	}

	return plainSecret, hashedSecret, nil
}

// Verify compares in constant time. Malformed hashes never verify.
func (s *capabilityService) Verify(plainSecret string, hashedSecret string) bool {
	ok, err := s.hasher.Verify([]byte(plainSecret), hashedSecret)
	if err != nil {
		return false
	}
	return ok
}
