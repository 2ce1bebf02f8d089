// Package auth gates access to the dashboard behind a credential check.
//
// It is demo plumbing: a single configured credential pair, no lockout and
// no rate limiting. A Session holds the logged-in state explicitly instead
// of a process-wide flag, and the Verifier can be swapped for a real
// identity provider without changing callers.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Demo credentials accepted by DefaultVerifier.
const (
	DemoUsername = "sneha"
	DemoPassword = "sneha@2208"
)

// Verifier checks a username and password.
type Verifier interface {
	Verify(username, password string) bool
}

// StaticVerifier accepts exactly one literal credential pair.
type StaticVerifier struct {
	Username string
	Password string
}

// DefaultVerifier returns the verifier for the demo credential pair.
func DefaultVerifier() StaticVerifier {
	return StaticVerifier{Username: DemoUsername, Password: DemoPassword}
}

// Verify compares both fields in constant time.
func (v StaticVerifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) == 1
	return userOK && passOK
}

// BcryptVerifier accepts one username whose password matches a bcrypt hash.
type BcryptVerifier struct {
	Username string
	Hash     []byte
}

// Verify checks the username and the password against the stored hash.
func (v BcryptVerifier) Verify(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.Hash, []byte(password)) == nil
}

// HashPassword hashes plaintext with bcrypt for use in BcryptVerifier.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

// NewVerifier returns the demo verifier when no credentials are configured
// and a BcryptVerifier otherwise. Both fields must be set together.
func NewVerifier(username, passwordHash string) (Verifier, error) {
	switch {
	case username == "" && passwordHash == "":
		return DefaultVerifier(), nil
	case username == "" || passwordHash == "":
		return nil, errors.New("auth.username and auth.password_hash must be set together")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("auth.password_hash is not a bcrypt hash: %w", err)
	}
	return BcryptVerifier{Username: username, Hash: []byte(passwordHash)}, nil
}
