package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Credentials.Check for any mismatch.
// Callers must not tell a wrong username from a wrong password.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

const defaultCost = 12

// maxPasswordBytes is bcrypt's input limit; longer input is silently truncated
// by some implementations and rejected by x/crypto.
const maxPasswordBytes = 72

// PasswordService hashes and verifies passwords with bcrypt.
type PasswordService struct {
	cost int
}

// NewPasswordService uses cost 12, roughly 250ms per hash on current hardware.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest allows a low cost (bcrypt.MinCost is 4) so tests
// stay fast.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash returns the bcrypt hash of plaintext. This is what the hash-password
// command prints for ADMIN_PASSWORD_HASH.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("auth: password must not be empty")
	}
	if len(plaintext) > maxPasswordBytes {
		return "", fmt.Errorf("auth: password must be %d bytes or fewer", maxPasswordBytes)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify returns nil when plaintext matches hash.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}

// ValidateHash reports whether hash looks like a bcrypt hash. Config loading
// uses it so a pasted plaintext password fails at startup, not at first login.
func ValidateHash(hash string) error {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("auth: not a bcrypt hash: %w", err)
	}
	return nil
}

// Credentials is the single admin account.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Enabled reports whether an admin account is configured at all.
func (c Credentials) Enabled() bool {
	return c.Username != "" && c.PasswordHash != ""
}

// Check verifies username and password against the configured account.
// The bcrypt comparison runs even when the username is wrong, so the response
// time does not reveal which half failed.
func (c Credentials) Check(passwords *PasswordService, username, password string) error {
	if !c.Enabled() {
		return ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passErr := passwords.Verify(c.PasswordHash, password)

	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
