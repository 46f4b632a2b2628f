package auth

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Confirmation codes are emailed in plaintext but only their bcrypt hash is
// persisted. A code stays valid until the next signup for the same account
// rotates it; there is no expiry and a successful exchange does not consume
// it (matches the documented auth contract, weakness and all).

const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateConfirmationCode returns a random 8-character alphanumeric code.
func GenerateConfirmationCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate confirmation code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeCharset[int(b)%len(codeCharset)]
	}
	return string(buf), nil
}

// HashConfirmationCode creates a bcrypt hash from the given plaintext code.
func HashConfirmationCode(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyConfirmationCode checks the presented code against the stored hash.
// bcrypt's comparison is constant-time.
func VerifyConfirmationCode(hashedCode, providedCode string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(providedCode))
}
