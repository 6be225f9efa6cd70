// Package pin hashes and verifies the numeric PIN that locks the wallet.
package pin

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinLength = 4
	MaxLength = 6
)

// ErrInvalidPIN is returned for PINs that are not 4 to 6 digits.
var ErrInvalidPIN = errors.New("PIN must be 4 to 6 digits")

// Validate checks the PIN format.
func Validate(pin string) error {
	if len(pin) < MinLength || len(pin) > MaxLength {
		return ErrInvalidPIN
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrInvalidPIN
		}
	}
	return nil
}

// Hash returns a salted bcrypt hash of pin.
func Hash(pin string) (string, error) {
	if err := Validate(pin); err != nil {
		return "", err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing PIN: %w", err)
	}
	return string(h), nil
}

// Check reports whether pin matches hash. An empty hash never matches.
func Check(pin, hash string) bool {
	if pin == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
