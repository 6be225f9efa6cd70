package id

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a random identifier like "9b2f0c1e-6a4d-4f0e-8d7a-2c1b3e4f5a6b".
func New() string {
	return uuid.NewString()
}

// Parse validates an identifier and returns it in canonical lowercase form.
func Parse(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid id %q: %w", s, err)
	}
	return u.String(), nil
}

// Short returns the first block of an identifier, for compact CLI output.
// "9b2f0c1e-6a4d-..." -> "9b2f0c1e"
func Short(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			return s[:i]
		}
	}
	return s
}
