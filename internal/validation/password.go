package validation

import (
	"errors"
	"strings"
)

// ValidatePassword checks a plaintext password before hashing.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must contain at least 6 characters")
	}

	// bcrypt silently truncates inputs longer than 72 bytes
	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	if strings.Contains(strings.ToLower(password), "password") {
		return errors.New("password cannot contain 'password'")
	}

	return nil
}
