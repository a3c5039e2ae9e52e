package validation

import (
	"errors"
	"net/mail"
)

// ValidateEmail checks format with the RFC 5322 parser from net/mail.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}

	// RFC 5321 caps the whole address at 254 characters
	if len(email) > 254 {
		return errors.New("email address is too long")
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return errors.New("email is not valid")
	}

	return nil
}
