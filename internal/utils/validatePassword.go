package utils

import (
	"errors"
	"regexp"
)

var (
	hasLetterRe  = regexp.MustCompile(`[A-Za-z]`)
	hasDigitRe   = regexp.MustCompile(`[0-9]`)
	hasSpecialRe = regexp.MustCompile(`[!@#\$%\^&\*\(\)_\+\-=\[\]{};':"\\|,.<>\/?]`)
)

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters long")
	}

	if !hasLetterRe.MatchString(password) || !hasDigitRe.MatchString(password) || !hasSpecialRe.MatchString(password) {
		return errors.New("Password must contain letters, numbers and at least 1 special character")
	}

	return nil
}
