package helpers

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

var (
	reHasLetter = regexp.MustCompile(`[A-Za-z]`)
	reHasDigit  = regexp.MustCompile(`[0-9]`)
	reEmail     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidateNewPassword: at least 8 characters, not all digits, not the username.
func ValidateNewPassword(password, username string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	if !reHasLetter.MatchString(password) && reHasDigit.MatchString(password) {
		return errors.New("password cannot be entirely numeric")
	}
	if username != "" && strings.EqualFold(password, username) {
		return errors.New("password is too similar to the username")
	}
	return nil
}

func ValidateLoginInput(identifier, password string) error {
	if strings.TrimSpace(identifier) == "" {
		return errors.New("username or email is required")
	}
	if password == "" {
		return errors.New("password is required")
	}
	return nil
}

func IsValidEmail(email string) bool {
	return reEmail.MatchString(strings.TrimSpace(email))
}
