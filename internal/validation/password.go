package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password accepted at sign-in and sign-up.
const MinPasswordLength = 8

// PasswordSymbols lists the special characters a password may contain.
const PasswordSymbols = "@$!%*?&"

// ErrWeakPassword is returned when a password does not meet the policy.
var ErrWeakPassword = errors.New("password must be at least 8 characters long, include uppercase, lowercase, a number, and a special character")

// CheckPassword enforces the account password policy.
//
// A password needs a lowercase letter, an uppercase letter, a digit and one
// of PasswordSymbols, and may contain nothing else.
func CheckPassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		default:
			return ErrWeakPassword
		}
	}
	if !lower || !upper || !digit || !symbol {
		return ErrWeakPassword
	}
	return nil
}
