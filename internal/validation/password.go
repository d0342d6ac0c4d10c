package validation

import (
	"unicode"
)

// ValidatePassword enforces the account password policy: minimum 12
// characters with at least one upper-case letter, one lower-case letter,
// one digit and one special character. Maximum 72 bytes because bcrypt
// silently truncates anything longer.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return NewError("password must be at least 12 characters")
	}

	if len(password) > 72 {
		return NewError("password must not exceed 72 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper {
		return NewError("password must contain an upper-case letter")
	}
	if !hasLower {
		return NewError("password must contain a lower-case letter")
	}
	if !hasDigit {
		return NewError("password must contain a digit")
	}
	if !hasSpecial {
		return NewError("password must contain a special character")
	}

	return nil
}
