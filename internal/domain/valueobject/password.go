package valueobject

import (
	"unicode"
	"unicode/utf8"

	"github.com/userkit/account-service/internal/domain/domainerr"
)

// Password is a transient value object around a plaintext password candidate.
// It exists only long enough to be validated and hashed; it is never persisted.
type Password struct {
	value string
}

// NewPassword validates the raw password against the complexity rules and
// returns domainerr.ErrInvalidPasswordFormat (with the first failing rule's
// message) on violation.
func NewPassword(raw string) (Password, error) {
	// Rune count, not bytes; a multibyte character is still one character.
	if utf8.RuneCountInString(raw) < 8 {
		return Password{}, domainerr.ErrInvalidPasswordFormat.WithMessage("password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range raw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return Password{}, domainerr.ErrInvalidPasswordFormat.WithMessage("password must contain an uppercase letter")
	}
	if !hasLower {
		return Password{}, domainerr.ErrInvalidPasswordFormat.WithMessage("password must contain a lowercase letter")
	}
	if !hasDigit {
		return Password{}, domainerr.ErrInvalidPasswordFormat.WithMessage("password must contain a digit")
	}
	return Password{value: raw}, nil
}

func (p Password) String() string { return p.value }
