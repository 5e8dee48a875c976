package valueobject

import (
	"strings"
	"unicode/utf8"

	"github.com/userkit/account-service/internal/domain/domainerr"
)

// Identity groups the identifying attributes of a user. Immutable; compared by
// value; an Identity that fails validation never comes into existence.
type Identity struct {
	username string
	email    string
}

// NewIdentity validates and constructs an Identity. The username must be 4 to
// 10 characters; the email only needs to contain an "@", full grammar
// validation is deliberately left to the transport layer.
func NewIdentity(username, email string) (Identity, error) {
	// Rune count, not bytes, so multibyte usernames measure correctly.
	if n := utf8.RuneCountInString(username); n < 4 || n > 10 {
		return Identity{}, domainerr.ErrInvalidUsernameFormat
	}
	if !strings.Contains(email, "@") {
		return Identity{}, domainerr.ErrInvalidEmailFormat
	}
	return Identity{username: username, email: email}, nil
}

func (i Identity) Username() string { return i.username }
func (i Identity) Email() string    { return i.email }
