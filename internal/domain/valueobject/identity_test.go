package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userkit/account-service/internal/domain/domainerr"
)

func TestNewIdentity(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		wantErr  error
	}{
		{name: "valid", username: "alice", email: "alice@example.com"},
		{name: "min length username", username: "abcd", email: "a@b"},
		{name: "max length username", username: "abcdefghij", email: "a@b"},
		{name: "username too short", username: "abc", email: "a@b.com", wantErr: domainerr.ErrInvalidUsernameFormat},
		{name: "three multibyte chars over four bytes", username: "日本語", email: "a@b.com", wantErr: domainerr.ErrInvalidUsernameFormat},
		{name: "four multibyte chars", username: "日本語会", email: "a@b.com"},
		{name: "eleven multibyte chars", username: "ééééééééééé", email: "a@b.com", wantErr: domainerr.ErrInvalidUsernameFormat},
		{name: "username too long", username: "abcdefghijk", email: "a@b.com", wantErr: domainerr.ErrInvalidUsernameFormat},
		{name: "empty username", username: "", email: "a@b.com", wantErr: domainerr.ErrInvalidUsernameFormat},
		{name: "email without at sign", username: "alice", email: "not-an-email", wantErr: domainerr.ErrInvalidEmailFormat},
		{name: "empty email", username: "alice", email: "", wantErr: domainerr.ErrInvalidEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewIdentity(tt.username, tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, id.Username())
			assert.Equal(t, tt.email, id.Email())
		})
	}
}

func TestSecurityValueCopies(t *testing.T) {
	s := NewSecurity()
	assert.False(t, s.Disabled())
	assert.False(t, s.EmailVerified())
	assert.Empty(t, s.HashedPassword())

	withHash := s.WithHashedPassword("h")
	assert.Equal(t, "h", withHash.HashedPassword())
	assert.Empty(t, s.HashedPassword(), "original must stay untouched")

	disabled := s.WithDisabled(true)
	assert.True(t, disabled.Disabled())
	assert.False(t, s.Disabled())

	verified := s.WithEmailVerified(true)
	assert.True(t, verified.EmailVerified())
	assert.False(t, s.EmailVerified())
}
