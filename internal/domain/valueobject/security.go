package valueobject

// Security groups the security-relevant state of a user account. Immutable;
// every "mutation" on the owning entity replaces the whole value.
type Security struct {
	hashedPassword string
	disabled       bool
	emailVerified  bool
}

// NewSecurity returns the default security state for a fresh account:
// no password set yet, enabled, email unverified.
func NewSecurity() Security {
	return Security{}
}

// RehydrateSecurity rebuilds a persisted security value. Repository use only.
func RehydrateSecurity(hashedPassword string, disabled, emailVerified bool) Security {
	return Security{hashedPassword: hashedPassword, disabled: disabled, emailVerified: emailVerified}
}

func (s Security) HashedPassword() string { return s.hashedPassword }
func (s Security) Disabled() bool         { return s.disabled }
func (s Security) EmailVerified() bool    { return s.emailVerified }

func (s Security) WithHashedPassword(hash string) Security {
	s.hashedPassword = hash
	return s
}

func (s Security) WithDisabled(disabled bool) Security {
	s.disabled = disabled
	return s
}

func (s Security) WithEmailVerified(verified bool) Security {
	s.emailVerified = verified
	return s
}
