package domainerr

import (
	"errors"
	"net/http"
)

// Error is the canonical business-rule violation. It carries a machine-readable
// code, a client-safe message, and the HTTP status the presentation layer should
// respond with. Anything that is not an *Error is treated as an unclassified
// infrastructure failure and must never reach a client verbatim.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"error"`
	HTTPStatus int    `json:"-"`
}

func (e *Error) Error() string { return e.Message }

// Is matches by code, so a sentinel with a customized message (e.g. a specific
// password-rule failure) still compares equal to its base error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy carrying a more specific client-safe message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg, HTTPStatus: e.HTTPStatus}
}

var (
	ErrUsernameAlreadyExists = &Error{
		Code:       "USERNAME_ALREADY_EXISTS",
		Message:    "a user with this username already exists",
		HTTPStatus: http.StatusConflict,
	}
	ErrEmailAlreadyExists = &Error{
		Code:       "EMAIL_ALREADY_EXISTS",
		Message:    "a user with this email already exists",
		HTTPStatus: http.StatusConflict,
	}
	ErrUserNotFound = &Error{
		Code:       "USER_NOT_FOUND",
		Message:    "user not found",
		HTTPStatus: http.StatusNotFound,
	}
	ErrUserDisabled = &Error{
		Code:       "USER_DISABLED",
		Message:    "user account is disabled",
		HTTPStatus: http.StatusForbidden,
	}
	ErrInvalidEmailFormat = &Error{
		Code:       "INVALID_EMAIL_FORMAT",
		Message:    "invalid email address format",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrInvalidUsernameFormat = &Error{
		Code:       "INVALID_USERNAME_FORMAT",
		Message:    "username must be between 4 and 10 characters",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrInvalidPasswordFormat = &Error{
		Code:       "INVALID_PASSWORD_FORMAT",
		Message:    "password is too weak or too short",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrInvalidCredentials = &Error{
		Code:       "INVALID_CREDENTIALS",
		Message:    "invalid credentials",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrEmailNotVerified = &Error{
		Code:       "EMAIL_NOT_VERIFIED",
		Message:    "please verify your email address first",
		HTTPStatus: http.StatusForbidden,
	}
	ErrInvalidCurrentPassword = &Error{
		Code:       "INVALID_CURRENT_PASSWORD",
		Message:    "current password is incorrect",
		HTTPStatus: http.StatusForbidden,
	}
)

// As extracts the *Error from err's chain; nil if err is not a business error.
func As(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return nil
}

// IsDomain reports whether err (or anything it wraps) is a business error.
func IsDomain(err error) bool { return As(err) != nil }
