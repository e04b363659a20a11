package users

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrInvalidCredentials is returned for every login failure: unknown email,
// inactive account, and wrong password all share the same error so callers
// cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("User/Password are not correct", errors.CategoryAuth).
	WithCode(errors.CodeBadRequest).
	WithTextCode("INVALID_CREDENTIALS")

// ErrMismatchedHashAndPassword is the bcrypt mismatch error
var ErrMismatchedHashAndPassword = errors.New("password does not match hash", errors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH")

// ErrNoEmptyString is returned when hashing an empty password
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithTextCode("EMPTY_PASSWORD")

// ErrMissingToken is returned by logout and the token middleware when no
// token was supplied
var ErrMissingToken = errors.New("Token is required", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest).
	WithTextCode("MISSING_TOKEN")

// ErrTokenExpired is returned when a token is past its expiry
var ErrTokenExpired = errors.New("Token not valid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed is returned for tokens that fail signature or structural
// validation
var ErrTokenMalformed = errors.New("Token not valid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrTokenRevoked is returned when a structurally valid token has been
// revoked through logout
var ErrTokenRevoked = errors.New("Token not valid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_REVOKED")

// ErrTokenSubjectInvalid is returned when a token's subject no longer maps to
// an active user
var ErrTokenSubjectInvalid = errors.New("Token not valid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_SUBJECT_INVALID")

// ErrUserNotFound is the not-found error for user lookups
var ErrUserNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("USER_NOT_FOUND")

// NewDuplicateFieldError reports a username/email collision. The message
// mirrors the create/update responses, e.g. "Email already in use" or
// "Username already in use by another user".
func NewDuplicateFieldError(field string, otherUser bool) *errors.Error {
	label := strings.ToUpper(field[:1]) + field[1:]
	msg := label + " already in use"
	if otherUser {
		msg += " by another user"
	}
	return errors.New(msg, errors.CategoryConflict).
		WithCode(errors.CodeBadRequest).
		WithTextCode("DUPLICATE_FIELD").
		WithMetadata(map[string]any{"field": field})
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == "TOKEN_EXPIRED" {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == "TOKEN_MALFORMED" {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsDuplicateFieldError reports whether err carries the duplicate-field
// text code, either from a pre-check or a constraint violation.
func IsDuplicateFieldError(err error) bool {
	var richErr *errors.Error
	return errors.As(err, &richErr) && richErr.TextCode == "DUPLICATE_FIELD"
}

// IsUniqueViolation detects storage-level unique constraint failures. The
// sqlite drivers report these as "UNIQUE constraint failed: users.<column>".
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: users.username") ||
		strings.Contains(msg, "constraint failed: users.email")
}

// uniqueViolationField extracts the offending column from a constraint
// violation message, defaulting to "field" when it cannot be determined.
func uniqueViolationField(err error) string {
	msg := err.Error()
	for _, column := range []string{"username", "email"} {
		if strings.Contains(msg, fmt.Sprintf("users.%s", column)) {
			return column
		}
	}
	return "field"
}
