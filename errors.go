package users

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeAuthenticationFailed = "users_authentication_failed"
	TextCodeUserNotFound         = "users_record_not_found"
	TextCodeDuplicateEmail       = "users_duplicate_email"
	TextCodeInvalidFilter        = "users_invalid_filter"
	TextCodeTokenExpired         = "users_token_expired"
	TextCodeTokenMalformed       = "users_token_malformed"
)

// ErrAuthentication is the one error a failed login produces. The message
// is identical whether the email is unknown or the password is wrong.
var ErrAuthentication = errors.New("email and password do not match.", errors.CategoryAuth).
	WithTextCode(TextCodeAuthenticationFailed).
	WithCode(errors.CodeUnauthorized)

// ErrUserNotFound is returned by mutations (update, delete) targeting an
// identifier that does not exist. Reads never use it; absence is a value.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrDuplicateEmail is returned when creating a record with an email that is
// already in use.
var ErrDuplicateEmail = errors.New("a user with that email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// ErrInvalidFilter guards the attribute filter against unknown field names.
// The directory rules only ever filter by organization_id, so this is an
// internal misuse signal, not a user-triggerable condition.
var ErrInvalidFilter = errors.New("unsupported filter attribute", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidFilter).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired is returned by TokenService.Validate for expired tokens.
var ErrTokenExpired = errors.New("session token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed wraps every structural or signature failure during
// token validation.
var ErrTokenMalformed = errors.New("session token malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrUnableToMapClaims is returned when a structurally valid token does not
// carry the expected user claim.
var ErrUnableToMapClaims = errors.New("unable to map session claims", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("value must not be an empty string", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the bcrypt comparison failure.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// errWithMetadata clones a sentinel so callers can attach request-scoped
// metadata without mutating the shared value. The clone keeps the sentinel
// as its source so errors.Is still matches.
func errWithMetadata(base *errors.Error, meta map[string]any) error {
	clone := base.Clone()
	if clone == nil {
		return base
	}
	clone.Source = base
	return clone.WithMetadata(meta)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired) || strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed")
}
