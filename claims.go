package users

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set carried by a session token:
//
//	{"sub": <user id>, "user": {"id", "email", "organization_id", "is_admin"}, "exp": <unix>}
type SessionClaims struct {
	jwt.RegisteredClaims
	User SessionUser `json:"user"`
}

// UserID returns the user claim id, falling back to the subject.
func (c *SessionClaims) UserID() string {
	if c.User.ID != "" {
		return c.User.ID
	}
	return c.RegisteredClaims.Subject
}

// SessionUser returns a copy of the embedded user claim.
func (c *SessionClaims) SessionUser() SessionUser {
	return c.User
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
