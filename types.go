package users

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	SessionFromToken(token string) *SessionUser
}

// TokenService issues and verifies session tokens. Issue and Validate are
// pure given a fixed clock; SessionFromToken collapses every validation
// failure to an absent session.
type TokenService interface {
	Issue(user SessionUser) (string, error)
	SignClaims(claims *SessionClaims) (string, error)
	Validate(token string) (*SessionClaims, error)
	SessionFromToken(token string) *SessionUser
}

// Config holds the options this core consumes. The signing key has no safe
// default and must be provided at startup.
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetTokenTTL() int
	GetEnvironment() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] USERS "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] USERS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] USERS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] USERS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
