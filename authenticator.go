package users

import (
	"context"
)

// Auther implements the email and password login flow on top of a Store and
// a TokenService.
type Auther struct {
	store  Store
	tokens TokenService
	logger Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store Store, opts Config) (*Auther, error) {
	tokens, err := NewTokenService(opts)
	if err != nil {
		return nil, err
	}

	return &Auther{
		store:  store,
		tokens: tokens,
		logger: defLogger{},
	}, nil
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokens
}

// Login verifies the credential pair and returns a signed session token.
// An unknown email and a wrong password produce the exact same error; the
// caller learns nothing about which factor failed.
func (s *Auther) Login(ctx context.Context, email, password string) (string, error) {
	record, err := s.store.GetAuthRecordByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Login store lookup error: %v", err)
		return "", err
	}

	if record == nil {
		s.logger.Debug("Login no record for email")
		return "", ErrAuthentication
	}

	if err := ComparePasswordAndHash(password, record.PasswordHash); err != nil {
		s.logger.Debug("Login password mismatch")
		return "", ErrAuthentication
	}

	return s.tokens.Issue(SessionUserFromAuthRecord(*record))
}

// SessionFromToken resolves a raw token to the caller it names. Anything
// other than a fully verified token yields nil, the anonymous caller.
func (s *Auther) SessionFromToken(token string) *SessionUser {
	return s.tokens.SessionFromToken(token)
}
