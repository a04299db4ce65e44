package users

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

const (
	DefaultSigningMethod = "HS256"
	DefaultTokenTTL      = 3600
)

// TokenServiceImpl signs and verifies session tokens with a symmetric key.
// The zero value is not usable; build instances with NewTokenService.
type TokenServiceImpl struct {
	signingKey    []byte
	signingMethod string
	tokenTTL      int
	Logger        Logger
}

// NewTokenService creates a token service from config, applying the HS256
// and one hour defaults when the config leaves them unset.
func NewTokenService(cfg Config) (*TokenServiceImpl, error) {
	if cfg == nil {
		return nil, errors.New("users: config required", errors.CategoryBadInput)
	}

	if cfg.GetSigningKey() == "" {
		return nil, errors.New("users: signing key required", errors.CategoryBadInput)
	}

	method := cfg.GetSigningMethod()
	if method == "" {
		method = DefaultSigningMethod
	}

	if _, err := hmacSigningMethod(method); err != nil {
		return nil, err
	}

	ttl := cfg.GetTokenTTL()
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &TokenServiceImpl{
		signingKey:    []byte(cfg.GetSigningKey()),
		signingMethod: method,
		tokenTTL:      ttl,
		Logger:        defLogger{},
	}, nil
}

func hmacSigningMethod(name string) (*jwt.SigningMethodHMAC, error) {
	method := jwt.GetSigningMethod(name)
	if method == nil {
		return nil, errors.New("users: unknown signing method: "+name, errors.CategoryBadInput)
	}
	hmac, ok := method.(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, errors.New("users: signing method must be HMAC based: "+name, errors.CategoryBadInput)
	}
	return hmac, nil
}

// Issue builds the claim set for user and signs it. Expiry is now plus the
// configured TTL, truncated to whole seconds so the exp claim round-trips.
func (s *TokenServiceImpl) Issue(user SessionUser) (string, error) {
	now := time.Now().Truncate(time.Second)
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
		},
		User: user,
	}
	return s.SignClaims(claims)
}

// SignClaims signs an already built claim set.
func (s *TokenServiceImpl) SignClaims(claims *SessionClaims) (string, error) {
	method, err := hmacSigningMethod(s.signingMethod)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "users: failed to sign token")
	}

	return signed, nil
}

// Validate parses and verifies token, returning the decoded claims. Expired
// tokens map to ErrTokenExpired, every other failure to ErrTokenMalformed. A
// verified token whose user claim has no id maps to ErrUnableToMapClaims.
func (s *TokenServiceImpl) Validate(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method", errors.CategoryAuth)
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errWithMetadata(ErrTokenMalformed, map[string]any{"cause": err.Error()})
	}

	if !parsed.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.User.ID == "" {
		return nil, ErrUnableToMapClaims
	}

	return claims, nil
}

// SessionFromToken is the boundary form of Validate: every failure, empty
// token included, collapses to a nil session.
func (s *TokenServiceImpl) SessionFromToken(token string) *SessionUser {
	if token == "" {
		return nil
	}

	claims, err := s.Validate(token)
	if err != nil {
		s.Logger.Debug("session token rejected: %v", err)
		return nil
	}

	user := claims.User
	return &user
}
