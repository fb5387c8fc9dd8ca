package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Allowed token lifetimes.
const (
	MinTTL     = time.Hour
	MaxTTL     = 24 * time.Hour
	DefaultTTL = time.Hour
)

// Claims is the payload of a session token.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	gojwt.RegisteredClaims
}

// Service signs and verifies session tokens with HMAC-SHA256.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	now        func() time.Time
}

// Option configures Service.
type Option func(*Service)

// WithTTL sets the token lifetime. It must be within [MinTTL, MaxTTL].
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithIssuer sets the iss claim on issued tokens.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a token service. The key should be at least 32 bytes.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	s := &Service{
		signingKey: signingKey,
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.ttl < MinTTL || s.ttl > MaxTTL {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTTL, s.ttl)
	}

	return s, nil
}

// NewFromString is New for string keys.
func NewFromString(signingKey string, opts ...Option) (*Service, error) {
	return New([]byte(signingKey), opts...)
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given user.
func (s *Service) Issue(userID, email string) (string, error) {
	now := s.now()

	claims := Claims{
		ID:    userID,
		Email: email,
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return token, nil
}

// Parse verifies the token and returns its claims.
// Errors are always one of ErrExpiredToken, ErrInvalidSignature or ErrMalformedToken.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMalformedToken
	}

	claims := &Claims{}
	_, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if claims.ID == "" {
		return nil, ErrMalformedToken
	}

	return claims, nil
}

func (s *Service) keyFunc(*gojwt.Token) (any, error) {
	return s.signingKey, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid),
		errors.Is(err, gojwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrExpiredToken
	default:
		return ErrMalformedToken
	}
}
