package auth

import (
	"fmt"

	"github.com/JhonRainbow6/WebProject/pkg/jwt"
)

// JWTTokens adapts a jwt.Service to TokenService.
type JWTTokens struct {
	svc *jwt.Service
}

func NewJWTTokens(svc *jwt.Service) *JWTTokens {
	return &JWTTokens{svc: svc}
}

func (t *JWTTokens) Issue(userID, email string) (string, error) {
	return t.svc.Issue(userID, email)
}

// Verify returns an error matching both ErrUnauthorized and the specific jwt
// error (jwt.ErrExpiredToken, jwt.ErrInvalidSignature or jwt.ErrMalformedToken).
func (t *JWTTokens) Verify(token string) (Identity, error) {
	claims, err := t.svc.Parse(token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return Identity{UserID: claims.ID, Email: claims.Email}, nil
}

var _ TokenService = (*JWTTokens)(nil)
