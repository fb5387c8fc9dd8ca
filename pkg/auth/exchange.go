package auth

import (
	"context"
	"fmt"
	"time"
)

const (
	exchangeKeyPrefix      = "exchange_code:"
	DefaultExchangeCodeTTL = 60 * time.Second
)

// ExchangeCodes swaps session tokens for short-lived one-time codes so that
// tokens never appear in redirect URLs.
type ExchangeCodes struct {
	store OnceStore
	ttl   time.Duration
}

func NewExchangeCodes(store OnceStore, ttl time.Duration) *ExchangeCodes {
	if ttl <= 0 {
		ttl = DefaultExchangeCodeTTL
	}
	return &ExchangeCodes{store: store, ttl: ttl}
}

// Issue stores token and returns the code that redeems it.
func (e *ExchangeCodes) Issue(ctx context.Context, token string) (string, error) {
	for range 3 {
		code, err := randomKey(32)
		if err != nil {
			return "", err
		}

		stored, err := e.store.Put(ctx, exchangeKeyPrefix+code, token, e.ttl)
		if err != nil {
			return "", fmt.Errorf("store exchange code: %w", err)
		}
		if stored {
			return code, nil
		}
	}
	return "", fmt.Errorf("store exchange code: %w", ErrDuplicateKey)
}

// Redeem returns the token behind code and invalidates the code.
// Unknown, expired and already used codes are ErrInvalidCode.
func (e *ExchangeCodes) Redeem(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", ErrInvalidCode
	}

	token, ok, err := e.store.Take(ctx, exchangeKeyPrefix+code)
	if err != nil {
		return "", fmt.Errorf("redeem exchange code: %w", err)
	}
	if !ok {
		return "", ErrInvalidCode
	}
	return token, nil
}
