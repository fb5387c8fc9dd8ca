package auth

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/JhonRainbow6/WebProject/pkg/jwt"
)

type MockProviderAdapter struct {
	mock.Mock
}

func (m *MockProviderAdapter) ProviderID() string {
	return m.Called().String(0)
}

func (m *MockProviderAdapter) AuthURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockProviderAdapter) ResolveProfile(ctx context.Context, code string) (ProviderProfile, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(ProviderProfile), args.Error(1)
}

type MockSteamProvider struct {
	mock.Mock
}

func (m *MockSteamProvider) AuthURL(returnTo string) (string, error) {
	args := m.Called(returnTo)
	return args.String(0), args.Error(1)
}

func (m *MockSteamProvider) VerifyAssertion(ctx context.Context, returnTo string, params url.Values) (string, error) {
	args := m.Called(ctx, returnTo, params)
	return args.String(0), args.Error(1)
}

func (m *MockSteamProvider) PlayerExists(ctx context.Context, steamID string) (bool, error) {
	args := m.Called(ctx, steamID)
	return args.Bool(0), args.Error(1)
}

const testSecret = "test-secret-32-chars-long-123456"

func newTestTokens(t *testing.T) *JWTTokens {
	t.Helper()
	svc, err := jwt.NewFromString(testSecret)
	require.NoError(t, err)
	return NewJWTTokens(svc)
}

// minimum bcrypt cost keeps the tests fast
func newTestAccounts(t *testing.T, storage Storage, opts ...AccountOption) *AccountService {
	t.Helper()
	return NewAccountService(storage, NewBcryptHasher(4), newTestTokens(t), opts...)
}
