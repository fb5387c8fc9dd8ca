package auth

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGoogleLoginFixture(t *testing.T, storage *memStorage) (*GoogleLogin, *MockProviderAdapter) {
	t.Helper()
	provider := &MockProviderAdapter{}
	provider.On("AuthURL", mock.AnythingOfType("string")).Return("https://accounts.example/consent").Maybe()
	login := NewGoogleLogin(provider, NewMemoryOnceStore(100, time.Minute), NewResolver(storage), newTestAccounts(t, storage))
	return login, provider
}

// beginState runs Begin and returns the state handed to the provider.
func beginState(t *testing.T, login *GoogleLogin, provider *MockProviderAdapter) string {
	t.Helper()
	target, flow := login.Begin(context.Background())
	require.False(t, flow.Failed())
	assert.Equal(t, "https://accounts.example/consent", target)
	assert.Equal(t, LinkPendingCallback, flow.State())

	calls := provider.Calls
	require.NotEmpty(t, calls)
	return calls[len(calls)-1].Arguments.String(0)
}

func TestGoogleLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("signs in and creates user", func(t *testing.T) {
		t.Parallel()
		storage := newMemStorage()
		login, provider := newGoogleLoginFixture(t, storage)
		provider.On("ResolveProfile", mock.Anything, "code-1").
			Return(googleProfile("g-1", "a@x.com", "https://img/a.png"), nil)

		state := beginState(t, login, provider)
		session, flow := login.Complete(ctx, state, "code-1")
		require.True(t, flow.Linked(), flow.Err())
		assert.Equal(t, "a@x.com", session.User.Email)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, 1, storage.count())
	})

	t.Run("state is single use", func(t *testing.T) {
		t.Parallel()
		login, provider := newGoogleLoginFixture(t, newMemStorage())
		provider.On("ResolveProfile", mock.Anything, "code-1").
			Return(googleProfile("g-1", "a@x.com", ""), nil)

		state := beginState(t, login, provider)
		_, flow := login.Complete(ctx, state, "code-1")
		require.True(t, flow.Linked())

		_, flow = login.Complete(ctx, state, "code-1")
		assert.True(t, flow.Failed())
		assert.Equal(t, ReasonGoogleAuthFailed, flow.Reason())
		assert.ErrorIs(t, flow.Err(), ErrInvalidState)
	})

	t.Run("unknown state", func(t *testing.T) {
		t.Parallel()
		login, provider := newGoogleLoginFixture(t, newMemStorage())

		for _, state := range []string{"", "forged"} {
			_, flow := login.Complete(ctx, state, "code-1")
			assert.Equal(t, ReasonGoogleAuthFailed, flow.Reason())
		}
		provider.AssertNotCalled(t, "ResolveProfile", mock.Anything, mock.Anything)
	})

	t.Run("provider errors map to reasons", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			err    error
			reason FailureReason
		}{
			{ErrInvalidCode, ReasonGoogleAuthFailed},
			{ErrInvalidProviderProfile, ReasonGoogleAuthFailed},
			{errors.Join(ErrProviderUnavailable, errors.New("timeout")), ReasonGoogleAPIError},
		}
		for _, tc := range cases {
			storage := newMemStorage()
			login, provider := newGoogleLoginFixture(t, storage)
			provider.On("ResolveProfile", mock.Anything, "code").Return(ProviderProfile{}, tc.err)

			state := beginState(t, login, provider)
			_, flow := login.Complete(ctx, state, "code")
			assert.Equal(t, tc.reason, flow.Reason(), tc.err.Error())
			assert.Zero(t, storage.count())
		}
	})

	t.Run("email linked to another google account", func(t *testing.T) {
		t.Parallel()
		storage := newMemStorage(&User{ID: "u1", Email: "a@x.com", GoogleID: "g-other"})
		login, provider := newGoogleLoginFixture(t, storage)
		provider.On("ResolveProfile", mock.Anything, "code").Return(googleProfile("g-1", "a@x.com", ""), nil)

		state := beginState(t, login, provider)
		_, flow := login.Complete(ctx, state, "code")
		assert.Equal(t, ReasonGoogleAuthFailed, flow.Reason())
	})

	t.Run("state is url safe", func(t *testing.T) {
		t.Parallel()
		login, provider := newGoogleLoginFixture(t, newMemStorage())
		state := beginState(t, login, provider)
		assert.Equal(t, url.QueryEscape(state), state)
	})
}
