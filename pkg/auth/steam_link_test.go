package auth

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSteamID     = "76561198000000001"
	testCallbackURL = "http://localhost:5000/api/steam/auth/steam/callback"
)

func steamParams() url.Values {
	return url.Values{
		"openid.mode":       {"id_res"},
		"openid.claimed_id": {"https://steamcommunity.com/openid/id/" + testSteamID},
	}
}

func newSteamFixture(t *testing.T, storage *memStorage) (*SteamLinker, *MockSteamProvider, string) {
	t.Helper()
	tokens := newTestTokens(t)
	provider := &MockSteamProvider{}
	linker := NewSteamLinker(tokens, provider, NewResolver(storage), testCallbackURL)

	token, err := tokens.Issue("u1", "a@x.com")
	require.NoError(t, err)
	return linker, provider, token
}

func TestSteamLinker_Start(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("redirects with token in return url", func(t *testing.T) {
		t.Parallel()
		linker, provider, token := newSteamFixture(t, newMemStorage())
		provider.On("AuthURL", mock.AnythingOfType("string")).Return("https://steamcommunity.com/openid/login?x=1", nil)

		target, flow := linker.Start(ctx, token)
		require.False(t, flow.Failed())
		assert.Equal(t, LinkPendingCallback, flow.State())
		assert.Equal(t, "https://steamcommunity.com/openid/login?x=1", target)

		returnTo, err := url.Parse(provider.Calls[0].Arguments.String(0))
		require.NoError(t, err)
		assert.Equal(t, "/api/steam/auth/steam/callback", returnTo.Path)
		assert.Equal(t, token, returnTo.Query().Get("token"))
	})

	t.Run("rejects missing or bad token", func(t *testing.T) {
		t.Parallel()
		linker, provider, _ := newSteamFixture(t, newMemStorage())

		for _, token := range []string{"", "garbage"} {
			target, flow := linker.Start(ctx, token)
			assert.Empty(t, target)
			assert.Equal(t, ReasonAuthError, flow.Reason())
		}
		provider.AssertNotCalled(t, "AuthURL", mock.Anything)
	})
}

func TestSteamLinker_Complete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("links steam account", func(t *testing.T) {
		t.Parallel()
		storage := newMemStorage(&User{ID: "u1", Email: "a@x.com"})
		linker, provider, token := newSteamFixture(t, storage)
		provider.On("VerifyAssertion", mock.Anything, testCallbackURL, mock.Anything).Return(testSteamID, nil)
		provider.On("PlayerExists", mock.Anything, testSteamID).Return(true, nil)

		user, flow := linker.Complete(ctx, token, steamParams())
		require.True(t, flow.Linked(), flow.Err())
		assert.Equal(t, testSteamID, user.SteamID)

		stored, err := storage.FindBySteamID(ctx, testSteamID)
		require.NoError(t, err)
		assert.Equal(t, "u1", stored.ID)
	})

	t.Run("unauthenticated callback writes nothing", func(t *testing.T) {
		t.Parallel()
		storage := newMemStorage(&User{ID: "u1", Email: "a@x.com"})
		linker, provider, _ := newSteamFixture(t, storage)

		_, flow := linker.Complete(ctx, "", steamParams())
		assert.Equal(t, ReasonAuthError, flow.Reason())
		assert.Zero(t, storage.writes.Load())
		provider.AssertNotCalled(t, "VerifyAssertion", mock.Anything, mock.Anything, mock.Anything)
		provider.AssertNotCalled(t, "PlayerExists", mock.Anything, mock.Anything)
	})

	t.Run("failures map to reasons without writes", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			name      string
			verifyErr error
			exists    bool
			existsErr error
			users     []*User
			reason    FailureReason
		}{
			{name: "bad assertion", verifyErr: ErrProviderRejected, reason: ReasonSteamAuthFailed},
			{name: "steam down during verify", verifyErr: errors.Join(ErrProviderUnavailable, errors.New("eof")), reason: ReasonSteamAPIError},
			{name: "unknown player", exists: false, reason: ReasonInvalidSteamID},
			{name: "steam down during lookup", existsErr: errors.New("timeout"), reason: ReasonSteamAPIError},
			{name: "user deleted", exists: true, reason: ReasonUserNotFound},
			{
				name:   "linked elsewhere",
				exists: true,
				users:  []*User{{ID: "u1", Email: "a@x.com"}, {ID: "u2", Email: "b@x.com", SteamID: testSteamID}},
				reason: ReasonSteamAlreadyLinked,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				storage := newMemStorage(tc.users...)
				linker, provider, token := newSteamFixture(t, storage)
				if tc.verifyErr != nil {
					provider.On("VerifyAssertion", mock.Anything, mock.Anything, mock.Anything).Return("", tc.verifyErr)
				} else {
					provider.On("VerifyAssertion", mock.Anything, mock.Anything, mock.Anything).Return(testSteamID, nil)
					provider.On("PlayerExists", mock.Anything, testSteamID).Return(tc.exists, tc.existsErr)
				}

				_, flow := linker.Complete(ctx, token, steamParams())
				assert.True(t, flow.Failed())
				assert.Equal(t, tc.reason, flow.Reason())
				assert.Zero(t, storage.writes.Load())
			})
		}
	})
}
