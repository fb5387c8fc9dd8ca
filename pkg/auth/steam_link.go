package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"

	"github.com/JhonRainbow6/WebProject/pkg/logger"
)

// SteamProvider is the part of Steam the link flow needs.
type SteamProvider interface {
	// AuthURL builds the OpenID login URL that returns to returnTo.
	AuthURL(returnTo string) (string, error)
	// VerifyAssertion checks the OpenID callback and returns the Steam id.
	// The assertion must have been issued for returnTo. It returns
	// ErrProviderRejected for bad assertions and ErrProviderUnavailable
	// when Steam cannot be reached.
	VerifyAssertion(ctx context.Context, returnTo string, params url.Values) (string, error)
	// PlayerExists reports whether Steam knows the id.
	// Errors mean Steam could not answer.
	PlayerExists(ctx context.Context, steamID string) (bool, error)
}

// SteamLinker attaches Steam accounts to signed-in users.
type SteamLinker struct {
	tokens      TokenService
	provider    SteamProvider
	resolver    *Resolver
	callbackURL string
	logger      *slog.Logger
}

type SteamLinkerOption func(*SteamLinker)

func WithSteamLinkerLogger(l *slog.Logger) SteamLinkerOption {
	return func(s *SteamLinker) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSteamLinker creates a linker. callbackURL is the absolute URL of the
// Steam callback route; the session token is appended to it.
func NewSteamLinker(tokens TokenService, provider SteamProvider, resolver *Resolver, callbackURL string, opts ...SteamLinkerOption) *SteamLinker {
	s := &SteamLinker{
		tokens:      tokens,
		provider:    provider,
		resolver:    resolver,
		callbackURL: callbackURL,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start returns the Steam login URL for the holder of token.
func (s *SteamLinker) Start(ctx context.Context, token string) (string, *LinkFlow) {
	flow := NewLinkFlow(ProviderSteam)

	if _, err := s.tokens.Verify(token); err != nil {
		s.fail(ctx, flow, ReasonAuthError, err)
		return "", flow
	}
	_ = flow.begin(ctx)

	returnTo, err := url.Parse(s.callbackURL)
	if err != nil {
		s.fail(ctx, flow, ReasonUnknown, err)
		return "", flow
	}
	q := returnTo.Query()
	q.Set("token", token)
	returnTo.RawQuery = q.Encode()

	target, err := s.provider.AuthURL(returnTo.String())
	if err != nil {
		s.fail(ctx, flow, ReasonUnknown, err)
		return "", flow
	}

	_ = flow.redirect(ctx)
	return target, flow
}

// Complete verifies the OpenID callback and links the Steam id to the token
// holder. Nothing is written unless every check passes.
func (s *SteamLinker) Complete(ctx context.Context, token string, params url.Values) (*User, *LinkFlow) {
	flow := NewLinkFlow(ProviderSteam)

	id, err := s.tokens.Verify(token)
	if err != nil {
		s.fail(ctx, flow, ReasonAuthError, err)
		return nil, flow
	}
	_ = flow.callback(ctx)

	steamID, err := s.provider.VerifyAssertion(ctx, s.callbackURL, params)
	if err != nil {
		reason := ReasonSteamAuthFailed
		if errors.Is(err, ErrProviderUnavailable) {
			reason = ReasonSteamAPIError
		}
		s.fail(ctx, flow, reason, err)
		return nil, flow
	}

	exists, err := s.provider.PlayerExists(ctx, steamID)
	if err != nil {
		s.fail(ctx, flow, ReasonSteamAPIError, err)
		return nil, flow
	}
	if !exists {
		s.fail(ctx, flow, ReasonInvalidSteamID, ErrInvalidProviderID)
		return nil, flow
	}

	user, err := s.resolver.LinkSteam(ctx, id.UserID, steamID)
	if err != nil {
		reason := ReasonUnknown
		switch {
		case errors.Is(err, ErrUserNotFound):
			reason = ReasonUserNotFound
		case errors.Is(err, ErrProviderAlreadyLinked):
			reason = ReasonSteamAlreadyLinked
		case errors.Is(err, ErrInvalidProviderID):
			reason = ReasonInvalidSteamID
		}
		s.fail(ctx, flow, reason, err)
		return nil, flow
	}

	_ = flow.link(ctx)
	return user, flow
}

func (s *SteamLinker) fail(ctx context.Context, flow *LinkFlow, reason FailureReason, err error) {
	flow.fail(ctx, reason, err)

	level := slog.LevelWarn
	if reason == ReasonUnknown || reason == ReasonSteamAPIError {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "steam link failed",
		logger.Provider(ProviderSteam),
		logger.Reason(string(reason)),
		logger.Error(err),
		logger.Component("auth"),
	)
}
