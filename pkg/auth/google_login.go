package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/JhonRainbow6/WebProject/pkg/logger"
)

const stateKeyPrefix = "oauth_state:"

// GoogleLogin runs the Google sign-in redirect flow.
type GoogleLogin struct {
	provider ProviderAdapter
	states   OnceStore
	resolver *Resolver
	accounts *AccountService
	stateTTL time.Duration
	logger   *slog.Logger
}

type GoogleLoginOption func(*GoogleLogin)

func WithStateTTL(ttl time.Duration) GoogleLoginOption {
	return func(g *GoogleLogin) {
		if ttl > 0 {
			g.stateTTL = ttl
		}
	}
}

func WithGoogleLoginLogger(l *slog.Logger) GoogleLoginOption {
	return func(g *GoogleLogin) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewGoogleLogin(provider ProviderAdapter, states OnceStore, resolver *Resolver, accounts *AccountService, opts ...GoogleLoginOption) *GoogleLogin {
	g := &GoogleLogin{
		provider: provider,
		states:   states,
		resolver: resolver,
		accounts: accounts,
		stateTTL: 10 * time.Minute,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Begin returns the consent URL. On failure the flow carries the reason and
// the URL is empty.
func (g *GoogleLogin) Begin(ctx context.Context) (string, *LinkFlow) {
	flow := NewLinkFlow(ProviderGoogle)
	_ = flow.begin(ctx)

	state, err := randomKey(32)
	if err != nil {
		g.fail(ctx, flow, ReasonUnknown, err)
		return "", flow
	}

	stored, err := g.states.Put(ctx, stateKeyPrefix+state, "1", g.stateTTL)
	if err != nil || !stored {
		g.fail(ctx, flow, ReasonUnknown, errors.Join(ErrInvalidState, err))
		return "", flow
	}

	_ = flow.redirect(ctx)
	return g.provider.AuthURL(state), flow
}

// Complete handles the provider callback. The state must have been issued by
// Begin and not used before.
func (g *GoogleLogin) Complete(ctx context.Context, state, code string) (*Session, *LinkFlow) {
	flow := NewLinkFlow(ProviderGoogle)

	if state == "" {
		g.fail(ctx, flow, ReasonGoogleAuthFailed, ErrInvalidState)
		return nil, flow
	}

	_, ok, err := g.states.Take(ctx, stateKeyPrefix+state)
	switch {
	case err != nil:
		g.fail(ctx, flow, ReasonUnknown, err)
		return nil, flow
	case !ok:
		g.fail(ctx, flow, ReasonGoogleAuthFailed, ErrInvalidState)
		return nil, flow
	}
	_ = flow.callback(ctx)

	profile, err := g.provider.ResolveProfile(ctx, code)
	if err != nil {
		reason := ReasonGoogleAPIError
		if errors.Is(err, ErrInvalidCode) || errors.Is(err, ErrInvalidProviderProfile) {
			reason = ReasonGoogleAuthFailed
		}
		g.fail(ctx, flow, reason, err)
		return nil, flow
	}

	user, _, err := g.resolver.ResolveGoogle(ctx, profile)
	if err != nil {
		reason := ReasonUnknown
		if errors.Is(err, ErrProviderAlreadyLinked) || errors.Is(err, ErrInvalidProviderProfile) {
			reason = ReasonGoogleAuthFailed
		}
		g.fail(ctx, flow, reason, err)
		return nil, flow
	}

	session, err := g.accounts.IssueSession(user)
	if err != nil {
		g.fail(ctx, flow, ReasonUnknown, err)
		return nil, flow
	}

	_ = flow.link(ctx)
	return session, flow
}

func (g *GoogleLogin) fail(ctx context.Context, flow *LinkFlow, reason FailureReason, err error) {
	flow.fail(ctx, reason, err)

	level := slog.LevelWarn
	if reason == ReasonUnknown || reason == ReasonGoogleAPIError {
		level = slog.LevelError
	}
	g.logger.Log(ctx, level, "google sign-in failed",
		logger.Provider(ProviderGoogle),
		logger.Reason(string(reason)),
		logger.Error(err),
		logger.Component("auth"),
	)
}
