package auth

import (
	"context"

	"github.com/JhonRainbow6/WebProject/pkg/statemachine"
)

// LinkState is a step of a provider redirect flow.
type LinkState = statemachine.State

const (
	LinkUnauthenticated         LinkState = "unauthenticated"
	LinkPendingProviderRedirect LinkState = "pending_provider_redirect"
	LinkPendingCallback         LinkState = "pending_callback"
	LinkLinked                  LinkState = "linked"
	LinkFailed                  LinkState = "failed"
)

// FailureReason is the tag sent to the frontend when a flow fails.
type FailureReason string

const (
	ReasonGoogleAuthFailed   FailureReason = "google_auth_failed"
	ReasonGoogleAPIError     FailureReason = "google_api_error"
	ReasonSteamAuthFailed    FailureReason = "steam_auth_failed"
	ReasonAuthError          FailureReason = "auth_error"
	ReasonInvalidSteamID     FailureReason = "invalid_steam_id"
	ReasonSteamAPIError      FailureReason = "steam_api_error"
	ReasonUserNotFound       FailureReason = "user_not_found"
	ReasonSteamAlreadyLinked FailureReason = "steam_already_linked"
	ReasonUnknown            FailureReason = "unknown_error"
)

const (
	eventBegin    statemachine.Event = "begin"
	eventRedirect statemachine.Event = "redirect"
	eventCallback statemachine.Event = "callback"
	eventLink     statemachine.Event = "link"
	eventFail     statemachine.Event = "fail"
)

// A start request walks unauthenticated -> pending_provider_redirect -> pending_callback.
// A callback request walks unauthenticated -> pending_callback -> linked.
// Any non-terminal state may fail.
var linkFlowDefinition = statemachine.MustDefine(
	statemachine.WithTransition(LinkUnauthenticated, LinkPendingProviderRedirect, eventBegin),
	statemachine.WithTransition(LinkPendingProviderRedirect, LinkPendingCallback, eventRedirect),
	statemachine.WithTransition(LinkUnauthenticated, LinkPendingCallback, eventCallback),
	statemachine.WithTransition(LinkPendingCallback, LinkLinked, eventLink),
	statemachine.WithTransitionFrom(
		[]LinkState{LinkUnauthenticated, LinkPendingProviderRedirect, LinkPendingCallback},
		LinkFailed, eventFail,
	),
)

// LinkFlow tracks one request of a provider redirect flow.
type LinkFlow struct {
	Provider string

	m      *statemachine.Machine
	reason FailureReason
	err    error
}

func NewLinkFlow(provider string) *LinkFlow {
	return &LinkFlow{
		Provider: provider,
		m:        linkFlowDefinition.Start(LinkUnauthenticated),
	}
}

func (f *LinkFlow) State() LinkState { return f.m.Current() }

// Reason is empty unless the flow failed.
func (f *LinkFlow) Reason() FailureReason { return f.reason }

// Err is the underlying cause of a failure, if any.
func (f *LinkFlow) Err() error { return f.err }

func (f *LinkFlow) Failed() bool { return f.State() == LinkFailed }

func (f *LinkFlow) Linked() bool { return f.State() == LinkLinked }

// Steps lists the transitions taken, oldest first.
func (f *LinkFlow) Steps() []statemachine.Step { return f.m.History() }

func (f *LinkFlow) begin(ctx context.Context) error    { return f.m.Fire(ctx, eventBegin, nil) }
func (f *LinkFlow) redirect(ctx context.Context) error { return f.m.Fire(ctx, eventRedirect, nil) }
func (f *LinkFlow) callback(ctx context.Context) error { return f.m.Fire(ctx, eventCallback, nil) }
func (f *LinkFlow) link(ctx context.Context) error     { return f.m.Fire(ctx, eventLink, nil) }

// fail moves the flow to LinkFailed. A flow that already ended keeps its outcome.
func (f *LinkFlow) fail(ctx context.Context, reason FailureReason, cause error) {
	if err := f.m.Fire(ctx, eventFail, nil); err != nil {
		return
	}
	if reason == "" {
		reason = ReasonUnknown
	}
	f.reason = reason
	f.err = cause
}
