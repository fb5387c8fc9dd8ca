package account

import (
	"context"
	"time"

	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/email"
)

// WelcomeNotice is an auth.WithAfterRegister hook.
func WelcomeNotice(n *email.Notifier) func(context.Context, *auth.User) error {
	return func(ctx context.Context, u *auth.User) error {
		return n.Welcome(ctx, u.Email, time.Now().UTC())
	}
}

// PasswordChangedNotice is an auth.WithAfterPasswordChange hook.
func PasswordChangedNotice(n *email.Notifier) func(context.Context, *auth.User) error {
	return func(ctx context.Context, u *auth.User) error {
		return n.PasswordChanged(ctx, u.Email, time.Now().UTC())
	}
}

// ProviderLinkedNotice is an auth.WithAfterLink hook.
func ProviderLinkedNotice(n *email.Notifier) func(context.Context, *auth.User, string) error {
	return func(ctx context.Context, u *auth.User, provider string) error {
		return n.ProviderLinked(ctx, u.Email, provider, time.Now().UTC())
	}
}
