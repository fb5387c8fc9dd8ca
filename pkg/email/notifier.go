package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JhonRainbow6/WebProject/pkg/email/templates"
)

// Tags attached to account notices.
const (
	TagWelcome         = "account-welcome"
	TagPasswordChanged = "security-password-changed"
	TagProviderLinked  = "security-provider-linked"
)

// Notifier sends account security notices.
type Notifier struct {
	sender      EmailSender
	appName     string
	support     string
	frontendURL string
}

// NewNotifier uses cfg for the app name and support address. frontendURL is
// the base of the "review account" link; an empty value drops the link.
func NewNotifier(sender EmailSender, cfg Config, frontendURL string) *Notifier {
	return &Notifier{
		sender:      sender,
		appName:     cfg.AppName,
		support:     cfg.SupportEmail,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Welcome confirms a new password account.
func (n *Notifier) Welcome(ctx context.Context, to string, at time.Time) error {
	return n.send(ctx, to, TagWelcome, templates.Notice{
		Title: "Welcome to " + n.appName,
		Paragraphs: []string{
			"Your account was created with this email address.",
			"Link Steam from your profile to see your library and friends.",
		},
		OccurredAt: at,
	})
}

// PasswordChanged tells the account owner their password was replaced.
func (n *Notifier) PasswordChanged(ctx context.Context, to string, at time.Time) error {
	return n.send(ctx, to, TagPasswordChanged, templates.Notice{
		Title: "Your password was changed",
		Paragraphs: []string{
			"The password of your " + n.appName + " account was just changed.",
			"You can keep using your new password to sign in.",
		},
		OccurredAt: at,
	})
}

// ProviderLinked tells the account owner a sign-in provider was attached.
func (n *Notifier) ProviderLinked(ctx context.Context, to, provider string, at time.Time) error {
	name := providerName(provider)
	return n.send(ctx, to, TagProviderLinked, templates.Notice{
		Title: name + " was linked to your account",
		Paragraphs: []string{
			fmt.Sprintf("Your %s account is now connected to %s.", n.appName, name),
		},
		OccurredAt: at,
	})
}

func (n *Notifier) send(ctx context.Context, to, tag string, notice templates.Notice) error {
	notice.AppName = n.appName
	notice.Support = n.support
	if n.frontendURL != "" {
		notice.ActionURL = n.frontendURL + "/profile"
		notice.ActionLabel = "Review your account"
	}

	body, err := templates.Render(ctx, templates.SecurityNotice(notice))
	if err != nil {
		return fmt.Errorf("render %s notice: %w", tag, err)
	}

	return n.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  notice.Title,
		BodyHTML: body,
		Tag:      tag,
	})
}

func providerName(provider string) string {
	switch provider {
	case "google":
		return "Google"
	case "steam":
		return "Steam"
	case "":
		return "A sign-in provider"
	}
	return strings.ToUpper(provider[:1]) + provider[1:]
}
