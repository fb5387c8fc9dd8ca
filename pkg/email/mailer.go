package email

import (
	"context"
	"errors"
	"log/slog"

	"github.com/JhonRainbow6/WebProject/pkg/logger"
	"github.com/JhonRainbow6/WebProject/pkg/validator"
)

// EmailSender sends one email.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

// Validate returns ErrInvalidParams joined with the field errors.
func (p SendEmailParams) Validate() error {
	if err := validator.Apply(
		validator.Required("send_to", p.SendTo),
		validator.ValidEmail("send_to", p.SendTo),
		validator.Required("subject", p.Subject),
		validator.Required("body_html", p.BodyHTML),
	); err != nil {
		return errors.Join(ErrInvalidParams, err)
	}
	return nil
}

// NoopSender validates and drops every email.
type NoopSender struct{}

func (NoopSender) SendEmail(_ context.Context, params SendEmailParams) error {
	return params.Validate()
}

// New picks the sender for cfg: Postmark, then the dev sender, then NoopSender.
func New(cfg Config, log *slog.Logger) (EmailSender, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	switch {
	case cfg.postmarkEnabled():
		log.Info("email sender selected", logger.Component("email"), slog.String("sender", "postmark"))
		return NewPostmarkClient(cfg)
	case cfg.DevDir != "":
		log.Info("email sender selected", logger.Component("email"), slog.String("sender", "dev"), slog.String("dir", cfg.DevDir))
		return NewDevSender(cfg.DevDir), nil
	default:
		log.Warn("email sending disabled", logger.Component("email"))
		return NoopSender{}, nil
	}
}
