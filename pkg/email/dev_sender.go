package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// DevSender drops every message into dir as one JSON file, so notices can be
// inspected locally without a mail provider.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender creates dir on first send.
func NewDevSender(dir string) EmailSender {
	return &DevSender{dir: dir, now: time.Now}
}

type outboxMessage struct {
	ID     string    `json:"id"`
	SentAt time.Time `json:"sent_at"`
	SendEmailParams
}

func (d *DevSender) SendEmail(_ context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o750); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSendEmail, err)
	}

	msg := outboxMessage{ID: uuid.NewString(), SentAt: d.now().UTC(), SendEmailParams: params}
	data, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSendEmail, err)
	}

	label := params.Tag
	if label == "" {
		label = params.Subject
	}
	name := fmt.Sprintf("%s_%s.json", msg.SentAt.Format("20060102T150405.000000"), outboxLabel(label))
	if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSendEmail, err)
	}
	return nil
}

// outboxLabel turns a tag or subject into a short lowercase file name part.
func outboxLabel(s string) string {
	const maxLen = 64
	label := strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'):
			return unicode.ToLower(r)
		}
		return -1
	}, s)
	if len(label) > maxLen {
		label = label[:maxLen]
	}
	if label == "" {
		return "message"
	}
	return label
}
