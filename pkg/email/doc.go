// Package email sends transactional email through Postmark, or writes it to
// disk during development.
//
// New picks the sender from Config:
//
//	sender, err := email.New(cfg, log)
//	notifier := email.NewNotifier(sender, cfg, "https://app.example.com")
//	err = notifier.PasswordChanged(ctx, user.Email, time.Now())
//
// With both Postmark tokens set mail goes through Postmark. With EMAIL_DEV_DIR
// set every message becomes a timestamped .html file plus a .json metadata
// file in that directory. Otherwise messages are validated and dropped.
//
// Bodies are templ components from the templates subpackage.
package email
