package email

// Config holds email settings. Postmark is used when both tokens are set,
// the dev sender when DevDir is set, and nothing is sent otherwise.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@capgames.local"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@capgames.local"`
	DevDir               string `env:"EMAIL_DEV_DIR"`
	AppName              string `env:"EMAIL_APP_NAME" envDefault:"C.A.P for Games"`
}

func (c Config) postmarkEnabled() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
