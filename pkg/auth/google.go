package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleOAuthConfig holds configuration for the Google OAuth provider.
type GoogleOAuthConfig struct {
	ClientID     string        `env:"GOOGLE_CLIENT_ID,required"`
	ClientSecret string        `env:"GOOGLE_CLIENT_SECRET,required"`
	RedirectURL  string        `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:5000/api/auth/google/callback"`
	Scopes       []string      `env:"GOOGLE_SCOPES" envSeparator:"," envDefault:"openid,profile,email"`
	StateTTL     time.Duration `env:"GOOGLE_STATE_TTL" envDefault:"10m"`
	Timeout      time.Duration `env:"GOOGLE_TIMEOUT" envDefault:"10s"`
}

// ProviderAdapter hides the OAuth details of one provider.
type ProviderAdapter interface {
	ProviderID() string
	AuthURL(state string) string
	// ResolveProfile returns ErrInvalidCode when the provider refuses the code
	// and ErrProviderUnavailable when it cannot be reached.
	ResolveProfile(ctx context.Context, code string) (ProviderProfile, error)
}

type googleAdapter struct {
	conf        *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

type GoogleOption func(*googleAdapter)

// WithGoogleEndpoint overrides the OAuth and userinfo endpoints.
func WithGoogleEndpoint(endpoint oauth2.Endpoint, userInfoURL string) GoogleOption {
	return func(a *googleAdapter) {
		a.conf.Endpoint = endpoint
		a.userInfoURL = userInfoURL
	}
}

func WithGoogleHTTPClient(c *http.Client) GoogleOption {
	return func(a *googleAdapter) {
		if c != nil {
			a.httpClient = c
		}
	}
}

func NewGoogleAdapter(cfg GoogleOAuthConfig, opts ...GoogleOption) ProviderAdapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	a := &googleAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient:  &http.Client{Timeout: timeout},
		userInfoURL: googleUserInfoURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *googleAdapter) ProviderID() string {
	return ProviderGoogle
}

func (a *googleAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

func (a *googleAdapter) ResolveProfile(ctx context.Context, code string) (ProviderProfile, error) {
	if code == "" {
		return ProviderProfile{}, ErrInvalidCode
	}

	// oauth2 picks up the client from the context for the token request.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)

	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil && re.Response.StatusCode < http.StatusInternalServerError {
			return ProviderProfile{}, ErrInvalidCode
		}
		return ProviderProfile{}, fmt.Errorf("%w: token exchange: %w", ErrProviderUnavailable, err)
	}

	u, err := a.fetchUser(ctx, tok.AccessToken)
	if err != nil {
		return ProviderProfile{}, fmt.Errorf("%w: fetch google user: %w", ErrProviderUnavailable, err)
	}
	if u.ID == "" || u.Email == "" {
		return ProviderProfile{}, ErrInvalidProviderProfile
	}

	return ProviderProfile{
		Provider:       ProviderGoogle,
		ProviderUserID: u.ID,
		Email:          u.Email,
		EmailVerified:  u.VerifiedEmail,
		Name:           u.Name,
		AvatarURL:      u.Picture,
	}, nil
}

func (a *googleAdapter) fetchUser(ctx context.Context, accessToken string) (*googleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned status %d", resp.StatusCode)
	}

	var user googleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

var _ ProviderAdapter = (*googleAdapter)(nil)
