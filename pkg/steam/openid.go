package steam

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	openIDNamespace      = "http://specs.openid.net/auth/2.0"
	openIDIdentifierSelf = "http://specs.openid.net/auth/2.0/identifier_select"
)

var claimedIDPattern = regexp.MustCompile(`^https?://steamcommunity\.com/openid/id/([0-9]+)$`)

// OpenID handles Steam sign-in redirects.
type OpenID struct {
	endpoint   string
	realm      string
	verify     bool
	httpClient *http.Client
}

type OpenIDOption func(*OpenID)

func WithOpenIDHTTPClient(c *http.Client) OpenIDOption {
	return func(o *OpenID) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// NewOpenID creates an OpenID helper. realm is the site root Steam shows to the user.
func NewOpenID(cfg Config, realm string, opts ...OpenIDOption) *OpenID {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	o := &OpenID{
		endpoint:   cfg.OpenIDEndpoint,
		realm:      realm,
		verify:     cfg.VerifyOpenID,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Endpoint is the OpenID provider URL assertions must name as op_endpoint.
func (o *OpenID) Endpoint() string { return o.endpoint }

// AuthURL returns the Steam login URL that sends the user back to returnTo.
func (o *OpenID) AuthURL(returnTo string) (string, error) {
	u, err := url.Parse(o.endpoint)
	if err != nil {
		return "", fmt.Errorf("steam: parse openid endpoint: %w", err)
	}

	q := url.Values{
		"openid.ns":         {openIDNamespace},
		"openid.mode":       {"checkid_setup"},
		"openid.return_to":  {returnTo},
		"openid.realm":      {o.realm},
		"openid.identity":   {openIDIdentifierSelf},
		"openid.claimed_id": {openIDIdentifierSelf},
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// SteamIDFromClaimedID extracts the Steam id, the last path segment of the claimed id.
func SteamIDFromClaimedID(claimedID string) (string, error) {
	m := claimedIDPattern.FindStringSubmatch(claimedID)
	if m == nil {
		return "", fmt.Errorf("%w: unexpected claimed_id %q", ErrInvalidAssertion, claimedID)
	}
	return m[1], nil
}

// Verify checks the callback parameters and returns the Steam id. The
// assertion must name the configured endpoint and return to returnTo (scheme,
// host and path; the query is ours to vary). When verification is enabled the
// assertion is replayed to Steam with check_authentication, so forged
// callbacks are rejected.
func (o *OpenID) Verify(ctx context.Context, returnTo string, params url.Values) (string, error) {
	if mode := params.Get("openid.mode"); mode != "id_res" {
		return "", fmt.Errorf("%w: mode %q", ErrInvalidAssertion, mode)
	}
	if ep := params.Get("openid.op_endpoint"); ep != o.endpoint {
		return "", fmt.Errorf("%w: op_endpoint %q", ErrInvalidAssertion, ep)
	}
	if !sameTarget(params.Get("openid.return_to"), returnTo) {
		return "", fmt.Errorf("%w: return_to %q", ErrInvalidAssertion, params.Get("openid.return_to"))
	}

	steamID, err := SteamIDFromClaimedID(params.Get("openid.claimed_id"))
	if err != nil {
		return "", err
	}

	if !o.verify {
		return steamID, nil
	}

	if err := o.checkAuthentication(ctx, params); err != nil {
		return "", err
	}
	return steamID, nil
}

// sameTarget compares scheme, host and path of two absolute URLs.
func sameTarget(got, want string) bool {
	g, err := url.Parse(got)
	if err != nil || got == "" {
		return false
	}
	w, err := url.Parse(want)
	if err != nil {
		return false
	}
	return strings.EqualFold(g.Scheme, w.Scheme) &&
		strings.EqualFold(g.Host, w.Host) &&
		g.Path == w.Path
}

func (o *OpenID) checkAuthentication(ctx context.Context, params url.Values) error {
	form := url.Values{}
	for k, v := range params {
		if strings.HasPrefix(k, "openid.") {
			form[k] = v
		}
	}
	form.Set("openid.mode", "check_authentication")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("steam: build check_authentication: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: check_authentication: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Method: "openid/check_authentication", StatusCode: resp.StatusCode}
	}

	// Key-value form: one "key:value" pair per line.
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if ok && strings.TrimSpace(key) == "is_valid" {
			if strings.TrimSpace(value) == "true" {
				return nil
			}
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: read check_authentication: %w", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: steam did not confirm the assertion", ErrInvalidAssertion)
}
