package account

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/jwt"
	"github.com/JhonRainbow6/WebProject/pkg/metrics"
	"github.com/JhonRainbow6/WebProject/pkg/steam"
)

// steamProvider adapts the Steam OpenID endpoint and Web API to auth.SteamProvider.
type steamProvider struct {
	openid  *steam.OpenID
	client  *steam.Client
	metrics *metrics.Metrics
}

// NewSteamProvider combines OpenID verification with the player lookup.
func NewSteamProvider(openid *steam.OpenID, client *steam.Client, m *metrics.Metrics) auth.SteamProvider {
	return &steamProvider{openid: openid, client: client, metrics: m}
}

func (p *steamProvider) AuthURL(returnTo string) (string, error) {
	return p.openid.AuthURL(returnTo)
}

func (p *steamProvider) VerifyAssertion(ctx context.Context, returnTo string, params url.Values) (string, error) {
	start := time.Now()
	steamID, err := p.openid.Verify(ctx, returnTo, params)
	switch {
	case err == nil:
		p.metrics.Upstream("steam_openid", start, nil)
		return steamID, nil
	case errors.Is(err, steam.ErrInvalidAssertion):
		p.metrics.Upstream("steam_openid", start, nil)
		return "", fmt.Errorf("%w: %w", auth.ErrProviderRejected, err)
	default:
		p.metrics.Upstream("steam_openid", start, err)
		return "", fmt.Errorf("%w: %w", auth.ErrProviderUnavailable, err)
	}
}

func (p *steamProvider) PlayerExists(ctx context.Context, steamID string) (bool, error) {
	start := time.Now()
	ok, err := p.client.PlayerExists(ctx, steamID)
	p.metrics.Upstream("steam", start, err)
	if err != nil {
		return false, fmt.Errorf("%w: %w", auth.ErrProviderUnavailable, err)
	}
	return ok, nil
}

// SteamService links a Steam account to the signed-in user. Both routes
// answer with redirects to the frontend profile page.
type SteamService struct {
	cfg          Config
	linker       *auth.SteamLinker
	metrics      *metrics.Metrics
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewSteamService(cfg Config, linker *auth.SteamLinker, m *metrics.Metrics, errorHandler handler.ErrorHandler[handler.Context]) *SteamService {
	return &SteamService{cfg: cfg, linker: linker, metrics: m, errorHandler: errorHandler}
}

func (s *SteamService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/steam", handler.Wrap(s.start,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/steam/callback", handler.Wrap(s.callback,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	return r
}

func (s *SteamService) start(ctx handler.Context, _ struct{}) handler.Response {
	token, _ := jwt.DefaultExtractor(ctx.Request())

	target, flow := s.linker.Start(ctx, token)
	if flow.Failed() {
		return s.result(url.Values{"error": {string(flow.Reason())}}, string(flow.Reason()))
	}
	return handler.Redirect(target)
}

func (s *SteamService) callback(ctx handler.Context, _ struct{}) handler.Response {
	query := ctx.Request().URL.Query()
	token, _ := jwt.DefaultExtractor(ctx.Request())

	_, flow := s.linker.Complete(ctx, token, openIDParams(query))
	if flow.Failed() {
		return s.result(url.Values{"error": {string(flow.Reason())}}, string(flow.Reason()))
	}
	return s.result(url.Values{"success": {"steam_linked"}}, "linked")
}

func (s *SteamService) result(params url.Values, outcome string) handler.Response {
	s.metrics.ProviderFlow(auth.ProviderSteam, outcome)
	return handler.RedirectWithQuery(s.cfg.frontendURL(s.cfg.SteamResultPath), params)
}

// openIDParams keeps only the openid.* parameters of the callback.
func openIDParams(query url.Values) url.Values {
	params := url.Values{}
	for k, v := range query {
		if strings.HasPrefix(k, "openid.") {
			params[k] = v
		}
	}
	return params
}
