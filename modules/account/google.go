package account

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/binder"
	"github.com/JhonRainbow6/WebProject/pkg/logger"
	"github.com/JhonRainbow6/WebProject/pkg/metrics"
)

type googleCallbackRequest struct {
	Code  string `query:"code"`
	State string `query:"state"`
	Error string `query:"error"`
}

// GoogleService runs the Google sign-in redirect flow. Every outcome ends
// in a redirect to the frontend callback page.
type GoogleService struct {
	cfg          Config
	login        *auth.GoogleLogin
	codes        *auth.ExchangeCodes
	metrics      *metrics.Metrics
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

type GoogleOption func(*GoogleService)

func WithGoogleMetrics(m *metrics.Metrics) GoogleOption {
	return func(s *GoogleService) {
		s.metrics = m
	}
}

func WithGoogleLogger(l *slog.Logger) GoogleOption {
	return func(s *GoogleService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewGoogleService creates the service. codes is required when
// cfg.RedirectMode is RedirectModeCode.
func NewGoogleService(
	cfg Config,
	login *auth.GoogleLogin,
	codes *auth.ExchangeCodes,
	errorHandler handler.ErrorHandler[handler.Context],
	opts ...GoogleOption,
) *GoogleService {
	s := &GoogleService{
		cfg:          cfg,
		login:        login,
		codes:        codes,
		logger:       logger.Discard(),
		errorHandler: errorHandler,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GoogleService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.begin,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/callback", handler.Wrap(s.callback,
		handler.WithBinder[handler.Context, googleCallbackRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, googleCallbackRequest](s.errorHandler),
	))

	return r
}

func (s *GoogleService) begin(ctx handler.Context, _ struct{}) handler.Response {
	target, flow := s.login.Begin(ctx)
	if flow.Failed() {
		return s.failed(flow.Reason())
	}
	return handler.Redirect(target)
}

func (s *GoogleService) callback(ctx handler.Context, req googleCallbackRequest) handler.Response {
	if req.Error != "" {
		// The user declined consent or Google refused the request.
		s.logger.WarnContext(ctx, "google consent denied",
			logger.Provider(auth.ProviderGoogle),
			logger.Reason(req.Error),
			logger.Component("account"),
		)
		return s.failed(auth.ReasonGoogleAuthFailed)
	}

	session, flow := s.login.Complete(ctx, req.State, req.Code)
	if flow.Failed() {
		return s.failed(flow.Reason())
	}

	params := url.Values{}
	if s.cfg.RedirectMode == RedirectModeCode {
		code, err := s.codes.Issue(ctx, session.Token)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to issue exchange code",
				logger.Error(err),
				logger.UserID(session.User.ID),
				logger.Component("account"),
			)
			return s.failed(auth.ReasonUnknown)
		}
		params.Set("code", code)
	} else {
		params.Set("token", session.Token)
	}

	s.metrics.ProviderFlow(auth.ProviderGoogle, "linked")
	return handler.RedirectWithQuery(s.cfg.frontendURL(s.cfg.CallbackPath), params)
}

func (s *GoogleService) failed(reason auth.FailureReason) handler.Response {
	s.metrics.ProviderFlow(auth.ProviderGoogle, string(reason))
	return handler.RedirectWithQuery(s.cfg.frontendURL(s.cfg.CallbackPath), url.Values{"error": {string(reason)}})
}
