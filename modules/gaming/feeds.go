package gaming

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/pkg/metrics"
)

// DealsSource returns the current Ubisoft store deals as JSON.
type DealsSource interface {
	UbisoftDeals(ctx context.Context) (json.RawMessage, error)
}

// NewsSource returns the gaming news feed as JSON.
type NewsSource interface {
	GamingNews(ctx context.Context) (json.RawMessage, error)
}

// DealsService passes CheapShark replies through unchanged.
type DealsService struct {
	source       DealsSource
	metrics      *metrics.Metrics
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewDealsService(source DealsSource, m *metrics.Metrics, errorHandler handler.ErrorHandler[handler.Context]) *DealsService {
	return &DealsService{source: source, metrics: m, errorHandler: errorHandler}
}

func (s *DealsService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/ubisoft", handler.Wrap(s.ubisoft,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	return r
}

func (s *DealsService) ubisoft(ctx handler.Context, _ struct{}) handler.Response {
	start := time.Now()
	body, err := s.source.UbisoftDeals(ctx)
	s.metrics.Upstream("cheapshark", start, err)
	if err != nil {
		return handler.Fail(upstreamError(err, ErrDealsDown))
	}
	return handler.RawJSON(body)
}

// NewsService passes NewsAPI replies through unchanged.
type NewsService struct {
	source       NewsSource
	metrics      *metrics.Metrics
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewNewsService(source NewsSource, m *metrics.Metrics, errorHandler handler.ErrorHandler[handler.Context]) *NewsService {
	return &NewsService{source: source, metrics: m, errorHandler: errorHandler}
}

func (s *NewsService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/gaming", handler.Wrap(s.gaming,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	return r
}

func (s *NewsService) gaming(ctx handler.Context, _ struct{}) handler.Response {
	start := time.Now()
	body, err := s.source.GamingNews(ctx)
	s.metrics.Upstream("newsapi", start, err)
	if err != nil {
		return handler.Fail(upstreamError(err, ErrNewsDown))
	}
	return handler.RawJSON(body)
}
