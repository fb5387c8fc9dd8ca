package gaming

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/metrics"
	"github.com/JhonRainbow6/WebProject/pkg/steam"
)

// SteamData is the part of the Steam Web API the routes read.
type SteamData interface {
	Library(ctx context.Context, steamID string) ([]steam.Game, error)
	Friends(ctx context.Context, steamID string) ([]steam.Friend, error)
}

// Users loads the caller's account.
type Users interface {
	GetSelf(ctx context.Context, userID string) (*auth.User, error)
}

type gamesResponse struct {
	Games []steam.Game `json:"games"`
}

type friendsResponse struct {
	Friends []steam.Friend `json:"friends"`
}

// SteamService serves the library and friend list of the caller's linked
// Steam account.
type SteamService struct {
	users        Users
	steam        SteamData
	tokens       auth.TokenService
	metrics      *metrics.Metrics
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewSteamService(users Users, data SteamData, tokens auth.TokenService, m *metrics.Metrics, errorHandler handler.ErrorHandler[handler.Context]) *SteamService {
	return &SteamService{users: users, steam: data, tokens: tokens, metrics: m, errorHandler: errorHandler}
}

func (s *SteamService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(auth.Middleware(s.tokens, func(w http.ResponseWriter, r *http.Request, err error) {
		s.errorHandler(handler.NewContext(w, r), handler.ErrUnauthorized.Wrap(err))
	}))

	r.Get("/games", handler.Wrap(s.games,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/friends", handler.Wrap(s.friends,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	return r
}

func (s *SteamService) games(ctx handler.Context, _ struct{}) handler.Response {
	steamID, err := s.linkedSteamID(ctx)
	if err != nil {
		return handler.Fail(err)
	}

	start := time.Now()
	games, err := s.steam.Library(ctx, steamID)
	s.metrics.Upstream("steam", start, err)
	if err != nil {
		return handler.Fail(upstreamError(err, ErrSteamDown))
	}
	if games == nil {
		games = []steam.Game{}
	}
	return handler.JSON(gamesResponse{Games: games})
}

func (s *SteamService) friends(ctx handler.Context, _ struct{}) handler.Response {
	steamID, err := s.linkedSteamID(ctx)
	if err != nil {
		return handler.Fail(err)
	}

	start := time.Now()
	friends, err := s.steam.Friends(ctx, steamID)
	s.metrics.Upstream("steam", start, err)
	if err != nil {
		return handler.Fail(upstreamError(err, ErrSteamDown))
	}
	if friends == nil {
		friends = []steam.Friend{}
	}
	return handler.JSON(friendsResponse{Friends: friends})
}

func (s *SteamService) linkedSteamID(ctx handler.Context) (string, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return "", handler.ErrUnauthorized
	}

	user, err := s.users.GetSelf(ctx, id.UserID)
	if err != nil {
		return "", upstreamError(err, handler.ErrInternalServerError)
	}
	if user.SteamID == "" {
		return "", ErrSteamNotLinked.Wrap(auth.ErrSteamNotLinked)
	}
	return user.SteamID, nil
}
