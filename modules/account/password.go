package account

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/binder"
	"github.com/JhonRainbow6/WebProject/pkg/file"
	"github.com/JhonRainbow6/WebProject/pkg/logger"
	"github.com/JhonRainbow6/WebProject/pkg/metrics"
)

// Auth events recorded in metrics.
const (
	eventRegister       = "register"
	eventLogin          = "login"
	eventChangePassword = "change_password"
	eventProfileImage   = "profile_image"
	eventExchange       = "exchange"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// formOverhead is the room left for multipart headers around the image.
const formOverhead = 1 << 20

type profileImageRequest struct {
	Image *multipart.FileHeader `file:"profileImage"`
}

type exchangeRequest struct {
	Code string `json:"code"`
}

// PasswordService serves the local credential routes and the session
// endpoints shared by every sign-in method.
type PasswordService struct {
	accounts     *auth.AccountService
	tokens       auth.TokenService
	files        file.Storage
	codes        *auth.ExchangeCodes
	maxImageSize int64
	metrics      *metrics.Metrics
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

type PasswordOption func(*PasswordService)

// WithExchangeCodes enables POST /exchange.
func WithExchangeCodes(codes *auth.ExchangeCodes) PasswordOption {
	return func(s *PasswordService) {
		s.codes = codes
	}
}

func WithMaxImageSize(n int64) PasswordOption {
	return func(s *PasswordService) {
		if n > 0 {
			s.maxImageSize = n
		}
	}
}

func WithPasswordMetrics(m *metrics.Metrics) PasswordOption {
	return func(s *PasswordService) {
		s.metrics = m
	}
}

func WithPasswordLogger(l *slog.Logger) PasswordOption {
	return func(s *PasswordService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewPasswordService(
	accounts *auth.AccountService,
	tokens auth.TokenService,
	files file.Storage,
	errorHandler handler.ErrorHandler[handler.Context],
	opts ...PasswordOption,
) *PasswordService {
	s := &PasswordService{
		accounts:     accounts,
		tokens:       tokens,
		files:        files,
		maxImageSize: file.DefaultMaxImageSize,
		logger:       logger.Discard(),
		errorHandler: errorHandler,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PasswordService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", handler.Wrap(s.register,
		handler.WithBinder[handler.Context, credentialsRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, credentialsRequest](s.errorHandler),
	))
	r.Post("/login", handler.Wrap(s.login,
		handler.WithBinder[handler.Context, credentialsRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, credentialsRequest](s.errorHandler),
	))
	if s.codes != nil {
		r.Post("/exchange", handler.Wrap(s.exchange,
			handler.WithBinder[handler.Context, exchangeRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, exchangeRequest](s.errorHandler),
		))
	}

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(s.tokens, s.errorHandler))

		r.Get("/user", handler.Wrap(s.user,
			handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
		))
		r.Post("/change-password", handler.Wrap(s.changePassword,
			handler.WithBinder[handler.Context, changePasswordRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, changePasswordRequest](s.errorHandler),
		))
		r.With(LimitBody(s.maxImageSize+formOverhead, s.errorHandler)).Post("/update-profile-image", handler.Wrap(s.updateProfileImage,
			handler.WithBinder[handler.Context, profileImageRequest](binder.Form(s.maxImageSize+formOverhead)),
			handler.WithErrorHandler[handler.Context, profileImageRequest](s.errorHandler),
		))
	})

	return r
}

func (s *PasswordService) register(ctx handler.Context, req credentialsRequest) handler.Response {
	user, err := s.accounts.Register(ctx, req.Email, req.Password)
	s.metrics.AuthEvent(eventRegister, err)
	if err != nil {
		return handler.Fail(mapError(err, onLogin))
	}
	return handler.Created(registerResponse{UserID: user.ID})
}

func (s *PasswordService) login(ctx handler.Context, req credentialsRequest) handler.Response {
	session, err := s.accounts.Login(ctx, req.Email, req.Password)
	s.metrics.AuthEvent(eventLogin, err)
	if err != nil {
		return handler.Fail(mapError(err, onLogin))
	}
	return handler.JSON(newSessionResponse(session))
}

func (s *PasswordService) exchange(ctx handler.Context, req exchangeRequest) handler.Response {
	token, err := s.codes.Redeem(ctx, req.Code)
	if err == nil {
		var session *auth.Session
		session, err = s.accounts.ResumeSession(ctx, token)
		if err == nil {
			s.metrics.AuthEvent(eventExchange, nil)
			return handler.JSON(newSessionResponse(session))
		}
	}
	s.metrics.AuthEvent(eventExchange, err)
	return handler.Fail(mapError(err, onLogin))
}

func (s *PasswordService) user(ctx handler.Context, _ struct{}) handler.Response {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return handler.Fail(handler.ErrUnauthorized)
	}

	user, err := s.accounts.GetSelf(ctx, id.UserID)
	if err != nil {
		return handler.Fail(mapError(err, onLogin))
	}
	return handler.JSON(userResponse{User: newUserView(user)})
}

func (s *PasswordService) changePassword(ctx handler.Context, req changePasswordRequest) handler.Response {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return handler.Fail(handler.ErrUnauthorized)
	}

	err := s.accounts.ChangePassword(ctx, id.UserID, req.CurrentPassword, req.NewPassword)
	s.metrics.AuthEvent(eventChangePassword, err)
	if err != nil {
		return handler.Fail(mapError(err, onChangePassword))
	}
	return handler.JSON(messageResponse{Message: "Password updated successfully"})
}

func (s *PasswordService) updateProfileImage(ctx handler.Context, req profileImageRequest) handler.Response {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return handler.Fail(handler.ErrUnauthorized)
	}
	if req.Image == nil {
		return handler.Fail(imageError(file.ErrNilFileHeader, s.maxImageSize))
	}

	mimeType, err := file.ValidateImage(req.Image, s.maxImageSize)
	if err != nil {
		return handler.Fail(imageError(err, s.maxImageSize))
	}

	current, err := s.accounts.GetSelf(ctx, id.UserID)
	if err != nil {
		return handler.Fail(mapError(err, onLogin))
	}

	key, err := file.ProfileImageKey(id.UserID, req.Image, mimeType)
	if err != nil {
		return handler.Fail(imageError(err, s.maxImageSize))
	}

	stored, err := s.files.Save(ctx, req.Image, key)
	if err != nil {
		s.metrics.AuthEvent(eventProfileImage, err)
		return handler.Fail(ErrImageStorageFailed.Wrap(err))
	}

	user, err := s.accounts.SetProfileImage(ctx, id.UserID, stored.URL)
	s.metrics.AuthEvent(eventProfileImage, err)
	if err != nil {
		if current.ProfileImage != stored.URL {
			s.discard(ctx, stored.Key)
		}
		return handler.Fail(mapError(err, onLogin))
	}

	if previous, ok := s.ownedKey(current.ProfileImage); ok && current.ProfileImage != stored.URL {
		s.discard(ctx, previous)
	}

	return handler.JSON(userResponse{User: newUserView(user)})
}

// ownedKey returns the storage key of ref when ref points into our storage.
// Avatars copied from Google are left alone.
func (s *PasswordService) ownedKey(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	key, ok := strings.CutPrefix(ref, s.files.URL(""))
	return key, ok && key != ""
}

// discard deletes a stored image. Failures only leave an orphaned file.
func (s *PasswordService) discard(ctx handler.Context, key string) {
	if err := s.files.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "failed to delete profile image",
			logger.Error(err),
			slog.String("key", key),
			logger.Component("account"),
		)
	}
}
