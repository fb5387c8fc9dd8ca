package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JhonRainbow6/WebProject/pkg/logger"
	"github.com/JhonRainbow6/WebProject/pkg/sanitizer"
	"github.com/JhonRainbow6/WebProject/pkg/validator"
)

const (
	// MinPasswordLength is counted in characters.
	MinPasswordLength = 6
	// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
	maxPasswordBytes = 72
)

// AccountService manages local credentials and profile data.
type AccountService struct {
	storage Storage
	hasher  Hasher
	tokens  TokenService
	logger  *slog.Logger
	now     func() time.Time

	afterRegister       func(context.Context, *User) error
	afterPasswordChange func(context.Context, *User) error

	dummyOnce sync.Once
	dummyHash string
}

type AccountOption func(*AccountService)

func WithAccountLogger(l *slog.Logger) AccountOption {
	return func(s *AccountService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAfterRegister sets a hook that runs in the background after a successful registration.
func WithAfterRegister(fn func(context.Context, *User) error) AccountOption {
	return func(s *AccountService) {
		s.afterRegister = fn
	}
}

// WithAfterPasswordChange sets a hook that runs in the background after a password change.
func WithAfterPasswordChange(fn func(context.Context, *User) error) AccountOption {
	return func(s *AccountService) {
		s.afterPasswordChange = fn
	}
}

func withAccountClock(now func() time.Time) AccountOption {
	return func(s *AccountService) {
		s.now = now
	}
}

func NewAccountService(storage Storage, hasher Hasher, tokens TokenService, opts ...AccountOption) *AccountService {
	s := &AccountService{
		storage: storage,
		hasher:  hasher,
		tokens:  tokens,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a password account. It does not start a session.
func (s *AccountService) Register(ctx context.Context, email, password string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.Required("email", email),
		validator.ValidEmail("email", email),
		validator.Required("password", password),
		validator.MinLen("password", password, MinPasswordLength),
		passwordFitsHash("password", password),
	); err != nil {
		return nil, err
	}

	if _, err := s.storage.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index decides races between concurrent registrations.
	if err := s.storage.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		logger.UserID(user.ID),
		logger.Provider(ProviderPassword),
		logger.Component("auth"),
	)

	runHook(s.logger, "afterRegister", user, s.afterRegister)
	return user, nil
}

// Login checks credentials and issues a session. Every failure is ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.storage.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.logger.ErrorContext(ctx, "login lookup failed", logger.Error(err), logger.Component("auth"))
		}
		s.burnHash(password)
		return nil, ErrInvalidCredentials
	}

	if !user.HasPassword() {
		s.burnHash(password)
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.IssueSession(user)
}

// IssueSession signs a token for an already authenticated user.
func (s *AccountService) IssueSession(user *User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

// ResumeSession verifies a token and loads its user.
func (s *AccountService) ResumeSession(ctx context.Context, token string) (*Session, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.GetSelf(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user}, nil
}

// ChangePassword replaces the password after checking the current one.
// Accounts without a password (provider sign-ups) get ErrInvalidCredentials.
func (s *AccountService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if err := validator.Apply(
		validator.Required("currentPassword", current),
		validator.Required("newPassword", next),
		validator.MinLen("newPassword", next, MinPasswordLength),
		passwordFitsHash("newPassword", next),
	); err != nil {
		return err
	}

	user, err := s.storage.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}

	updated, err := s.storage.Update(ctx, userID, UserUpdate{PasswordHash: &hash})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed",
		logger.UserID(userID),
		logger.Component("auth"),
	)

	runHook(s.logger, "afterPasswordChange", updated, s.afterPasswordChange)
	return nil
}

func (s *AccountService) GetSelf(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, ErrUserNotFound
	}
	return s.storage.FindByID(ctx, userID)
}

// SetProfileImage points the profile at an already stored image.
func (s *AccountService) SetProfileImage(ctx context.Context, userID, ref string) (*User, error) {
	if err := validator.Apply(validator.Required("profileImage", ref)); err != nil {
		return nil, err
	}
	return s.storage.Update(ctx, userID, UserUpdate{ProfileImage: &ref})
}

// burnHash spends roughly one verification worth of time so unknown emails
// are not distinguishable by latency.
func (s *AccountService) burnHash(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	s.hasher.Verify(password, s.dummyHash)
}

func passwordFitsHash(field, password string) validator.Rule {
	return validator.Rule{
		Check: func() bool { return len(password) <= maxPasswordBytes },
		Error: validator.ValidationError{
			Field:   field,
			Rule:    validator.RuleTooLong,
			Message: fmt.Sprintf("must be at most %d bytes long", maxPasswordBytes),
			Params:  map[string]any{"max": maxPasswordBytes},
		},
	}
}
