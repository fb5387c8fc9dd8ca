package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JhonRainbow6/WebProject/pkg/logger"
	"github.com/JhonRainbow6/WebProject/pkg/sanitizer"
)

// Resolution says how a provider sign-in was matched.
type Resolution string

const (
	ResolvedExisting Resolution = "existing" // provider id already known
	ResolvedLinked   Resolution = "linked"   // provider attached to an account found by email
	ResolvedCreated  Resolution = "created"  // new account
)

// Resolver maps provider identities onto users.
type Resolver struct {
	storage   Storage
	logger    *slog.Logger
	now       func() time.Time
	afterLink func(ctx context.Context, user *User, provider string) error
}

type ResolverOption func(*Resolver)

func WithResolverLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithAfterLink sets a hook that runs in the background when a provider is
// attached to an existing account. New accounts do not trigger it.
func WithAfterLink(fn func(ctx context.Context, user *User, provider string) error) ResolverOption {
	return func(r *Resolver) {
		r.afterLink = fn
	}
}

func NewResolver(storage Storage, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		storage: storage,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveGoogle finds the account for a Google profile, trying the Google id,
// then the email, then creating a new account. Running it twice with the same
// profile yields the same user.
func (r *Resolver) ResolveGoogle(ctx context.Context, p ProviderProfile) (*User, Resolution, error) {
	email := sanitizer.NormalizeEmail(p.Email)
	if p.ProviderUserID == "" || email == "" {
		return nil, "", ErrInvalidProviderProfile
	}

	user, res, err := r.resolveGoogle(ctx, p.ProviderUserID, email, p.AvatarURL)
	if errors.Is(err, ErrDuplicateKey) {
		// A concurrent first sign-in won the create; its record is now findable.
		user, res, err = r.resolveGoogle(ctx, p.ProviderUserID, email, p.AvatarURL)
	}
	if err != nil {
		return nil, "", err
	}

	r.logger.InfoContext(ctx, "google identity resolved",
		logger.UserID(user.ID),
		logger.Provider(ProviderGoogle),
		slog.String("resolution", string(res)),
		logger.Component("auth"),
	)

	if res == ResolvedLinked && r.afterLink != nil {
		hook := r.afterLink
		runHook(r.logger, "afterLink", user, func(ctx context.Context, u *User) error {
			return hook(ctx, u, ProviderGoogle)
		})
	}

	return user, res, nil
}

func (r *Resolver) resolveGoogle(ctx context.Context, googleID, email, avatar string) (*User, Resolution, error) {
	user, err := r.storage.FindByGoogleID(ctx, googleID)
	if err == nil {
		return user, ResolvedExisting, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("find by google id: %w", err)
	}

	user, err = r.storage.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.GoogleID != "" && user.GoogleID != googleID {
			return nil, "", ErrProviderAlreadyLinked
		}

		upd := UserUpdate{GoogleID: &googleID}
		if user.ProfileImage == "" && avatar != "" {
			upd.ProfileImage = &avatar
		}

		linked, err := r.storage.Update(ctx, user.ID, upd)
		if err != nil {
			return nil, "", fmt.Errorf("link google: %w", err)
		}
		return linked, ResolvedLinked, nil

	case !errors.Is(err, ErrUserNotFound):
		return nil, "", fmt.Errorf("find by email: %w", err)
	}

	now := r.now()
	user = &User{
		ID:           uuid.NewString(),
		Email:        email,
		GoogleID:     googleID,
		ProfileImage: avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.storage.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create google user: %w", err)
	}
	return user, ResolvedCreated, nil
}

// LinkSteam attaches a verified Steam id to an existing account.
// Relinking the same id is a no-op; an id owned by someone else is ErrProviderAlreadyLinked.
func (r *Resolver) LinkSteam(ctx context.Context, userID, steamID string) (*User, error) {
	if steamID == "" {
		return nil, ErrInvalidProviderID
	}

	user, err := r.storage.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.SteamID == steamID {
		return user, nil
	}

	owner, err := r.storage.FindBySteamID(ctx, steamID)
	switch {
	case err == nil && owner.ID != userID:
		return nil, ErrProviderAlreadyLinked
	case err != nil && !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("find by steam id: %w", err)
	}

	linked, err := r.storage.Update(ctx, userID, UserUpdate{SteamID: &steamID})
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, ErrProviderAlreadyLinked
		}
		return nil, err
	}

	r.logger.InfoContext(ctx, "steam account linked",
		logger.UserID(userID),
		logger.Provider(ProviderSteam),
		logger.Component("auth"),
	)

	if r.afterLink != nil {
		hook := r.afterLink
		runHook(r.logger, "afterLink", linked, func(ctx context.Context, u *User) error {
			return hook(ctx, u, ProviderSteam)
		})
	}

	return linked, nil
}
