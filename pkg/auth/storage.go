package auth

import "context"

// Storage persists users.
//
// Find methods return ErrUserNotFound when nothing matches. Create and Update
// return an error matching ErrDuplicateKey (usually a *DuplicateKeyError) when
// a unique field collides, and Update returns ErrUserNotFound for unknown ids.
// Emails are passed in canonical form.
type Storage interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)
	FindBySteamID(ctx context.Context, steamID string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, id string, upd UserUpdate) (*User, error)
}

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (Identity, error)
}
