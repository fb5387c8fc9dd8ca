package auth

import "time"

// Identity providers.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
	ProviderSteam    = "steam"
)

// Unique fields as reported by DuplicateKeyError.
const (
	FieldEmail    = "email"
	FieldGoogleID = "googleId"
	FieldSteamID  = "steamId"
)

// User is an account. Provider ids are empty when not linked.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	GoogleID     string
	SteamID      string
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// UserUpdate is a partial update. Nil fields are left unchanged.
type UserUpdate struct {
	PasswordHash *string
	GoogleID     *string
	SteamID      *string
	ProfileImage *string
}

func (u UserUpdate) IsEmpty() bool {
	return u.PasswordHash == nil && u.GoogleID == nil && u.SteamID == nil && u.ProfileImage == nil
}

// Apply copies the set fields of upd onto u.
func (u *User) Apply(upd UserUpdate) {
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.GoogleID != nil {
		u.GoogleID = *upd.GoogleID
	}
	if upd.SteamID != nil {
		u.SteamID = *upd.SteamID
	}
	if upd.ProfileImage != nil {
		u.ProfileImage = *upd.ProfileImage
	}
}

// ProviderProfile is what a provider tells us about the person signing in.
type ProviderProfile struct {
	Provider       string
	ProviderUserID string
	Email          string
	EmailVerified  bool
	Name           string
	AvatarURL      string
}

// Session is a freshly issued token and the user it belongs to.
type Session struct {
	Token string
	User  *User
}
