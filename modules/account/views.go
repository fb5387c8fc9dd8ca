package account

import (
	"time"

	"github.com/JhonRainbow6/WebProject/pkg/auth"
)

// UserView is the public shape of a user. It never carries the password hash.
type UserView struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	GoogleID     string    `json:"googleId,omitempty"`
	SteamID      string    `json:"steamId,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	HasPassword  bool      `json:"hasPassword"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func newUserView(u *auth.User) UserView {
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		GoogleID:     u.GoogleID,
		SteamID:      u.SteamID,
		ProfileImage: u.ProfileImage,
		HasPassword:  u.HasPassword(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

type userResponse struct {
	User UserView `json:"user"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  sessionUser `json:"user"`
}

func newSessionResponse(s *auth.Session) sessionResponse {
	return sessionResponse{
		Token: s.Token,
		User:  sessionUser{ID: s.User.ID, Email: s.User.Email},
	}
}

type registerResponse struct {
	UserID string `json:"userId"`
}

type messageResponse struct {
	Message string `json:"message"`
}
