package gaming

import (
	"context"
	"errors"
	"net/http"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/steam"
)

var (
	ErrSteamNotLinked  = handler.NewHTTPError(http.StatusBadRequest, "steam_not_linked", "No Steam account linked")
	ErrFriendsPrivate  = handler.NewHTTPError(http.StatusForbidden, "friends_private", "friend list is private")
	ErrSteamDown       = handler.NewHTTPError(http.StatusBadGateway, "steam_unavailable", "Steam is unavailable")
	ErrDealsDown       = handler.NewHTTPError(http.StatusBadGateway, "deals_unavailable", "Could not load deals")
	ErrNewsDown        = handler.NewHTTPError(http.StatusBadGateway, "news_unavailable", "Could not load news")
	ErrUserGone        = handler.NewHTTPError(http.StatusNotFound, "user_not_found", "User not found")
	errRequestCanceled = handler.NewHTTPError(499, "request_canceled", "Request canceled")
)

// upstreamError maps a failed third-party call to down. A client that went
// away is not the upstream's fault.
func upstreamError(err error, down handler.HTTPError) error {
	switch {
	case errors.Is(err, context.Canceled):
		return errRequestCanceled.Wrap(err)
	case errors.Is(err, steam.ErrPrivateProfile):
		return ErrFriendsPrivate.Wrap(err)
	case errors.Is(err, auth.ErrUserNotFound):
		return ErrUserGone.Wrap(err)
	}
	return down.Wrap(err)
}
