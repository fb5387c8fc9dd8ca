package steam

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

const defaultFriendName = "Steam user"

// Friend is a friend-list entry joined with its public profile.
type Friend struct {
	SteamID    string `json:"steamId"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	Status     int    `json:"status"`
	LastOnline *int64 `json:"lastOnline"`
	ProfileURL string `json:"profileUrl"`
}

// FriendIDs returns the ids on the user's friend list.
// A private list is ErrPrivateProfile.
func (c *Client) FriendIDs(ctx context.Context, steamID string) ([]string, error) {
	var body struct {
		FriendsList *struct {
			Friends []struct {
				SteamID string `json:"steamid"`
			} `json:"friends"`
		} `json:"friendslist"`
	}

	params := url.Values{"steamid": {steamID}, "relationship": {"friend"}}
	if err := c.get(ctx, "ISteamUser/GetFriendList/v0001", params, &body); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, ErrPrivateProfile
		}
		return nil, err
	}

	if body.FriendsList == nil {
		return nil, nil
	}

	ids := make([]string, 0, len(body.FriendsList.Friends))
	for _, f := range body.FriendsList.Friends {
		ids = append(ids, f.SteamID)
	}
	return ids, nil
}

// Friends returns the friend list with names and avatars.
func (c *Client) Friends(ctx context.Context, steamID string) ([]Friend, error) {
	ids, err := c.FriendIDs(ctx, steamID)
	if err != nil {
		return nil, err
	}

	friends := []Friend{}
	if len(ids) == 0 {
		return friends, nil
	}

	players, err := c.PlayerSummaries(ctx, ids...)
	if err != nil {
		return nil, err
	}

	for _, p := range players {
		friends = append(friends, toFriend(p))
	}
	return friends, nil
}

func toFriend(p Player) Friend {
	f := Friend{
		SteamID:    p.SteamID,
		Name:       p.PersonaName,
		Avatar:     p.AvatarMedium,
		LastOnline: p.LastLogoff,
		ProfileURL: p.ProfileURL,
	}
	if f.Name == "" {
		f.Name = defaultFriendName
	}
	if p.PersonaState != nil {
		f.Status = *p.PersonaState
	}
	if f.ProfileURL == "" {
		f.ProfileURL = "https://steamcommunity.com/profiles/" + p.SteamID
	}
	return f
}
