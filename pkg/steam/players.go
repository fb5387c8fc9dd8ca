package steam

import (
	"context"
	"net/url"
	"strings"
)

// GetPlayerSummaries accepts at most this many ids per call.
const maxSummaryIDs = 100

// Player is one entry of GetPlayerSummaries.
type Player struct {
	SteamID      string `json:"steamid"`
	PersonaName  string `json:"personaname"`
	ProfileURL   string `json:"profileurl"`
	Avatar       string `json:"avatar"`
	AvatarMedium string `json:"avatarmedium"`
	AvatarFull   string `json:"avatarfull"`
	PersonaState *int   `json:"personastate"`
	LastLogoff   *int64 `json:"lastlogoff"`
}

// PlayerSummaries fetches public profiles, batching ids as the API requires.
func (c *Client) PlayerSummaries(ctx context.Context, steamIDs ...string) ([]Player, error) {
	var players []Player
	for start := 0; start < len(steamIDs); start += maxSummaryIDs {
		end := min(start+maxSummaryIDs, len(steamIDs))

		var body struct {
			Response struct {
				Players []Player `json:"players"`
			} `json:"response"`
		}
		params := url.Values{"steamids": {strings.Join(steamIDs[start:end], ",")}}
		if err := c.get(ctx, "ISteamUser/GetPlayerSummaries/v0002", params, &body); err != nil {
			return nil, err
		}
		players = append(players, body.Response.Players...)
	}
	return players, nil
}

// PlayerExists reports whether Steam returns a profile for the id.
func (c *Client) PlayerExists(ctx context.Context, steamID string) (bool, error) {
	players, err := c.PlayerSummaries(ctx, steamID)
	if err != nil {
		return false, err
	}
	return len(players) > 0, nil
}
