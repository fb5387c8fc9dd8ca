package steam

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Achievements counts unlocked and available achievements of a game.
type Achievements struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Game is an owned game with its achievement progress.
type Game struct {
	AppID           int          `json:"appid"`
	Name            string       `json:"name"`
	PlaytimeForever int          `json:"playtime_forever"`
	ImgIconURL      string       `json:"img_icon_url"`
	ImgHeader       string       `json:"img_header"`
	Achievements    Achievements `json:"achievements"`
}

func headerImage(appID int) string {
	return fmt.Sprintf("https://cdn.cloudflare.steamstatic.com/steam/apps/%d/header.jpg", appID)
}

// OwnedGame is an entry of GetOwnedGames.
type OwnedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
}

// OwnedGames lists the games in a library, free-to-play titles included.
func (c *Client) OwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	var body struct {
		Response struct {
			Games []OwnedGame `json:"games"`
		} `json:"response"`
	}

	params := url.Values{
		"steamid":                   {steamID},
		"include_appinfo":           {"true"},
		"include_played_free_games": {"true"},
	}
	if err := c.get(ctx, "IPlayerService/GetOwnedGames/v0001", params, &body); err != nil {
		return nil, err
	}
	return body.Response.Games, nil
}

// AchievementCount returns how many achievements the game defines.
func (c *Client) AchievementCount(ctx context.Context, appID int) (int, error) {
	var body struct {
		Game struct {
			AvailableGameStats struct {
				Achievements []schemaAchievement `json:"achievements"`
			} `json:"availableGameStats"`
		} `json:"game"`
	}

	params := url.Values{"appid": {strconv.Itoa(appID)}}
	if err := c.get(ctx, "ISteamUserStats/GetSchemaForGame/v2", params, &body); err != nil {
		return 0, err
	}
	return len(body.Game.AvailableGameStats.Achievements), nil
}

// PlayerAchievements returns unlocked and total counts for one game.
// ok is false when Steam reports no stats, e.g. for a private profile.
func (c *Client) PlayerAchievements(ctx context.Context, steamID string, appID int) (Achievements, bool, error) {
	var body struct {
		PlayerStats struct {
			Success      bool `json:"success"`
			Achievements []struct {
				Achieved int `json:"achieved"`
			} `json:"achievements"`
		} `json:"playerstats"`
	}

	params := url.Values{"steamid": {steamID}, "appid": {strconv.Itoa(appID)}}
	if err := c.get(ctx, "ISteamUserStats/GetPlayerAchievements/v0001", params, &body); err != nil {
		return Achievements{}, false, err
	}
	if !body.PlayerStats.Success || len(body.PlayerStats.Achievements) == 0 {
		return Achievements{}, false, nil
	}

	a := Achievements{Total: len(body.PlayerStats.Achievements)}
	for _, ach := range body.PlayerStats.Achievements {
		if ach.Achieved == 1 {
			a.Completed++
		}
	}
	return a, true, nil
}

// Library returns the owned games with achievement progress, sorted by name.
// Per-game lookups that fail leave that game's counts at zero.
func (c *Client) Library(ctx context.Context, steamID string) ([]Game, error) {
	owned, err := c.OwnedGames(ctx, steamID)
	if err != nil {
		return nil, err
	}

	games := make([]Game, len(owned))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, og := range owned {
		games[i] = Game{
			AppID:           og.AppID,
			Name:            og.Name,
			PlaytimeForever: og.PlaytimeForever,
			ImgIconURL:      og.ImgIconURL,
			ImgHeader:       headerImage(og.AppID),
		}

		g.Go(func() error {
			games[i].Achievements = c.achievements(gctx, steamID, og.AppID)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortByName(games)
	return games, nil
}

func (c *Client) achievements(ctx context.Context, steamID string, appID int) Achievements {
	var a Achievements
	if total, err := c.AchievementCount(ctx, appID); err == nil {
		a.Total = total
	}

	player, ok, err := c.PlayerAchievements(ctx, steamID, appID)
	if err != nil || !ok {
		return a
	}
	a.Completed = player.Completed
	if a.Total == 0 {
		a.Total = player.Total
	}
	return a
}

func sortByName(games []Game) {
	col := collate.New(language.Spanish, collate.IgnoreCase)
	slices.SortStableFunc(games, func(a, b Game) int {
		return col.CompareString(a.Name, b.Name)
	})
}

type schemaAchievement struct {
	Name string `json:"name"`
}
