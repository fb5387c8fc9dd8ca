package steam_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhonRainbow6/WebProject/pkg/steam"
)

const steamID = "76561198000000001"

type fakeSteam struct {
	t        *testing.T
	handlers map[string]http.HandlerFunc
	calls    atomic.Int32
}

func newFakeSteam(t *testing.T, handlers map[string]http.HandlerFunc) (*steam.Client, *fakeSteam) {
	t.Helper()
	f := &fakeSteam{t: t, handlers: handlers}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		method := strings.Trim(r.URL.Path, "/")
		h, ok := f.handlers[method]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	client := steam.NewClient(steam.Config{APIKey: "test-key", APIBaseURL: srv.URL, Timeout: 2 * time.Second, Concurrency: 2})
	return client, f
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func summaries(players ...map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if players == nil {
			players = []map[string]any{}
		}
		writeJSON(w, map[string]any{"response": map[string]any{"players": players}})
	}
}

func TestPlayerExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("known player", func(t *testing.T) {
		t.Parallel()
		client, _ := newFakeSteam(t, map[string]http.HandlerFunc{
			"ISteamUser/GetPlayerSummaries/v0002": summaries(map[string]any{"steamid": steamID}),
		})
		ok, err := client.PlayerExists(ctx, steamID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("zero players", func(t *testing.T) {
		t.Parallel()
		client, _ := newFakeSteam(t, map[string]http.HandlerFunc{
			"ISteamUser/GetPlayerSummaries/v0002": summaries(),
		})
		ok, err := client.PlayerExists(ctx, "1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("steam down", func(t *testing.T) {
		t.Parallel()
		client, _ := newFakeSteam(t, map[string]http.HandlerFunc{
			"ISteamUser/GetPlayerSummaries/v0002": func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		})
		_, err := client.PlayerExists(ctx, steamID)
		assert.ErrorIs(t, err, steam.ErrUnavailable)
	})

	t.Run("not json", func(t *testing.T) {
		t.Parallel()
		client, _ := newFakeSteam(t, map[string]http.HandlerFunc{
			"ISteamUser/GetPlayerSummaries/v0002": func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
		})
		_, err := client.PlayerExists(ctx, steamID)
		assert.ErrorIs(t, err, steam.ErrUnavailable)
	})

	t.Run("transport errors keep the api key out", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		t.Cleanup(srv.Close)

		client := steam.NewClient(steam.Config{APIKey: "SECRETKEY123", APIBaseURL: srv.URL, Timeout: 50 * time.Millisecond})
		_, err := client.PlayerExists(ctx, steamID)
		require.ErrorIs(t, err, steam.ErrUnavailable)
		assert.NotContains(t, err.Error(), "SECRETKEY123")
		assert.Contains(t, err.Error(), "ISteamUser/GetPlayerSummaries/v0002")
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		client := steam.NewClient(steam.Config{APIBaseURL: "http://127.0.0.1:1"})
		_, err := client.PlayerExists(ctx, steamID)
		assert.ErrorIs(t, err, steam.ErrMissingAPIKey)
	})
}

func TestLibrary(t *testing.T) {
	t.Parallel()

	client, _ := newFakeSteam(t, map[string]http.HandlerFunc{
		"IPlayerService/GetOwnedGames/v0001": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "true", r.URL.Query().Get("include_appinfo"))
			assert.Equal(t, "true", r.URL.Query().Get("include_played_free_games"))
			writeJSON(w, map[string]any{"response": map[string]any{"games": []map[string]any{
				{"appid": 10, "name": "zeta", "playtime_forever": 5, "img_icon_url": "z"},
				{"appid": 20, "name": "Alpha", "playtime_forever": 7},
				{"appid": 30, "name": "Ñandú"},
			}}})
		},
		"ISteamUserStats/GetSchemaForGame/v2": func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("appid") {
			case "10":
				writeJSON(w, map[string]any{"game": map[string]any{"availableGameStats": map[string]any{
					"achievements": []map[string]any{{"name": "a"}, {"name": "b"}, {"name": "c"}},
				}}})
			default:
				w.WriteHeader(http.StatusForbidden)
			}
		},
		"ISteamUserStats/GetPlayerAchievements/v0001": func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("appid") {
			case "10":
				writeJSON(w, map[string]any{"playerstats": map[string]any{"success": true, "achievements": []map[string]any{
					{"achieved": 1}, {"achieved": 0}, {"achieved": 1},
				}}})
			case "20":
				writeJSON(w, map[string]any{"playerstats": map[string]any{"success": true, "achievements": []map[string]any{
					{"achieved": 1}, {"achieved": 0},
				}}})
			default:
				writeJSON(w, map[string]any{"playerstats": map[string]any{"success": false}})
			}
		},
	})

	games, err := client.Library(context.Background(), steamID)
	require.NoError(t, err)
	require.Len(t, games, 3)

	assert.Equal(t, []string{"Alpha", "Ñandú", "zeta"}, []string{games[0].Name, games[1].Name, games[2].Name})

	assert.Equal(t, steam.Achievements{Total: 2, Completed: 1}, games[0].Achievements, "total falls back to player stats")
	assert.Equal(t, steam.Achievements{}, games[1].Achievements)
	assert.Equal(t, steam.Achievements{Total: 3, Completed: 2}, games[2].Achievements)
	assert.Equal(t, "https://cdn.cloudflare.steamstatic.com/steam/apps/10/header.jpg", games[2].ImgHeader)
	assert.Equal(t, 5, games[2].PlaytimeForever)
}

func TestLibraryEmpty(t *testing.T) {
	t.Parallel()

	client, _ := newFakeSteam(t, map[string]http.HandlerFunc{
		"IPlayerService/GetOwnedGames/v0001": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"response": map[string]any{}})
		},
	})

	games, err := client.Library(context.Background(), steamID)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestFriends(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("joins summaries with defaults", func(t *testing.T) {
		t.Parallel()
		client, _ := newFakeSteam(t, map[string]http.HandlerFunc{
			"ISteamUser/GetFriendList/v0001": func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "friend", r.URL.Query().Get("relationship"))
				writeJSON(w, map[string]any{"friendslist": map[string]any{"friends": []map[string]any{
					{"steamid": "1"}, {"steamid": "2"},
				}}})
			},
			"ISteamUser/GetPlayerSummaries/v0002": func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "1,2", r.URL.Query().Get("steamids"))
				summaries(
					map[string]any{"steamid": "1", "personaname": "Ana", "avatarmedium": "a.jpg", "personastate": 1, "lastlogoff": 1700000000, "profileurl": "https://steamcommunity.com/id/ana/"},
					map[string]any{"steamid": "2"},
				)(w, r)
			},
		})

		friends, err := client.Friends(ctx, steamID)
		require.NoError(t, err)
		require.Len(t, friends, 2)

		assert.Equal(t, "Ana", friends[0].Name)
		assert.Equal(t, 1, friends[0].Status)
		require.NotNil(t, friends[0].LastOnline)
		assert.Equal(t, int64(1700000000), *friends[0].LastOnline)

		assert.Equal(t, "Steam user", friends[1].Name)
		assert.Equal(t, 0, friends[1].Status)
		assert.Nil(t, friends[1].LastOnline)
		assert.Equal(t, "https://steamcommunity.com/profiles/2", friends[1].ProfileURL)
	})

	t.Run("no friends", func(t *testing.T) {
		t.Parallel()
		client, f := newFakeSteam(t, map[string]http.HandlerFunc{
			"ISteamUser/GetFriendList/v0001": func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, map[string]any{})
			},
		})
		friends, err := client.Friends(ctx, steamID)
		require.NoError(t, err)
		assert.NotNil(t, friends)
		assert.Empty(t, friends)
		assert.Equal(t, int32(1), f.calls.Load())
	})

	t.Run("private list", func(t *testing.T) {
		t.Parallel()
		client, _ := newFakeSteam(t, map[string]http.HandlerFunc{
			"ISteamUser/GetFriendList/v0001": func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		})
		_, err := client.Friends(ctx, steamID)
		assert.ErrorIs(t, err, steam.ErrPrivateProfile)
	})
}
