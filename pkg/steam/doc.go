// Package steam talks to the Steam Web API and Steam's OpenID 2.0 endpoint.
//
// Client wraps the handful of Web API methods the dashboard needs: player
// summaries, owned games with achievement progress, and the friend list.
// OpenID builds login redirects and verifies the assertion Steam sends back,
// yielding the 64-bit Steam id.
//
// Network failures, timeouts and non-JSON replies are reported as
// ErrUnavailable so callers can tell "Steam is down" from "Steam said no".
package steam
