// Package auth implements accounts, sessions and provider identity linking.
//
// A single User record may carry a local password, a Google identity and a
// Steam identity. Email is the merge key: a Google sign-in whose email matches
// an existing account links to it instead of creating a second one. Steam is
// only ever linked to an already authenticated account.
//
// # Services
//
//   - AccountService: register, login, change password, profile reads and
//     profile image updates. Login failures are always ErrInvalidCredentials.
//   - Resolver: maps provider assertions onto User records (find, link, create).
//   - GoogleLogin: OAuth consent redirect and callback, with one-time state.
//   - SteamLinker: OpenID redirect and callback for linking a Steam account.
//   - ExchangeCodes: optional one-time codes that stand in for tokens in
//     redirect URLs.
//
// Provider redirect flows are tracked by a LinkFlow, a small state machine
// that ends either Linked or Failed with a FailureReason. The reason is the
// tag the frontend receives in its error query parameter.
//
// # Storage
//
// Persistence sits behind Storage. Implementations must enforce unique email,
// googleId and steamId at the store level and report collisions as
// ErrDuplicateKey; concurrent registrations rely on that for a single winner.
//
// # Request identity
//
// Middleware verifies the session token (x-auth-token header or token query
// parameter) and stores an Identity in the request context:
//
//	r.With(auth.Middleware(tokens, onError)).Get("/user", h)
//	id, ok := auth.IdentityFromContext(r.Context())
package auth
