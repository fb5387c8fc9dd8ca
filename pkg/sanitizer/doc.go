// Package sanitizer normalizes user supplied identifiers before they reach
// storage or logs.
//
// Email addresses are compared case-insensitively across the whole service, so
// every code path that looks up or stores an email goes through NormalizeEmail:
//
//	email := sanitizer.NormalizeEmail("  Player.One@Example.COM ")
//	// "player.one@example.com"
//
// MaskEmail is meant for log records where the address must stay recognizable
// to operators without being written out in full.
package sanitizer
