// Package cheapshark fetches store deals from the CheapShark API.
//
// Replies are passed through as raw JSON. A successful reply is cached for
// Config.CacheTTL so a busy dashboard does not hammer the public API.
package cheapshark
