package sanitizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeEmail returns the canonical form used as the account merge key:
// Unicode NFC, surrounding whitespace removed, lowercased.
// The local part is otherwise left untouched so provider-asserted addresses
// compare equal to what the user typed at registration.
func NormalizeEmail(email string) string {
	email = norm.NFC.String(email)
	email = strings.TrimSpace(email)
	return strings.ToLower(email)
}

// ExtractEmailDomain returns the lowercased domain part or an empty string
// when the value does not contain exactly one "@".
func ExtractEmailDomain(email string) string {
	parts := strings.Split(strings.TrimSpace(email), "@")
	if len(parts) != 2 {
		return ""
	}
	return strings.ToLower(parts[1])
}

// MaskEmail keeps the first rune of the local part and the whole domain.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return email
	}

	runes := []rune(local)
	if len(runes) == 1 {
		return "*@" + domain
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-1) + "@" + domain
}
