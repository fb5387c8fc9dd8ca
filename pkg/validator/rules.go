package validator

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"
)

// Required fails for empty or whitespace-only values.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Rule:    RuleRequired,
			Message: "field is required",
		},
	}
}

// MinLen counts runes, not bytes.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Rule:    RuleTooShort,
			Message: fmt.Sprintf("must be at least %d characters long", min),
			Params:  map[string]any{"min": min},
		},
	}
}

func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Rule:    RuleTooLong,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Params:  map[string]any{"max": max},
		},
	}
}

// ValidEmail accepts a bare RFC 5322 address with a dotted domain.
// Display-name forms such as "Bob <bob@example.com>" are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsEmail(value)
		},
		Error: ValidationError{
			Field:   field,
			Rule:    RuleInvalidFormat,
			Message: "must be a valid email address",
		},
	}
}

// IsEmail is the check behind ValidEmail. Surrounding spaces are ignored.
func IsEmail(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// OneOf fails when value is not in allowed.
func OneOf(field, value string, allowed ...string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowed, value)
		},
		Error: ValidationError{
			Field:   field,
			Rule:    RuleNotAllowed,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
			Params:  map[string]any{"allowed": allowed},
		},
	}
}
