package auth

import (
	"regexp"
	"strings"
)

// e164Regex matches phone numbers in E.164 form, e.g. "+12345678901".
var e164Regex = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// FormatPhone normalizes a raw phone entry: all non-digits are stripped,
// a 10-digit local number gets the default country code prefixed, anything
// else passes through with a leading "+". The result must be valid E.164.
func FormatPhone(raw, defaultCountryCode string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", ErrInvalidPhone
	}

	var formatted string
	if digits.Len() == 10 {
		formatted = defaultCountryCode + digits.String()
	} else {
		formatted = "+" + digits.String()
	}

	if !e164Regex.MatchString(formatted) {
		return "", ErrInvalidPhone
	}
	return formatted, nil
}
