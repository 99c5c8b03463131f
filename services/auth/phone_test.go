package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"ten digit local gets country code", "2025550123", "+12025550123"},
		{"formatted local number", "(202) 555-0123", "+12025550123"},
		{"already international", "+919876543210", "+919876543210"},
		{"international without plus", "919876543210", "+919876543210"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatPhone(tt.raw, "+1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects unformattable input", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "abc", "+", "01234567890123456789"} {
			_, err := FormatPhone(raw, "+1")
			assert.ErrorIs(t, err, ErrInvalidPhone, "raw %q", raw)
		}
	})
}
