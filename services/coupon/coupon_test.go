package coupon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("known code", func(t *testing.T) {
		c, err := Lookup("FIRST10")
		require.NoError(t, err)
		assert.Equal(t, "FIRST10", c.Code)
		assert.Equal(t, 10.0, c.DiscountPercent)
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		c, err := Lookup("  first10 ")
		require.NoError(t, err)
		assert.Equal(t, "FIRST10", c.Code)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := Lookup("   ")
		assert.ErrorIs(t, err, ErrMissingCode)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := Lookup("SAVE20")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})
}

func TestWallet(t *testing.T) {
	t.Run("apply then remove", func(t *testing.T) {
		var w Wallet
		c, err := w.Apply("first10")
		require.NoError(t, err)
		assert.Equal(t, "FIRST10", c.Code)
		assert.NotNil(t, w.Applied())

		w.Remove()
		assert.Nil(t, w.Applied())
	})

	t.Run("only one active coupon", func(t *testing.T) {
		var w Wallet
		_, err := w.Apply("FIRST10")
		require.NoError(t, err)

		_, err = w.Apply("FIRST10")
		assert.ErrorIs(t, err, ErrAlreadyApplied)

		w.Remove()
		_, err = w.Apply("FIRST10")
		assert.NoError(t, err)
	})

	t.Run("invalid code leaves wallet empty", func(t *testing.T) {
		var w Wallet
		_, err := w.Apply("NOPE")
		assert.ErrorIs(t, err, ErrInvalidCode)
		assert.Nil(t, w.Applied())
	})

	t.Run("empty code reported as missing", func(t *testing.T) {
		var w Wallet
		_, err := w.Apply("")
		assert.ErrorIs(t, err, ErrMissingCode)
	})
}
