package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchState(t *testing.T) {
	t.Run("known tokens", func(t *testing.T) {
		for _, raw := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
			state, err := ParseSearchState(raw)

			require.NoError(t, err)
			assert.Equal(t, SearchState(raw), state)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := ParseSearchState("SOMETIME")

		require.ErrorIs(t, err, ErrUnknownSearchState)
		assert.Contains(t, err.Error(), "SOMETIME")
	})

	t.Run("tokens are case sensitive", func(t *testing.T) {
		_, err := ParseSearchState("all")

		require.ErrorIs(t, err, ErrUnknownSearchState)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := ParseSearchState("")

		require.ErrorIs(t, err, ErrUnknownSearchState)
	})
}
