package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersion(t *testing.T) {
	t.Run("Should parse a plain semantic version", func(t *testing.T) {
		v, err := NewVersion("1.2.3")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", v.String())
	})
	t.Run("Should parse a prerelease version", func(t *testing.T) {
		v, err := NewVersion("1.2.3-rc.1")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3-rc.1", v.String())
	})
	t.Run("Should reject a v prefix", func(t *testing.T) {
		_, err := NewVersion("v1.2.3")
		assert.Error(t, err)
	})
	t.Run("Should reject a partial version", func(t *testing.T) {
		_, err := NewVersion("1.2")
		assert.Error(t, err)
	})
	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := NewVersion("not-a-version")
		assert.Error(t, err)
	})
}
