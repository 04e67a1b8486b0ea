package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gamify/storefront/pkg/errors"
)

func TestGames_AllPresent(t *testing.T) {
	all := Games()
	require.Len(t, all, 6)

	ids := make([]string, len(all))
	for i, g := range all {
		ids[i] = g.ID
		assert.NotEmpty(t, g.Name, g.ID)
		assert.NotEmpty(t, g.Bundles, g.ID)
	}
	assert.Equal(t, []string{
		"valorant", "mobile-legends", "genshin-impact",
		"fortnite", "league-of-legends", "pubg-mobile",
	}, ids)
}

func TestGetGame(t *testing.T) {
	game, err := GetGame("valorant")
	require.NoError(t, err)
	assert.Equal(t, "Valorant", game.Name)
	assert.Len(t, game.Bundles, 6)
}

func TestGetGame_NotFound(t *testing.T) {
	game, err := GetGame("half-life-3")
	assert.Nil(t, game)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetBundle(t *testing.T) {
	game, bundle, err := GetBundle("valorant", "vp-1000")
	require.NoError(t, err)
	assert.Equal(t, "Valorant", game.Name)
	assert.Equal(t, "1000 VP", bundle.Name)
	assert.InDelta(t, 9.99, bundle.Price, 1e-9)
	assert.True(t, bundle.Popular)
}

func TestGetBundle_UnknownBundle(t *testing.T) {
	_, _, err := GetBundle("valorant", "vp-999999")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetBundle_UnknownGame(t *testing.T) {
	_, _, err := GetBundle("half-life-3", "vp-1000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBundleIDsUniquePerGame(t *testing.T) {
	for _, game := range Games() {
		seen := make(map[string]bool)
		for _, b := range game.Bundles {
			assert.False(t, seen[b.ID], "duplicate bundle %s in %s", b.ID, game.ID)
			seen[b.ID] = true
			assert.Greater(t, b.Price, 0.0)
		}
	}
}
