package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreCatalogHasTwentyDistinctIDs(t *testing.T) {
	ids := CoreIDs()
	require.Len(t, ids, 20)

	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate core id %q", id)
		seen[id] = true
	}
}

func TestEveryComponentResolvesByID(t *testing.T) {
	for _, c := range All() {
		got, ok := Get(c.ID)
		require.True(t, ok, "component %q not resolvable", c.ID)
		assert.Equal(t, c, got)
	}
}

func TestGetUnknownID(t *testing.T) {
	_, ok := Get("does-not-exist")
	assert.False(t, ok)
}

func TestBonusComponentsCarryPoints(t *testing.T) {
	ids := BonusIDs()
	require.NotEmpty(t, ids)

	for _, id := range ids {
		c, ok := Get(id)
		require.True(t, ok)
		assert.Equal(t, TierBonus, c.Tier)
		assert.Equal(t, 50, c.BonusPoints)
	}
}

func TestCoreComponentsHaveNoBonusPoints(t *testing.T) {
	for _, id := range CoreIDs() {
		c, _ := Get(id)
		assert.Zero(t, c.BonusPoints, "core component %q should not carry bonus points", c.ID)
	}
}

func TestAllReturnsACopy(t *testing.T) {
	a := All()
	a[0].ID = "mutated"

	b := All()
	assert.NotEqual(t, "mutated", b[0].ID)
}
