package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/petitsplats/internal/domain"
)

func TestToggleAddRemove(t *testing.T) {
	s := NewSelection()

	added, err := s.Toggle(domain.DimensionIngredient, "Sel")
	require.NoError(t, err)
	assert.True(t, added)

	ok, err := s.IsSelected(domain.DimensionIngredient, "SEL")
	require.NoError(t, err)
	assert.True(t, ok, "membership is case-insensitive")
	assert.Equal(t, []string{"sel"}, s.Values(domain.DimensionIngredient), "stored lower-cased")

	last, has := s.LastToggled()
	assert.True(t, has)
	assert.Equal(t, "sel", last)

	added, err = s.Toggle(domain.DimensionIngredient, "sel")
	require.NoError(t, err)
	assert.False(t, added)
	assert.True(t, s.Empty())

	_, has = s.LastToggled()
	assert.False(t, has, "nothing left selected")
}

func TestToggleRoundTrip(t *testing.T) {
	s := NewSelection()
	_, _ = s.Toggle(domain.DimensionIngredient, "sel")
	_, _ = s.Toggle(domain.DimensionUtensil, "couteau")
	_, _ = s.Toggle(domain.DimensionAppliance, "four")
	before := s.Clone()

	cases := []struct {
		dim   domain.Dimension
		value string
	}{
		{domain.DimensionIngredient, "poivre"},
		{domain.DimensionIngredient, "sel"},
		{domain.DimensionAppliance, "Four"},
		{domain.DimensionUtensil, "saladier"},
	}

	for _, c := range cases {
		was, err := s.IsSelected(c.dim, c.value)
		require.NoError(t, err)

		_, err = s.Toggle(c.dim, c.value)
		require.NoError(t, err)
		_, err = s.Toggle(c.dim, c.value)
		require.NoError(t, err)

		is, err := s.IsSelected(c.dim, c.value)
		require.NoError(t, err)
		assert.Equal(t, was, is, "%s=%s", c.dim, c.value)
		assert.True(t, s.SameSets(before), "%s=%s", c.dim, c.value)
	}
}

func TestLastToggledAfterRemoval(t *testing.T) {
	s := NewSelection()
	_, _ = s.Toggle(domain.DimensionIngredient, "sel")
	_, _ = s.Toggle(domain.DimensionIngredient, "poivre")
	_, _ = s.Toggle(domain.DimensionUtensil, "couteau")

	// Same dimension wins over a more recent value elsewhere.
	_, _ = s.Toggle(domain.DimensionIngredient, "poivre")
	last, has := s.LastToggled()
	require.True(t, has)
	assert.Equal(t, "sel", last)

	// Dimension now empty: fall back to any remaining value.
	_, _ = s.Toggle(domain.DimensionIngredient, "sel")
	last, has = s.LastToggled()
	require.True(t, has)
	assert.Equal(t, "couteau", last)

	_, _ = s.Toggle(domain.DimensionUtensil, "couteau")
	_, has = s.LastToggled()
	assert.False(t, has)
}

func TestUnknownDimension(t *testing.T) {
	s := NewSelection()
	bad := domain.Dimension(7)

	_, err := s.Toggle(bad, "sel")
	assert.ErrorIs(t, err, domain.ErrUnknownDimension)

	_, err = s.IsSelected(bad, "sel")
	assert.ErrorIs(t, err, domain.ErrUnknownDimension)

	assert.Nil(t, s.Values(bad))
	assert.True(t, s.Empty())
}

func TestResetAndClone(t *testing.T) {
	s := NewSelection()
	_, _ = s.Toggle(domain.DimensionAppliance, "four")
	c := s.Clone()

	s.Reset()
	assert.True(t, s.Empty())
	assert.Equal(t, 0, s.Len())
	_, has := s.LastToggled()
	assert.False(t, has)

	assert.Equal(t, 1, c.Len(), "clone is independent")
	assert.False(t, c.SameSets(s))
}
