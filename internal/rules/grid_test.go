package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoord(t *testing.T) {
	t.Run("In reports board bounds", func(t *testing.T) {
		assert.True(t, Coord{Row: 0, Col: 0}.In(8))
		assert.True(t, Coord{Row: 7, Col: 7}.In(8))
		assert.False(t, Coord{Row: 8, Col: 0}.In(8))
		assert.False(t, Coord{Row: 0, Col: -1}.In(8))
	})

	t.Run("Index and FromIndex round trip", func(t *testing.T) {
		for i := range 9 {
			assert.Equal(t, i, FromIndex(i, 3).Index(3))
		}
		assert.Equal(t, Coord{Row: 2, Col: 1}, FromIndex(7, 3))
	})

	t.Run("Delta and Midpoint", func(t *testing.T) {
		from, to := Coord{Row: 2, Col: 1}, Coord{Row: 4, Col: 3}

		dr, dc := from.Delta(to)

		assert.Equal(t, 2, dr)
		assert.Equal(t, 2, dc)
		assert.Equal(t, Coord{Row: 3, Col: 2}, from.Midpoint(to))
	})

	t.Run("IsDark", func(t *testing.T) {
		assert.True(t, Coord{Row: 0, Col: 1}.IsDark())
		assert.False(t, Coord{Row: 1, Col: 1}.IsDark())
	})
}

func TestAlternate(t *testing.T) {
	assert.Equal(t, "O", Alternate("X", "X", "O"))
	assert.Equal(t, "X", Alternate("O", "X", "O"))
	assert.Equal(t, 2, Alternate(1, 1, 2))
	assert.Equal(t, 1, Alternate(2, 1, 2))
	assert.Equal(t, 1, Alternate(0, 1, 2))
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 3, Abs(3))
	assert.Equal(t, 0, Abs(0))
}
