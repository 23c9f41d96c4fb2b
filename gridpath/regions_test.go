package gridpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sketchpath/gridpath"
)

// TestRegions_TwoRooms splits a 5×2 grid with a wall column.
//
//	. . # . .
//	. . # . .
func TestRegions_TwoRooms(t *testing.T) {
	regions, err := gridpath.Regions(parse("..#..", "..#.."), gridpath.Conn4)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 5, 6}, {3, 4, 8, 9}}, regions)
}

// TestRegions_Diagonal checks that Conn8 does not join cells through a blocked corner.
func TestRegions_Diagonal(t *testing.T) {
	checker := parse(".#", "#.")
	for _, conn := range []gridpath.Connectivity{gridpath.Conn4, gridpath.Conn8} {
		regions, err := gridpath.Regions(checker, conn)
		require.NoError(t, err)
		assert.Len(t, regions, 2, "conn=%v", conn)
	}

	regions, err := gridpath.Regions(parse("..", "#."), gridpath.Conn8)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Len(t, regions[0], 3)
}

// TestRegions_AllBlocked yields no regions.
func TestRegions_AllBlocked(t *testing.T) {
	regions, err := gridpath.Regions(parse("##", "##"), gridpath.Conn4)
	require.NoError(t, err)
	assert.Empty(t, regions)

	_, err = gridpath.Regions(nil, gridpath.Conn4)
	assert.ErrorIs(t, err, gridpath.ErrEmptyGrid)
}

// TestConnected covers reachability, blocked endpoints and bounds.
func TestConnected(t *testing.T) {
	m := parse(
		"..#..",
		"..#..",
		".....",
	)
	ok, err := gridpath.Connected(m, xy{0, 0}, xy{4, 0}, gridpath.Conn4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gridpath.Connected(m, xy{0, 0}, xy{2, 0}, gridpath.Conn4)
	require.NoError(t, err)
	assert.False(t, ok, "blocked endpoint")

	walled := parse("..#..", "..#..")
	ok, err = gridpath.Connected(walled, xy{0, 0}, xy{4, 1}, gridpath.Conn8)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = gridpath.Connected(m, xy{0, 0}, xy{5, 0}, gridpath.Conn4)
	assert.ErrorIs(t, err, gridpath.ErrOutOfBounds)
}
