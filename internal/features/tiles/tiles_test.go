package tiles

import (
	"context"
	"testing"

	"github.com/chromy/hilbertviz/internal/constants"
	"github.com/chromy/hilbertviz/internal/core"
	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeIndicesSmallCurve(t *testing.T) {
	// order 2 fills the top left 4x4 corner of the only tile
	values, err := computeIndices(context.Background(), hilbert.New(2), 0, 0, 0)
	require.NoError(t, err)
	require.Len(t, values, constants.TileSize*constants.TileSize)

	curve := hilbert.New(2)
	for y := uint32(0); y < 4; y++ {
		for x := uint32(0); x < 4; x++ {
			want, err := curve.PointToIndex(hilbert.Point{X: x, Y: y})
			require.NoError(t, err)
			assert.Equal(t, int32(want), values[int(y)*constants.TileSize+int(x)])
		}
	}
	assert.Equal(t, Blank, values[4])
	assert.Equal(t, Blank, values[4*constants.TileSize])
	assert.Equal(t, Blank, values[len(values)-1])
}

func TestComputeIndicesFullTile(t *testing.T) {
	curve := hilbert.New(7) // 128x128, 2x2 tiles at lod 0
	values, err := computeIndices(context.Background(), curve, 0, 1, 1)
	require.NoError(t, err)

	seen := map[int32]bool{}
	for row := 0; row < constants.TileSize; row++ {
		for col := 0; col < constants.TileSize; col++ {
			v := values[row*constants.TileSize+col]
			require.NotEqual(t, Blank, v)
			p, err := curve.IndexToPoint(uint64(v))
			require.NoError(t, err)
			assert.Equal(t, hilbert.Point{X: uint32(64 + col), Y: uint32(64 + row)}, p)
			seen[v] = true
		}
	}
	assert.Len(t, seen, constants.TileSize*constants.TileSize)
}

func TestComputeIndicesLod(t *testing.T) {
	curve := hilbert.New(7)
	values, err := computeIndices(context.Background(), curve, 1, 0, 0)
	require.NoError(t, err)

	// sample (3, 5) at lod 1 is world cell (6, 10)
	want, err := curve.PointToIndex(hilbert.Point{X: 6, Y: 10})
	require.NoError(t, err)
	assert.Equal(t, int32(want), values[5*constants.TileSize+3])
}

func TestComputeIndicesRejects(t *testing.T) {
	ctx := context.Background()

	_, err := computeIndices(ctx, hilbert.New(constants.MaxTileOrder+1), 0, 0, 0)
	assert.ErrorIs(t, err, hilbert.ErrOrderTooLarge)

	_, err = computeIndices(ctx, hilbert.New(4), -1, 0, 0)
	assert.ErrorIs(t, err, core.ErrBadParam)

	_, err = computeIndices(ctx, hilbert.New(4), 0, 1, 0)
	assert.ErrorIs(t, err, hilbert.ErrPointOutOfRange)

	_, err = computeIndices(ctx, hilbert.New(4), 0, 0, -1)
	assert.ErrorIs(t, err, hilbert.ErrPointOutOfRange)
}

func TestComputeIndicesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := computeIndices(ctx, hilbert.New(4), 0, 0, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetIndicesIsRegistered(t *testing.T) {
	c, found := core.GetTileComputation("indices")
	require.True(t, found)
	assert.Equal(t, "indices", c.Id)
}
