package tiles

import (
	"context"
	"fmt"

	"github.com/chromy/hilbertviz/internal/constants"
	"github.com/chromy/hilbertviz/internal/core"
	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/chromy/hilbertviz/internal/utils"
)

// MaxLod bounds the level of detail so tile sizes stay within int64.
const MaxLod = 40

// Blank marks samples that fall outside the grid.
const Blank int32 = -1

// computeIndices samples a TileSize x TileSize block of world cells, one
// sample every 2^lod cells, and returns the curve index at each sample in
// row major order.
func computeIndices(ctx context.Context, curve hilbert.Curve, lod int64, x int64, y int64) ([]int32, error) {
	if curve.Order() > constants.MaxTileOrder {
		return nil, fmt.Errorf("%w: tiles support orders up to %d", hilbert.ErrOrderTooLarge, constants.MaxTileOrder)
	}
	if lod < 0 || lod > MaxLod {
		return nil, fmt.Errorf("%w: lod %d outside [0, %d]", core.ErrBadParam, lod, MaxLod)
	}

	layout := utils.TileLayout{Curve: curve}
	tilesPerSide := layout.TilesPerSide(lod)
	if x < 0 || y < 0 || x >= tilesPerSide || y >= tilesPerSide {
		return nil, fmt.Errorf("%w: tile (%d, %d) outside %dx%d tiles at lod %d", hilbert.ErrPointOutOfRange, x, y, tilesPerSide, tilesPerSide, lod)
	}

	step := int64(1) << lod
	values := make([]int32, constants.TileSize*constants.TileSize)
	for row := int64(0); row < constants.TileSize; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for col := int64(0); col < constants.TileSize; col++ {
			world := utils.TileToWorld(utils.TilePosition{
				Lod:     lod,
				TileX:   x,
				TileY:   y,
				OffsetX: col * step,
				OffsetY: row * step,
			})
			i := row*constants.TileSize + col
			if !layout.Contains(world) {
				values[i] = Blank
				continue
			}
			index, err := utils.WorldToIndex(world, layout)
			if err != nil {
				return nil, err
			}
			values[i] = int32(index)
		}
	}
	return values, nil
}

var GetIndices = core.RegisterTileComputation("indices", computeIndices)
