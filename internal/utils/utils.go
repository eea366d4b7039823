package utils

import (
	"fmt"

	"github.com/chromy/hilbertviz/internal/constants"
	"github.com/chromy/hilbertviz/internal/hilbert"
)

// LodToSize converts a level of detail to the corresponding size
// lod 0 -> TILE_SIZE
// lod 1 -> TILE_SIZE*2
// lod 2 -> TILE_SIZE*4
// etc
func LodToSize(lod int64) int64 {
	return int64(constants.TileSize) << lod
}

// InitialSize is the side of the smallest curve grid holding m items. The
// grid is never smaller than 2x2.
func InitialSize(m int) int {
	order := hilbert.OrderForCapacity(uint64(max(m, 0)))
	if order == 0 {
		order = 1
	}
	return 1 << order
}

// We convert freely between three spaces:
// 'curve space' is the 1D space of indices 0..4**k along a curve of order k.
// WorldPosition is a 2D space. Each index maps onto a single
// WorldPosition, the cell it names on the 2**k x 2**k grid.
// World space is divided into tiles. At lod=0 a tile is TILE_SIZE cells
// wide; each lod doubles that. If (wx, wy) then tx=wx//size ty=wy//size
// and the offset within the tile is (wx % size, wy % size).

type TileLayout struct {
	Curve hilbert.Curve
}

type WorldPosition struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

type TilePosition struct {
	Lod     int64 `json:"lod"`
	TileX   int64 `json:"tileX"`
	TileY   int64 `json:"tileY"`
	OffsetX int64 `json:"offsetX"`
	OffsetY int64 `json:"offsetY"`
}

func NewTileLayout(order uint16) TileLayout {
	return TileLayout{Curve: hilbert.New(order)}
}

func (layout TileLayout) GridSideLength() int64 {
	return int64(layout.Curve.Side())
}

// TilesPerSide is the number of tiles needed to cover the grid at lod.
func (layout TileLayout) TilesPerSide(lod int64) int64 {
	size := LodToSize(lod)
	return (layout.GridSideLength() + size - 1) / size
}

func (layout TileLayout) Contains(world WorldPosition) bool {
	side := layout.GridSideLength()
	return world.X >= 0 && world.Y >= 0 && world.X < side && world.Y < side
}

func IndexToWorld(index uint64, layout TileLayout) (WorldPosition, error) {
	p, err := layout.Curve.IndexToPoint(index)
	if err != nil {
		return WorldPosition{}, err
	}
	return WorldPosition{X: int64(p.X), Y: int64(p.Y)}, nil
}

func WorldToIndex(world WorldPosition, layout TileLayout) (uint64, error) {
	if !layout.Contains(world) {
		return 0, fmt.Errorf("%w: world (%d, %d)", hilbert.ErrPointOutOfRange, world.X, world.Y)
	}
	return layout.Curve.PointToIndex(hilbert.Point{X: uint32(world.X), Y: uint32(world.Y)})
}

func WorldToTile(world WorldPosition, lod int64) TilePosition {
	size := LodToSize(lod)
	return TilePosition{
		Lod:     lod,
		TileX:   world.X / size,
		TileY:   world.Y / size,
		OffsetX: world.X % size,
		OffsetY: world.Y % size,
	}
}

func TileToWorld(tile TilePosition) WorldPosition {
	size := LodToSize(tile.Lod)
	return WorldPosition{
		X: tile.TileX*size + tile.OffsetX,
		Y: tile.TileY*size + tile.OffsetY,
	}
}
