package constants

// TileSize is the number of samples along each edge of a tile.
const TileSize = 64

// MaxTileOrder is the largest curve order whose indices fit the int32
// samples of a tile.
const MaxTileOrder = 15

// MaxRenderWidth bounds the side of rendered curve images, in pixels.
const MaxRenderWidth = 4096
