package entity

import "math/bits"

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
}

// Stage represents the current stage's tile data.
// TileSize must be a power of two.
type Stage struct {
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	SpawnX   int
	SpawnY   int
}

// GetTile returns the tile at the given tile coordinates.
// Tiles outside the map read as solid walls.
func (s *Stage) GetTile(tx, ty int) Tile {
	if s.IsOutsideBounds(tx, ty) {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// GetTileAtPixel returns the tile at the given pixel coordinates
func (s *Stage) GetTileAtPixel(px, py int) Tile {
	shift := s.TileShift()
	return s.GetTile(px>>shift, py>>shift)
}

// IsSolidAt checks if the tile at pixel coordinates is solid
func (s *Stage) IsSolidAt(px, py int) bool {
	return s.GetTileAtPixel(px, py).Solid
}

// IsSolid checks if the tile at tile coordinates is a wall
func (s *Stage) IsSolid(tx, ty int) bool {
	return s.GetTile(tx, ty).Solid
}

// IsOutsideBounds reports whether tile coordinates fall off the map
func (s *Stage) IsOutsideBounds(tx, ty int) bool {
	return tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height
}

// TileShift is log2 of the tile size in pixels
func (s *Stage) TileShift() int {
	if s.TileSize <= 0 {
		return 4
	}
	return bits.TrailingZeros(uint(s.TileSize))
}

// PixelWidth returns the stage width in pixels
func (s *Stage) PixelWidth() int {
	return s.Width << s.TileShift()
}

// PixelHeight returns the stage height in pixels
func (s *Stage) PixelHeight() int {
	return s.Height << s.TileShift()
}
