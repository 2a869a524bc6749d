package system

import (
	"fmt"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity.
// Rows shorter than the stage width are padded with empty tiles.
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	size := cfg.Size.TileSize
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("stage %s: tile size %d is not a power of two", cfg.ID, size)
	}

	tileWidth := cfg.Size.Width / size
	tileHeight := len(cfg.Layers.Collision)

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		for x, char := range row {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}

			tileType := entity.TileEmpty
			if mapping.Type == "wall" {
				tileType = entity.TileWall
			}
			tiles[y][x] = entity.Tile{Type: tileType, Solid: mapping.Solid}
		}
	}

	return &entity.Stage{
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: size,
		Tiles:    tiles,
		SpawnX:   cfg.PlayerSpawn.X,
		SpawnY:   cfg.PlayerSpawn.Y,
	}, nil
}
