package system

import "github.com/younwookim/platformer/internal/domain/entity"

// Collision answers contact and tile queries for the movement engine
type Collision interface {
	// IsTouchingSurface reports contact on an edge during the last physics step
	IsTouchingSurface(b *entity.Body, e entity.Edge) bool
	IsOutsideBounds(col, row int) bool
	IsSolid(col, row int) bool
	// TileShift is log2 of the tile size in pixels
	TileShift() int
}

// TileCollision reads contact latches set by PhysicsSystem and tile data from a stage
type TileCollision struct {
	Stage *entity.Stage
}

// NewTileCollision creates a collision source for a stage
func NewTileCollision(stage *entity.Stage) *TileCollision {
	return &TileCollision{Stage: stage}
}

func (c *TileCollision) IsTouchingSurface(b *entity.Body, e entity.Edge) bool {
	return b.IsHitting(e)
}

func (c *TileCollision) IsOutsideBounds(col, row int) bool {
	if c.Stage == nil {
		return false
	}
	return c.Stage.IsOutsideBounds(col, row)
}

func (c *TileCollision) IsSolid(col, row int) bool {
	if c.Stage == nil {
		return false
	}
	return c.Stage.IsSolid(col, row)
}

func (c *TileCollision) TileShift() int {
	if c.Stage == nil {
		return 4
	}
	return c.Stage.TileShift()
}
