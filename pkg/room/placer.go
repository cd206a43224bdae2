package room

import (
	"context"

	"github.com/duskforge/voxeldungeon/pkg/rng"
	"github.com/duskforge/voxeldungeon/pkg/voxel"
)

// Range is an inclusive integer interval, e.g. RoomWidthRange: [5, 10].
type Range struct {
	Min, Max int
}

// PlacementConfig parameterizes tiered room placement.
type PlacementConfig struct {
	Width, Height, Depth      int
	RoomHierarchy             int
	RoomWidthRange            Range
	RoomHeightRange           Range
	RoomDepthRange            Range
	MarginX, MarginY, MarginZ int
}

// Placer produces a set of non-overlapping rooms inside the configured
// bounds.
type Placer interface {
	Place(ctx context.Context, r *rng.RNG, cfg PlacementConfig) (map[ID]*Room, error)
}

// TieredPlacer divides the volume into RoomHierarchy horizontal tiers, each
// tier into a random grid of blocks, and drops one randomly sized room per
// block. Non-overlap is guaranteed by construction: every room (plus its
// margin) stays inside the block it was assigned, and blocks tile the tier
// without overlapping.
type TieredPlacer struct{}

// NewTieredPlacer returns the default room placer.
func NewTieredPlacer() *TieredPlacer { return &TieredPlacer{} }

// Place implements Placer.
func (p *TieredPlacer) Place(ctx context.Context, r *rng.RNG, cfg PlacementConfig) (map[ID]*Room, error) {
	alloc := NewIDAllocator()
	rooms := make(map[ID]*Room)

	wDivisionsMax := cfg.Width / (cfg.RoomWidthRange.Min + cfg.MarginX)
	dDivisionsMax := cfg.Depth / (cfg.RoomDepthRange.Min + cfg.MarginZ)
	hBlockSize := cfg.Height / cfg.RoomHierarchy
	if wDivisionsMax < 1 {
		wDivisionsMax = 1
	}
	if dDivisionsMax < 1 {
		dDivisionsMax = 1
	}

	for ry := 0; ry < cfg.RoomHierarchy; ry++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		wDivisions := r.IntRange(1, wDivisionsMax)
		wBlockSize := cfg.Width / wDivisions
		for rx := 0; rx < wDivisions; rx++ {
			dDivisions := r.IntRange(1, dDivisionsMax)
			dBlockSize := cfg.Depth / dDivisions
			for rz := 0; rz < dDivisions; rz++ {
				roomWidth := r.IntRange(cfg.RoomWidthRange.Min, min(wBlockSize-cfg.MarginX, cfg.RoomWidthRange.Max))
				roomHeight := r.IntRange(cfg.RoomHeightRange.Min, min(hBlockSize-cfg.MarginY, cfg.RoomHeightRange.Max))
				roomDepth := r.IntRange(cfg.RoomDepthRange.Min, min(dBlockSize-cfg.MarginZ, cfg.RoomDepthRange.Max))

				originX := rx*wBlockSize + r.IntRange(0, wBlockSize-roomWidth-cfg.MarginX)
				originY := ry*hBlockSize + r.IntRange(0, hBlockSize-roomHeight-cfg.MarginY)
				originZ := rz*dBlockSize + r.IntRange(0, dBlockSize-roomDepth-cfg.MarginZ)

				id := alloc.Next()
				rooms[id] = New(id, roomWidth, roomHeight, roomDepth, voxel.Point{X: originX, Y: originY, Z: originZ})
			}
		}
	}

	return rooms, nil
}
