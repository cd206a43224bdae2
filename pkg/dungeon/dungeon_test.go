package dungeon

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/duskforge/voxeldungeon/pkg/rng"
	"github.com/duskforge/voxeldungeon/pkg/room"
	"github.com/duskforge/voxeldungeon/pkg/topology"
	"github.com/duskforge/voxeldungeon/pkg/voxel"
)

// TestGenerate_S1Flat mirrors spec scenario S1: a single-tier, flat
// configuration must produce at least two rooms with every required
// (MST) connection committed. RoomHeightRange and RoomMarginY are chosen
// so the placer's free-play window (hBlockSize - roomHeight - marginY) is
// exactly zero, forcing every room to the same origin.Y deterministically
// (not just "usually", which a single hierarchy tier alone would not
// guarantee, since the placer still draws a random y-offset within its
// tier's free play). With every room on one exact y, the router's greedy
// scorer always prefers a same-Y ParallelShift successor over a Stair
// successor (a Stair step strictly increases the y-distance to a
// same-tier target), so the search reaches the goal via ParallelShift
// before a worse-scored Stair entry is ever popped: no PassageStair voxel
// should appear in the committed map.
func TestGenerate_S1Flat(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Width, cfg.Height, cfg.Depth = 16, 4, 16
	cfg.RoomHierarchy = 1
	cfg.RoomWidthRange = room.Range{Min: 3, Max: 4}
	cfg.RoomDepthRange = room.Range{Min: 3, Max: 4}
	cfg.RoomHeightRange = room.Range{Min: 2, Max: 2}
	cfg.RoomMarginX, cfg.RoomMarginY, cfg.RoomMarginZ = 1, 2, 1
	cfg.PassageHeight = 2
	cfg.MarginForBounds = 4
	cfg.Seed = 0

	result, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Rooms) < 2 {
		t.Fatalf("expected at least 2 rooms, got %d", len(result.Rooms))
	}

	for _, c := range result.Connections {
		if c.Required && !c.Routed {
			t.Fatalf("required connection %d-%d not routed", c.Room0, c.Room1)
		}
	}

	hasStair := false
	result.Map.All(func(_ voxel.Point, cls voxel.Class) {
		if cls.Kind == voxel.PassageStair {
			hasStair = true
		}
	})
	if hasStair {
		t.Fatal("flat single-tier layout should not require any stairs")
	}
}

// TestGenerate_S2TwoTier mirrors spec scenario S2: with room_hierarchy=2,
// rooms split across two distinct y tiers. Since the MST is a spanning
// tree over all rooms and the two tiers occupy disjoint y ranges, at
// least one MST edge must bridge the tiers, and bridging a y gap is only
// possible via a Stair step (ParallelShift never changes y) — so a
// two-tier generation must always commit at least one PassageStair.
func TestGenerate_S2TwoTier(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Width, cfg.Height, cfg.Depth = 24, 6, 24
	cfg.RoomHierarchy = 2
	cfg.RoomWidthRange = room.Range{Min: 3, Max: 5}
	cfg.RoomDepthRange = room.Range{Min: 3, Max: 5}
	cfg.RoomHeightRange = room.Range{Min: 2, Max: 2}
	cfg.RoomMarginX, cfg.RoomMarginY, cfg.RoomMarginZ = 1, 1, 1
	cfg.PassageHeight = 2
	cfg.MarginForBounds = 4
	cfg.Seed = 0

	result, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tiers := make(map[int]bool)
	for _, r := range result.Rooms {
		tiers[r.Origin.Y] = true
	}
	if len(tiers) < 2 {
		t.Skip("layout happened to place every room in a single tier for this seed")
	}

	hasStair := false
	result.Map.All(func(_ voxel.Point, cls voxel.Class) {
		if cls.Kind == voxel.PassageStair {
			hasStair = true
		}
	})
	if !hasStair {
		t.Fatal("expected at least one PassageStair bridging the two tiers")
	}
}

// TestGenerate_S3Tight mirrors spec scenario S3: a width that fits
// exactly one room column (wDivisionsMax clamps to 1) must still
// generate successfully.
func TestGenerate_S3Tight(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Width = 10
	cfg.Height = 4
	cfg.Depth = 16
	cfg.RoomHierarchy = 1
	cfg.RoomWidthRange = room.Range{Min: 5, Max: 10}
	cfg.RoomDepthRange = room.Range{Min: 3, Max: 5}
	cfg.RoomHeightRange = room.Range{Min: 2, Max: 2}
	cfg.RoomMarginX = 2
	cfg.RoomMarginY, cfg.RoomMarginZ = 1, 1
	cfg.PassageHeight = 2
	cfg.MarginForBounds = 4
	cfg.Seed = 0

	result, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, r := range result.Rooms {
		if r.Origin.X < 0 || r.Origin.X+r.Width > cfg.Width {
			t.Fatalf("room %d escapes the single x column: origin=%v width=%d", r.ID, r.Origin, r.Width)
		}
	}
}

// TestGenerate_S4Invalid mirrors spec scenario S4: Generate must surface
// the validation error without attempting generation.
func TestGenerate_S4Invalid(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Width = 6
	cfg.RoomWidthRange = room.Range{Min: 5, Max: 10}
	cfg.RoomMarginX = 2
	cfg.Seed = 1

	_, err := Generate(context.Background(), cfg)
	if !errors.Is(err, ErrNarrowWidth) {
		t.Fatalf("expected ErrNarrowWidth, got %v", err)
	}
}

// fixedPlacer is a test double that returns a pre-built room set,
// ignoring both the RNG and the placement config.
type fixedPlacer struct {
	rooms map[room.ID]*room.Room
}

func (f fixedPlacer) Place(ctx context.Context, r *rng.RNG, cfg room.PlacementConfig) (map[room.ID]*room.Room, error) {
	return f.rooms, nil
}

// TestGenerate_S5Unreachable mirrors spec scenario S5: two rooms placed
// such that the second lies entirely outside the voxel map's declared
// domain. The router's bounds check (Route aborts any candidate outside
// [start, end)) can then never reach the second room's floor, so the
// required connection must fail with router.ErrUnreachable, surfaced as
// a *ConnectionError wrapping it.
func TestGenerate_S5Unreachable(t *testing.T) {
	rooms := map[room.ID]*room.Room{
		1: room.New(1, 4, 2, 4, voxel.Point{X: 0, Y: 0, Z: 0}),
		2: room.New(2, 4, 2, 4, voxel.Point{X: 100, Y: 0, Z: 0}),
	}

	cfg := NewDefaultConfig()
	cfg.Width, cfg.Height, cfg.Depth = 10, 4, 10
	cfg.MarginForBounds = 0
	cfg.Seed = 1

	_, err := GenerateWith(context.Background(), cfg, fixedPlacer{rooms: rooms}, topology.NewKruskalDelaunaySelector())
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectionError, got %v", err)
	}
	if !IsUnreachable(connErr) {
		t.Fatalf("expected the wrapped error to be router.ErrUnreachable, got %v", connErr.Err)
	}
}

// TestGenerate_S6Determinism mirrors spec scenario S6: two runs with an
// identical config and seed must produce byte-identical voxel maps, room
// sets, and connection lists.
func TestGenerate_S6Determinism(t *testing.T) {
	newCfg := func() *Config {
		cfg := NewDefaultConfig()
		cfg.Width, cfg.Height, cfg.Depth = 24, 6, 24
		cfg.RoomHierarchy = 2
		cfg.Seed = 42
		return cfg
	}

	r1, err := Generate(context.Background(), newCfg())
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	r2, err := Generate(context.Background(), newCfg())
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	if !reflect.DeepEqual(r1.Rooms, r2.Rooms) {
		t.Fatal("room sets differ between identical runs")
	}
	if !reflect.DeepEqual(r1.Connections, r2.Connections) {
		t.Fatal("connection lists differ between identical runs")
	}
	if !mapCellsEqual(r1.Map, r2.Map) {
		t.Fatal("voxel maps differ between identical runs")
	}
}

func mapCellsEqual(a, b *voxel.Map) bool {
	if a.Len() != b.Len() {
		return false
	}
	var cellsA, cellsB []string
	a.All(func(p voxel.Point, c voxel.Class) { cellsA = append(cellsA, p.String()+c.String()) })
	b.All(func(p voxel.Point, c voxel.Class) { cellsB = append(cellsB, p.String()+c.String()) })
	sort.Strings(cellsA)
	sort.Strings(cellsB)
	return reflect.DeepEqual(cellsA, cellsB)
}
