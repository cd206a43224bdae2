package room

import (
	"context"
	"testing"

	"github.com/duskforge/voxeldungeon/pkg/rng"
)

func testConfig() PlacementConfig {
	return PlacementConfig{
		Width:          32,
		Height:         10,
		Depth:          32,
		RoomHierarchy:  3,
		RoomWidthRange: Range{Min: 5, Max: 10},
		RoomHeightRange: Range{Min: 2, Max: 2},
		RoomDepthRange: Range{Min: 5, Max: 10},
		MarginX:        4,
		MarginY:        1,
		MarginZ:        4,
	}
}

func TestTieredPlacer_ProducesNonOverlappingRooms(t *testing.T) {
	placer := NewTieredPlacer()
	r := rng.NewRNG(42, "room-test", []byte("cfg"))

	rooms, err := placer.Place(context.Background(), r, testConfig())
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if len(rooms) < 1 {
		t.Fatal("expected at least one room")
	}

	for aID, a := range rooms {
		for bID, b := range rooms {
			if aID == bID {
				continue
			}
			if a.Overlaps(b, 0) {
				t.Fatalf("rooms %d and %d overlap: %+v vs %+v", aID, bID, a, b)
			}
		}
	}
}

func TestTieredPlacer_Deterministic(t *testing.T) {
	cfg := testConfig()

	placer := NewTieredPlacer()
	r1 := rng.NewRNG(7, "room-test", []byte("cfg"))
	rooms1, err := placer.Place(context.Background(), r1, cfg)
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	r2 := rng.NewRNG(7, "room-test", []byte("cfg"))
	rooms2, err := placer.Place(context.Background(), r2, cfg)
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	if len(rooms1) != len(rooms2) {
		t.Fatalf("room count mismatch: %d vs %d", len(rooms1), len(rooms2))
	}
	for id, a := range rooms1 {
		b, ok := rooms2[id]
		if !ok {
			t.Fatalf("room %d missing from second run", id)
		}
		if *a != *b {
			t.Fatalf("room %d differs: %+v vs %+v", id, a, b)
		}
	}
}
