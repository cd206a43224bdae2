package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/duskforge/voxeldungeon/pkg/dungeon"
	"github.com/duskforge/voxeldungeon/pkg/room"
	"github.com/duskforge/voxeldungeon/pkg/voxel"
)

func smallResult(t *testing.T) *dungeon.Result {
	t.Helper()
	cfg := dungeon.NewDefaultConfig()
	cfg.Width, cfg.Height, cfg.Depth = 16, 4, 16
	cfg.RoomHierarchy = 1
	cfg.RoomWidthRange = room.Range{Min: 3, Max: 4}
	cfg.RoomDepthRange = room.Range{Min: 3, Max: 4}
	cfg.RoomHeightRange = room.Range{Min: 2, Max: 2}
	cfg.RoomMarginX, cfg.RoomMarginY, cfg.RoomMarginZ = 1, 2, 1
	cfg.Seed = 7

	result, err := dungeon.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return result
}

func TestBuildDocument_Deterministic(t *testing.T) {
	r1 := smallResult(t)
	r2 := smallResult(t)

	d1, err := ExportJSON(r1)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	d2, err := ExportJSON(r2)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if !bytes.Equal(d1, d2) {
		t.Fatal("identical configs must export byte-identical JSON")
	}
}

func TestExportJSON_RoundTrip(t *testing.T) {
	result := smallResult(t)
	data, err := ExportJSON(result)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Rooms) != len(result.Rooms) {
		t.Fatalf("room count mismatch: doc=%d result=%d", len(doc.Rooms), len(result.Rooms))
	}
	if len(doc.Cells) != result.Map.Len() {
		t.Fatalf("cell count mismatch: doc=%d map=%d", len(doc.Cells), result.Map.Len())
	}
}

func TestExportJSONCompact_NoIndentation(t *testing.T) {
	result := smallResult(t)
	data, err := ExportJSONCompact(result)
	if err != nil {
		t.Fatalf("ExportJSONCompact: %v", err)
	}
	if bytes.Contains(data, []byte("\n  ")) {
		t.Fatal("compact export should not contain indentation")
	}
}

func TestExportSVG_ContainsRoomsAndCanvas(t *testing.T) {
	result := smallResult(t)
	data, err := ExportSVG(result, DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("expected a well-formed SVG document")
	}
	for id := range result.Rooms {
		if !strings.Contains(out, fmt.Sprintf(">%d<", id)) {
			t.Fatalf("expected room label %d to appear in SVG output", id)
		}
	}
}

func TestExportSVG_NilResultErrors(t *testing.T) {
	if _, err := ExportSVG(nil, DefaultSVGOptions()); err == nil {
		t.Fatal("expected an error for a nil result")
	}
}

func TestPlanBounds_EmptyResultIsZero(t *testing.T) {
	m := voxel.NewMap(voxel.Point{}, voxel.Point{X: 1, Y: 1, Z: 1})
	result := &dungeon.Result{Rooms: map[room.ID]*room.Room{}, Map: m}
	minX, minZ, maxX, maxZ := planBounds(result)
	if minX != 0 || minZ != 0 || maxX != 0 || maxZ != 0 {
		t.Fatalf("expected zero bounds for an empty result, got (%d,%d)-(%d,%d)", minX, minZ, maxX, maxZ)
	}
}
