package export

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/duskforge/voxeldungeon/pkg/dungeon"
	"github.com/duskforge/voxeldungeon/pkg/room"
	"github.com/duskforge/voxeldungeon/pkg/voxel"
)

// RoomDoc is the JSON representation of a placed room.
type RoomDoc struct {
	ID     room.ID `json:"id"`
	Origin [3]int  `json:"origin"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Depth  int     `json:"depth"`
}

// CellDoc is the JSON representation of one non-wall voxel cell.
type CellDoc struct {
	Point [3]int       `json:"point"`
	Kind  string       `json:"kind"`
	Room  voxel.RoomID `json:"room,omitempty"`
	Dir   string       `json:"dir,omitempty"`
}

// ConnectionDoc is the JSON representation of one attempted connection.
type ConnectionDoc struct {
	Room0    room.ID `json:"room0"`
	Room1    room.ID `json:"room1"`
	Required bool    `json:"required"`
	Routed   bool    `json:"routed"`
	Start    [3]int  `json:"start"`
	Height   int     `json:"height"`
	Error    string  `json:"error,omitempty"`
}

// Document is the complete JSON-serializable snapshot of a generated
// dungeon: every placed room, every committed voxel cell, and the record
// of every attempted connection.
type Document struct {
	Rooms       []RoomDoc       `json:"rooms"`
	Cells       []CellDoc       `json:"cells"`
	Connections []ConnectionDoc `json:"connections"`
}

// BuildDocument snapshots result into a Document with every slice in a
// deterministic order (ascending room id, then ascending (x, y, z) for
// cells), so two generations of an identical config produce byte-identical
// JSON.
func BuildDocument(result *dungeon.Result) *Document {
	doc := &Document{}

	ids := make([]room.ID, 0, len(result.Rooms))
	for id := range result.Rooms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		r := result.Rooms[id]
		doc.Rooms = append(doc.Rooms, RoomDoc{
			ID:     r.ID,
			Origin: [3]int{r.Origin.X, r.Origin.Y, r.Origin.Z},
			Width:  r.Width,
			Height: r.Height,
			Depth:  r.Depth,
		})
	}

	var points []voxel.Point
	classes := make(map[voxel.Point]voxel.Class)
	result.Map.All(func(p voxel.Point, c voxel.Class) {
		points = append(points, p)
		classes[p] = c
	})
	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	for _, p := range points {
		c := classes[p]
		cell := CellDoc{Point: [3]int{p.X, p.Y, p.Z}, Kind: c.Kind.String()}
		switch c.Kind {
		case voxel.RoomSpace, voxel.RoomFloor, voxel.RoomBottomSpace, voxel.RoomWall:
			cell.Room = c.Room
		case voxel.PassageStair:
			cell.Dir = c.Dir.String()
		}
		doc.Cells = append(doc.Cells, cell)
	}

	for _, c := range result.Connections {
		cd := ConnectionDoc{
			Room0:    c.Room0,
			Room1:    c.Room1,
			Required: c.Required,
			Routed:   c.Routed,
			Start:    [3]int{c.Start.X, c.Start.Y, c.Start.Z},
			Height:   c.Height,
		}
		if c.Err != nil {
			cd.Error = c.Err.Error()
		}
		doc.Connections = append(doc.Connections, cd)
	}

	return doc
}

// ExportJSON serializes result to indented JSON.
func ExportJSON(result *dungeon.Result) ([]byte, error) {
	return json.MarshalIndent(BuildDocument(result), "", "  ")
}

// ExportJSONCompact serializes result to compact JSON.
func ExportJSONCompact(result *dungeon.Result) ([]byte, error) {
	return json.Marshal(BuildDocument(result))
}

// SaveJSONToFile writes result as indented JSON to filepath (0644).
func SaveJSONToFile(result *dungeon.Result, filepath string) error {
	data, err := ExportJSON(result)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// SaveJSONCompactToFile writes result as compact JSON to filepath (0644).
func SaveJSONCompactToFile(result *dungeon.Result, filepath string) error {
	data, err := ExportJSONCompact(result)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
