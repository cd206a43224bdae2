package export

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/duskforge/voxeldungeon/pkg/dungeon"
	"github.com/duskforge/voxeldungeon/pkg/room"
	"github.com/duskforge/voxeldungeon/pkg/voxel"
)

// SVGOptions configures the plan-view visualization export.
type SVGOptions struct {
	Scale     int    // Pixels per voxel cell (default: 12)
	Margin    int    // Canvas margin in pixels (default: 40)
	ShowGrid  bool   // Draw a faint grid behind the dungeon
	ShowStats bool   // Show room/passage/stair counts
	Title     string // Optional title
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Scale:     12,
		Margin:    40,
		ShowGrid:  true,
		ShowStats: true,
		Title:     "Dungeon Plan View",
	}
}

// ExportSVG renders a top-down (x, z) plan view of result: room footprints
// as filled rectangles tinted by room id, passage floor cells as small
// squares, and stair cells as a distinct glyph. Y is collapsed (every
// tier draws onto the same plane) since a single 2D image can't show
// height directly; overlapping tiers simply overlap on the canvas, which
// is enough for a quick visual sanity check of the layout's topology.
func ExportSVG(result *dungeon.Result, opts SVGOptions) ([]byte, error) {
	if result == nil || result.Map == nil {
		return nil, fmt.Errorf("export: result and result.Map must be non-nil")
	}
	if opts.Scale <= 0 {
		opts.Scale = 12
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	minX, minZ, maxX, maxZ := planBounds(result)
	width := (maxX-minX+1)*opts.Scale + 2*opts.Margin
	height := (maxZ-minZ+1)*opts.Scale + 2*opts.Margin + headerHeight(opts)

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1a1a2e")

	top := headerHeight(opts)
	toCanvas := func(x, z int) (int, int) {
		return opts.Margin + (x-minX)*opts.Scale, top + opts.Margin + (z-minZ)*opts.Scale
	}

	if opts.ShowGrid {
		drawGrid(canvas, minX, minZ, maxX, maxZ, opts, toCanvas)
	}

	drawRooms(canvas, result.Rooms, opts, toCanvas)
	drawPassageCells(canvas, result.Map, opts, toCanvas)

	if opts.Title != "" || opts.ShowStats {
		drawHeader(canvas, result, opts, width)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders result and writes it to filepath (0644).
func SaveSVGToFile(result *dungeon.Result, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(result, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

func headerHeight(opts SVGOptions) int {
	if opts.Title == "" && !opts.ShowStats {
		return 0
	}
	h := 10
	if opts.Title != "" {
		h += 26
	}
	if opts.ShowStats {
		h += 20
	}
	return h
}

// planBounds finds the (x, z) extent covering every room and every
// committed voxel cell, so the canvas always fits the whole layout.
func planBounds(result *dungeon.Result) (minX, minZ, maxX, maxZ int) {
	first := true
	consider := func(x, z int) {
		if first {
			minX, maxX, minZ, maxZ = x, x, z, z
			first = false
			return
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if z < minZ {
			minZ = z
		}
		if z > maxZ {
			maxZ = z
		}
	}

	for _, r := range result.Rooms {
		consider(r.Origin.X, r.Origin.Z)
		consider(r.Origin.X+r.Width-1, r.Origin.Z+r.Depth-1)
	}
	result.Map.All(func(p voxel.Point, _ voxel.Class) { consider(p.X, p.Z) })

	if first {
		return 0, 0, 0, 0
	}
	return minX, minZ, maxX, maxZ
}

func drawGrid(canvas *svg.SVG, minX, minZ, maxX, maxZ int, opts SVGOptions, toCanvas func(x, z int) (int, int)) {
	for x := minX; x <= maxX+1; x++ {
		x0, z0 := toCanvas(x, minZ)
		_, z1 := toCanvas(x, maxZ+1)
		canvas.Line(x0, z0, x0, z1, "stroke:#2d3748;stroke-width:1")
	}
	for z := minZ; z <= maxZ+1; z++ {
		x0, z0 := toCanvas(minX, z)
		x1, _ := toCanvas(maxX+1, z)
		canvas.Line(x0, z0, x1, z0, "stroke:#2d3748;stroke-width:1")
	}
}

func drawRooms(canvas *svg.SVG, rooms map[room.ID]*room.Room, opts SVGOptions, toCanvas func(x, z int) (int, int)) {
	ids := make([]room.ID, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		r := rooms[id]
		x0, z0 := toCanvas(r.Origin.X, r.Origin.Z)
		x1, z1 := toCanvas(r.Origin.X+r.Width, r.Origin.Z+r.Depth)
		canvas.Rect(x0, z0, x1-x0, z1-z0, fmt.Sprintf("fill:%s;stroke:#e2e8f0;stroke-width:1;opacity:0.85", roomColor(id)))

		cx, cy := (x0+x1)/2, (z0+z1)/2
		canvas.Text(cx, cy, fmt.Sprintf("%d", id), "text-anchor:middle;font-size:11px;font-family:monospace;fill:#1a1a2e;font-weight:bold")
	}
}

// drawPassageCells renders every non-room cell: PassageFloor as a small
// square, PassageStair as a triangle oriented toward its Dir, other
// passage classes are skipped (PassageSpace is headroom, not floor).
func drawPassageCells(canvas *svg.SVG, m *voxel.Map, opts SVGOptions, toCanvas func(x, z int) (int, int)) {
	var floors, stairs []voxel.Point
	classes := make(map[voxel.Point]voxel.Class)
	m.All(func(p voxel.Point, c voxel.Class) {
		switch c.Kind {
		case voxel.PassageFloor:
			floors = append(floors, p)
			classes[p] = c
		case voxel.PassageStair:
			stairs = append(stairs, p)
			classes[p] = c
		}
	})
	sortPoints(floors)
	sortPoints(stairs)

	half := opts.Scale / 3
	for _, p := range floors {
		cx, cz := toCanvas(p.X, p.Z)
		cx += opts.Scale / 2
		cz += opts.Scale / 2
		canvas.Rect(cx-half, cz-half, 2*half, 2*half, "fill:#4299e1;opacity:0.9")
	}
	for _, p := range stairs {
		cx, cz := toCanvas(p.X, p.Z)
		cx += opts.Scale / 2
		cz += opts.Scale / 2
		xs, ys := stairTriangle(cx, cz, half+2, classes[p].Dir)
		canvas.Polygon(xs, ys, "fill:#ed8936;stroke:#1a1a2e;stroke-width:1")
	}
}

func stairTriangle(cx, cz, r int, dir voxel.Direction) ([]int, []int) {
	v := dir.Vector()
	tip := [2]int{cx + v.X*r, cz + v.Z*r}
	perpX, perpZ := -v.Z, v.X
	left := [2]int{cx - perpX*r + -v.X*r/2, cz - perpZ*r + -v.Z*r/2}
	right := [2]int{cx + perpX*r + -v.X*r/2, cz + perpZ*r + -v.Z*r/2}
	return []int{tip[0], left[0], right[0]}, []int{tip[1], left[1], right[1]}
}

func sortPoints(pts []voxel.Point) {
	sort.Slice(pts, func(i, j int) bool {
		a, b := pts[i], pts[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
}

// roomColor derives a stable, visually distinct fill color from a room id
// by hashing it into the hue of an HSL color, so colors are deterministic
// across runs without needing a palette table.
func roomColor(id room.ID) string {
	hue := (uint64(id) * 2654435761) % 360
	return fmt.Sprintf("hsl(%d,65%%,55%%)", hue)
}

func drawHeader(canvas *svg.SVG, result *dungeon.Result, opts SVGOptions, width int) {
	y := 20
	if opts.Title != "" {
		canvas.Text(width/2, y, opts.Title, "text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
		y += 26
	}
	if opts.ShowStats {
		stairCount, floorCount := 0, 0
		result.Map.All(func(_ voxel.Point, c voxel.Class) {
			switch c.Kind {
			case voxel.PassageStair:
				stairCount++
			case voxel.PassageFloor:
				floorCount++
			}
		})
		stats := fmt.Sprintf("Rooms: %d | Passages: %d | Stair cells: %d | Floor cells: %d",
			len(result.Rooms), len(result.Passages()), stairCount, floorCount)
		canvas.Text(width/2, y, stats, "text-anchor:middle;font-size:12px;fill:#a0aec0;font-family:monospace")
	}
}
