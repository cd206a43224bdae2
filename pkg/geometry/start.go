package geometry

import (
	"github.com/duskforge/voxeldungeon/pkg/room"
	"github.com/duskforge/voxeldungeon/pkg/voxel"
)

// PickStart chooses the passage's start room, end room, exit point, and
// legal starting directions for a connection between room0 and room1.
// Ported from create_start.rs: the room with the smaller origin.Y is always
// the start (corridors run from lower tiers up, matching the stair
// convention), the start room's centre-to-end-centre line is intersected
// with the start room's (x, z) boundary rectangle, and the chosen
// intersection point's position on that rectangle determines one or two
// legal starting directions.
func PickStart(room0, room1 *room.Room) (start, end *room.Room, point voxel.Point, dirs []voxel.Direction) {
	start, end = room0, room1
	if start.Origin.Y > end.Origin.Y {
		start, end = end, start
	}

	sx, sy, sz := start.Center()
	ex, _, ez := end.Center()
	_ = sy

	diffX := ex - sx
	diffZ := ez - sz
	width := float64(start.Width + end.Width)
	depth := float64(start.Depth + end.Depth)

	rect := Rect{
		Origin: Vec2{X: float64(start.Origin.X), Y: float64(start.Origin.Z)},
		Size:   Vec2{X: float64(start.Width), Y: float64(start.Depth)},
	}
	points := IntersectRectLine(rect, Vec2{X: sx, Y: sz}, Vec2{X: sx + diffX*width, Y: sz + diffZ*depth})

	if len(points) > 0 {
		last := points[len(points)-1]
		point = voxel.Point{X: int(last.X), Y: start.Origin.Y, Z: int(last.Y)}
	} else {
		point = start.Origin
	}

	if point.X == start.Origin.X {
		dirs = append(dirs, voxel.Left)
	} else if point.X == start.Origin.X+start.Width {
		point.X--
		dirs = append(dirs, voxel.Right)
	}

	if point.Z == start.Origin.Z {
		dirs = append(dirs, voxel.Far)
	} else if point.Z == start.Origin.Z+start.Depth {
		point.Z--
		dirs = append(dirs, voxel.Near)
	}

	return start, end, point, dirs
}
