package room

import "github.com/duskforge/voxeldungeon/pkg/voxel"

// Room is a single axis-aligned rectangular room.
type Room struct {
	ID     ID
	Width  int
	Height int
	Depth  int
	Origin voxel.Point
}

// New constructs a Room from its width/height/depth and origin.
func New(id ID, width, height, depth int, origin voxel.Point) *Room {
	return &Room{ID: id, Width: width, Height: height, Depth: depth, Origin: origin}
}

// End returns origin + size, the exclusive upper corner of the room.
func (r *Room) End() voxel.Point {
	return voxel.Point{
		X: r.Origin.X + r.Width,
		Y: r.Origin.Y + r.Height,
		Z: r.Origin.Z + r.Depth,
	}
}

// Center returns the room's real-valued centroid.
func (r *Room) Center() (x, y, z float64) {
	return float64(r.Origin.X) + float64(r.Width)/2,
		float64(r.Origin.Y) + float64(r.Height)/2,
		float64(r.Origin.Z) + float64(r.Depth)/2
}

// Overlaps reports whether r and other's footprints intersect or touch
// (share a face, edge, or corner) once each is padded by margin on every
// side. Unused by the tiered placer (which avoids
// overlap by construction) but kept for placers that need an explicit
// conflict check, and for tests.
func (r *Room) Overlaps(other *Room, margin int) bool {
	rEnd, oEnd := r.End(), other.End()
	rEnd = voxel.Point{X: rEnd.X + margin, Y: rEnd.Y + margin, Z: rEnd.Z + margin}
	oEnd = voxel.Point{X: oEnd.X + margin, Y: oEnd.Y + margin, Z: oEnd.Z + margin}
	return r.Origin.X <= oEnd.X && other.Origin.X <= rEnd.X &&
		r.Origin.Y <= oEnd.Y && other.Origin.Y <= rEnd.Y &&
		r.Origin.Z <= oEnd.Z && other.Origin.Z <= rEnd.Z
}

// FootprintID, FootprintOrigin, and FootprintSize implement voxel.Footprint.
func (r *Room) FootprintID() voxel.RoomID    { return r.ID }
func (r *Room) FootprintOrigin() voxel.Point { return r.Origin }
func (r *Room) FootprintSize() (width, height, depth int) {
	return r.Width, r.Height, r.Depth
}
