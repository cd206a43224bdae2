package topology

import "github.com/duskforge/voxeldungeon/pkg/room"

// ConnectionKey canonically identifies an unordered room pair: the smaller
// id always stored first, so (a, b) and (b, a) hash and compare equal. A
// single map keyed by the canonical pair is enough here, since
// RoomConnection is a small value type with no benefit from shared
// ownership.
type ConnectionKey struct {
	A, B room.ID
}

// NewConnectionKey builds the canonical key for the pair (x, y).
func NewConnectionKey(x, y room.ID) ConnectionKey {
	if x <= y {
		return ConnectionKey{A: x, B: y}
	}
	return ConnectionKey{A: y, B: x}
}

// RoomConnection is a candidate connection between two rooms, weighted by
// the squared Euclidean distance between their centres; the square root is
// never taken since only relative ordering matters for both MST and
// Delaunay.
type RoomConnection struct {
	Room0ID       room.ID
	Room1ID       room.ID
	SquaredLength float64
}

// Key returns the connection's canonical pair key.
func (c *RoomConnection) Key() ConnectionKey {
	return NewConnectionKey(c.Room0ID, c.Room1ID)
}

func squaredDistance(a, b *room.Room) float64 {
	ax, ay, az := a.Center()
	bx, by, bz := b.Center()
	dx, dy, dz := ax-bx, ay-by, az-bz
	return dx*dx + dy*dy + dz*dz
}
