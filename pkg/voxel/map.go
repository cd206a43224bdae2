package voxel

import "errors"

// ErrConflict is returned when a write would overwrite a cell with an
// incompatible class.
var ErrConflict = errors.New("voxel: conflict")

// Footprint is the minimal view of a room a Map needs in order to stamp its
// shell. Package room's Room satisfies this; voxel does not import room to
// avoid a dependency cycle (room needs voxel's Class/Point types).
type Footprint interface {
	FootprintID() RoomID
	FootprintOrigin() Point
	FootprintSize() (width, height, depth int)
}

// Map is a bounded, sparse mapping from voxel coordinate to Class. Only
// non-wall cells are stored; everything absent reads back as Wall. The
// domain bounds are advisory for the router (routes that leave them are
// discarded); the store itself accepts writes at any coordinate.
type Map struct {
	cells map[Point]Class
	start Point
	end   Point // half-open
}

// NewMap creates a Map whose declared domain is the half-open box
// [start, start+size).
func NewMap(start Point, size Point) *Map {
	return &Map{
		cells: make(map[Point]Class),
		start: start,
		end:   start.Add(size),
	}
}

// Bounds returns the map's declared half-open domain.
func (m *Map) Bounds() (start, end Point) {
	return m.start, m.end
}

// InBounds reports whether p lies within the declared domain.
func (m *Map) InBounds(p Point) bool {
	return p.X >= m.start.X && p.Y >= m.start.Y && p.Z >= m.start.Z &&
		p.X < m.end.X && p.Y < m.end.Y && p.Z < m.end.Z
}

// Read returns the class at p, or Wall if the cell is unoccupied.
func (m *Map) Read(p Point) Class {
	if c, ok := m.cells[p]; ok {
		return c
	}
	return WallClass
}

// write is an internal helper that commits a single cell, rejecting any
// attempt to overwrite an existing cell with a different class.
func (m *Map) write(p Point, c Class) error {
	if existing, ok := m.cells[p]; ok {
		if existing != c {
			return ErrConflict
		}
		return nil
	}
	m.cells[p] = c
	return nil
}

// AddRoom stamps a room's full voxel shell: RoomFloor at y=origin.y-1,
// RoomBottomSpace at y=origin.y, and RoomSpace above, across the room's
// full width x depth footprint. The write is atomic: if any cell in the
// shell is already occupied, no part of the shell is committed.
func (m *Map) AddRoom(room Footprint) error {
	id := room.FootprintID()
	origin := room.FootprintOrigin()
	width, height, depth := room.FootprintSize()

	shell := make(map[Point]Class, width*depth*(height+1))
	for y := -1; y < height; y++ {
		var cls Class
		switch {
		case y == -1:
			cls = NewRoomFloor(id)
		case y == 0:
			cls = NewRoomBottomSpace(id)
		default:
			cls = NewRoomSpace(id)
		}
		for z := 0; z < depth; z++ {
			for x := 0; x < width; x++ {
				p := Point{origin.X + x, origin.Y + y, origin.Z + z}
				if _, occupied := m.cells[p]; occupied {
					return ErrConflict
				}
				shell[p] = cls
			}
		}
	}

	for p, c := range shell {
		m.cells[p] = c
	}
	return nil
}

// Merge commits every cell of a proposal (e.g. an accepted route's
// proposal) into the map. Callers are expected to have already validated
// the proposal never collides with a committed cell of a different class;
// Merge itself performs the same guard AddRoom does, atomically.
func (m *Map) Merge(proposal map[Point]Class) error {
	for p, c := range proposal {
		if existing, ok := m.cells[p]; ok && existing != c {
			return ErrConflict
		}
	}
	for p, c := range proposal {
		m.cells[p] = c
	}
	return nil
}

// Len returns the number of committed non-wall cells.
func (m *Map) Len() int {
	return len(m.cells)
}

// All iterates every committed (point, class) pair. Iteration order is not
// specified; callers needing determinism must sort.
func (m *Map) All(fn func(Point, Class)) {
	for p, c := range m.cells {
		fn(p, c)
	}
}
