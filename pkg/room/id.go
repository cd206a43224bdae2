package room

import "github.com/duskforge/voxeldungeon/pkg/voxel"

// ID identifies a room. It is the same underlying type voxel.Class uses to
// tag room-owned cells, so a Room's ID can be stamped directly into the
// voxel map without conversion.
type ID = voxel.RoomID

// IDAllocator hands out monotonically increasing room IDs starting at 1.
// It lives on the generation context (e.g. embedded in a Placer call), never
// as a package-level global, so concurrent or repeated generations never
// share allocator state.
type IDAllocator struct {
	next ID
}

// NewIDAllocator creates an allocator whose first Next() returns ID(1).
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns the next unused ID and advances the allocator.
func (a *IDAllocator) Next() ID {
	id := a.next
	a.next++
	return id
}
