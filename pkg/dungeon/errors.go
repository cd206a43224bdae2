package dungeon

import (
	"errors"
	"fmt"

	"github.com/duskforge/voxeldungeon/pkg/room"
	"github.com/duskforge/voxeldungeon/pkg/router"
)

// ErrNarrowWidth is returned by Config.Validate when the configured width
// cannot fit even a single room column at the minimum room width plus
// margin (⌊width / (roomWidthMin + marginX)⌋ = 0).
var ErrNarrowWidth = errors.New("dungeon: width too narrow for room width range")

// ErrNarrowDepth is ErrNarrowWidth's depth-axis analogue.
var ErrNarrowDepth = errors.New("dungeon: depth too narrow for room depth range")

// ErrNarrowHeight is returned when the configured room hierarchy can't fit
// in height even at the minimum room height plus margin per tier.
var ErrNarrowHeight = errors.New("dungeon: height too narrow for room hierarchy")

// ErrLayoutConflict is returned by Generate when two placed rooms' stamped
// shells overlap in the voxel map. The tiered placer avoids this by
// construction, so this indicates a Placer implementation bug if it
// surfaces with the default placer.
var ErrLayoutConflict = errors.New("dungeon: room layout conflict")

// ConnectionError wraps a routing failure with the room pair it occurred
// on, so callers can report which connection failed.
type ConnectionError struct {
	Room0, Room1 room.ID
	Required     bool
	Err          error
}

func (e *ConnectionError) Error() string {
	kind := "optional"
	if e.Required {
		kind = "required"
	}
	return fmt.Sprintf("dungeon: %s connection %d-%d: %v", kind, e.Room0, e.Room1, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IsUnreachable reports whether err is, or wraps, router.ErrUnreachable.
func IsUnreachable(err error) bool {
	return errors.Is(err, router.ErrUnreachable)
}

// IsNoRoom reports whether err is, or wraps, a *router.NoRoomError.
func IsNoRoom(err error) bool {
	var e *router.NoRoomError
	return errors.As(err, &e)
}
