package topology

import "github.com/duskforge/voxeldungeon/pkg/room"

// Selector picks which room pairs the orchestrator should connect: a
// required set that must all route successfully, and an optional set the
// orchestrator may drop silently on routing failure.
type Selector interface {
	Select(rooms map[room.ID]*room.Room) (required, optional []*RoomConnection)
}

// KruskalDelaunaySelector is the default selector: required connections
// come from a minimum spanning tree over all room pairs (guarantees every
// room is reachable with the fewest possible corridors), optional
// connections come from a 3D Delaunay triangulation over room centres
// (reintroduces cycles, giving the layout alternate routes and loops).
// Both edge sets are computed from the same room-centre geometry.
type KruskalDelaunaySelector struct{}

// NewKruskalDelaunaySelector returns the default connection selector.
func NewKruskalDelaunaySelector() *KruskalDelaunaySelector { return &KruskalDelaunaySelector{} }

// Select implements Selector.
func (s *KruskalDelaunaySelector) Select(rooms map[room.ID]*room.Room) (required, optional []*RoomConnection) {
	if len(rooms) < 2 {
		return nil, nil
	}

	ids := sortedIDs(rooms)
	required = kruskalMST(ids, allPairs(rooms, ids))

	requiredKeys := make(map[ConnectionKey]bool, len(required))
	for _, c := range required {
		requiredKeys[c.Key()] = true
	}

	for _, c := range DelaunayEdges(rooms) {
		if !requiredKeys[c.Key()] {
			optional = append(optional, c)
		}
	}
	return required, optional
}
