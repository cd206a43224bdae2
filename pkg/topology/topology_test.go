package topology

import (
	"testing"

	"github.com/duskforge/voxeldungeon/pkg/room"
	"github.com/duskforge/voxeldungeon/pkg/voxel"
)

func makeRooms(centers [][3]int) map[room.ID]*room.Room {
	rooms := make(map[room.ID]*room.Room, len(centers))
	for i, c := range centers {
		id := room.ID(i + 1)
		rooms[id] = room.New(id, 4, 2, 4, voxel.Point{X: c[0], Y: c[1], Z: c[2]})
	}
	return rooms
}

func TestConnectionKey_CanonicalOrder(t *testing.T) {
	if NewConnectionKey(3, 1) != NewConnectionKey(1, 3) {
		t.Fatal("ConnectionKey must not depend on argument order")
	}
	k := NewConnectionKey(1, 3)
	if k.A != 1 || k.B != 3 {
		t.Fatalf("expected canonical (1,3), got (%d,%d)", k.A, k.B)
	}
}

func TestKruskalMST_SpansAllRoomsWithNoCycles(t *testing.T) {
	rooms := makeRooms([][3]int{
		{0, 0, 0}, {10, 0, 0}, {0, 0, 10}, {10, 0, 10}, {5, 0, 5},
	})
	ids := sortedIDs(rooms)
	mst := kruskalMST(ids, allPairs(rooms, ids))

	if len(mst) != len(rooms)-1 {
		t.Fatalf("len(mst) = %d, want %d (a spanning tree over %d rooms)", len(mst), len(rooms)-1, len(rooms))
	}

	uf := newUnionFind(ids)
	for _, c := range mst {
		if !uf.union(c.Room0ID, c.Room1ID) {
			t.Fatalf("connection %+v closed a cycle; MST must be acyclic", c)
		}
	}
	root := uf.find(ids[0])
	for _, id := range ids[1:] {
		if uf.find(id) != root {
			t.Fatalf("room %d not connected to the spanning tree", id)
		}
	}
}

func TestKruskalMST_Deterministic(t *testing.T) {
	rooms := makeRooms([][3]int{
		{0, 0, 0}, {10, 0, 0}, {0, 0, 10}, {10, 0, 10}, {5, 0, 5}, {20, 0, 3},
	})
	ids := sortedIDs(rooms)
	candidates := allPairs(rooms, ids)

	a := kruskalMST(ids, candidates)
	b := kruskalMST(ids, candidates)

	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Key() != b[i].Key() {
			t.Fatalf("edge %d differs: %+v vs %+v", i, a[i].Key(), b[i].Key())
		}
	}
}

func TestDelaunayEdges_NoSelfLoopsAndDeterministic(t *testing.T) {
	rooms := makeRooms([][3]int{
		{0, 0, 0}, {10, 2, 0}, {0, 4, 10}, {10, 0, 10}, {5, 6, 5}, {20, 3, 3}, {3, 1, 18},
	})

	a := DelaunayEdges(rooms)
	b := DelaunayEdges(rooms)

	if len(a) == 0 {
		t.Fatal("expected at least one Delaunay edge for 7 non-coplanar rooms")
	}
	if len(a) != len(b) {
		t.Fatalf("non-deterministic edge count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Key() != b[i].Key() {
			t.Fatalf("edge %d differs across runs: %+v vs %+v", i, a[i].Key(), b[i].Key())
		}
	}

	for _, c := range a {
		if c.Room0ID == c.Room1ID {
			t.Fatalf("self-loop connection: %+v", c)
		}
	}
}

func TestKruskalDelaunaySelector_OptionalExcludesRequired(t *testing.T) {
	rooms := makeRooms([][3]int{
		{0, 0, 0}, {10, 0, 0}, {0, 0, 10}, {10, 0, 10}, {5, 0, 5}, {20, 0, 3},
	})
	s := NewKruskalDelaunaySelector()
	required, optional := s.Select(rooms)

	if len(required) != len(rooms)-1 {
		t.Fatalf("len(required) = %d, want %d", len(required), len(rooms)-1)
	}

	requiredKeys := make(map[ConnectionKey]bool, len(required))
	for _, c := range required {
		requiredKeys[c.Key()] = true
	}
	for _, c := range optional {
		if requiredKeys[c.Key()] {
			t.Fatalf("optional connection %+v duplicates a required one", c.Key())
		}
	}
}

func TestKruskalDelaunaySelector_SingleRoomHasNoConnections(t *testing.T) {
	rooms := makeRooms([][3]int{{0, 0, 0}})
	s := NewKruskalDelaunaySelector()
	required, optional := s.Select(rooms)
	if required != nil || optional != nil {
		t.Fatalf("expected no connections for a single room, got required=%v optional=%v", required, optional)
	}
}
