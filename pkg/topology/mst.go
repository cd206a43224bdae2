package topology

import (
	"sort"

	"github.com/duskforge/voxeldungeon/pkg/room"
)

// allPairs builds every candidate connection between distinct rooms, an
// O(n^2) all-pairs loop. ids is the caller-supplied, already-sorted room id
// order, so the pair list (and therefore the MST tie-breaking below) is
// deterministic regardless of Go's randomized map iteration order.
func allPairs(rooms map[room.ID]*room.Room, ids []room.ID) []*RoomConnection {
	conns := make([]*RoomConnection, 0, len(ids)*(len(ids)-1)/2)
	for i := 0; i < len(ids); i++ {
		a := rooms[ids[i]]
		for j := i + 1; j < len(ids); j++ {
			b := rooms[ids[j]]
			conns = append(conns, &RoomConnection{
				Room0ID:       a.ID,
				Room1ID:       b.ID,
				SquaredLength: squaredDistance(a, b),
			})
		}
	}
	return conns
}

// unionFind is a standard union-by-rank, path-compressed disjoint-set
// structure backing Kruskal's algorithm.
type unionFind struct {
	parent map[room.ID]room.ID
	rank   map[room.ID]int
}

func newUnionFind(ids []room.ID) *unionFind {
	uf := &unionFind{
		parent: make(map[room.ID]room.ID, len(ids)),
		rank:   make(map[room.ID]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
	}
	return uf
}

func (uf *unionFind) find(x room.ID) room.ID {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(x, y room.ID) bool {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return false
	}
	switch {
	case uf.rank[rx] < uf.rank[ry]:
		uf.parent[rx] = ry
	case uf.rank[rx] > uf.rank[ry]:
		uf.parent[ry] = rx
	default:
		uf.parent[ry] = rx
		uf.rank[rx]++
	}
	return true
}

// kruskalMST runs Kruskal's algorithm over candidates, sorted ascending by
// squared length with the canonical connection key as a deterministic
// tie-breaker. Returns exactly len(ids)-1 connections when the room graph
// is connected by the candidate set, fewer if it isn't (never more).
func kruskalMST(ids []room.ID, candidates []*RoomConnection) []*RoomConnection {
	sorted := make([]*RoomConnection, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SquaredLength != sorted[j].SquaredLength {
			return sorted[i].SquaredLength < sorted[j].SquaredLength
		}
		ki, kj := sorted[i].Key(), sorted[j].Key()
		if ki.A != kj.A {
			return ki.A < kj.A
		}
		return ki.B < kj.B
	})

	uf := newUnionFind(ids)
	result := make([]*RoomConnection, 0, len(ids)-1)
	for _, c := range sorted {
		if uf.union(c.Room0ID, c.Room1ID) {
			result = append(result, c)
			if len(result) == len(ids)-1 {
				break
			}
		}
	}
	return result
}

// sortedIDs returns every room id in rooms in ascending order.
func sortedIDs(rooms map[room.ID]*room.Room) []room.ID {
	ids := make([]room.ID, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
