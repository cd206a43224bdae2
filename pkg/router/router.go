package router

import (
	"errors"

	"github.com/duskforge/voxeldungeon/pkg/queue"
	"github.com/duskforge/voxeldungeon/pkg/voxel"
)

// ErrUnreachable is returned when the queue drains without reaching the
// target room's floor.
var ErrUnreachable = errors.New("router: unreachable")

// ErrConflict is voxel.ErrConflict, which voxel.Map.Merge returns when a
// proposal collides with a committed cell of a different class. Route
// itself never returns it (failed writes are simply discarded routes, not
// hard errors).
var ErrConflict = voxel.ErrConflict

// NoRoomError indicates the passage's end room id is absent from the rooms
// table, a caller bug, not a routing failure.
type NoRoomError struct {
	RoomID voxel.RoomID
}

func (e *NoRoomError) Error() string {
	return "router: no such room"
}

// TargetRoom is the minimal room information the router's score function
// needs about the destination room: its id (for the goal check), the y of
// its floor, and its real-valued centre truncated to integer x/z.
type TargetRoom struct {
	ID       voxel.RoomID
	OriginY  int
	CenterX  int
	CenterZ  int
}

// Passage describes one connection to route: where the corridor starts,
// which directions are legal as the very first step, how tall the corridor
// is, and which rooms it connects.
type Passage struct {
	Start       voxel.Point
	StartDirs   []voxel.Direction
	Height      int
	StartRoomID voxel.RoomID
	EndRoomID   voxel.RoomID
}

// maxRoutesPerCell caps the per-point Pareto set. Without this cap,
// combinatorial mode explosion (many ParallelShift allowed-dirs subsets,
// many Stair directions) can stall routing indefinitely; the cap is part
// of the contract, not a performance nicety.
const maxRoutesPerCell = 10

type route struct {
	mode     Mode
	point    voxel.Point
	cost     int
	proposal map[voxel.Point]voxel.Class
}

func cloneProposal(p map[voxel.Point]voxel.Class) map[voxel.Point]voxel.Class {
	out := make(map[voxel.Point]voxel.Class, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// calcScore is the router's priority-queue key: Manhattan distance to the
// target room's (centre x, origin y, centre z) times 10, plus accumulated
// cost. The ×10 weight makes this greedy rather than an admissible
// heuristic; the router trades optimality for speed and goal-seeking
// corridors, and tests must only assert reachability, never shortest path.
func calcScore(target TargetRoom, p voxel.Point, cost int) int {
	dx := abs(target.CenterX - p.X)
	dy := abs(target.OriginY - p.Y)
	dz := abs(target.CenterZ - p.Z)
	return (dx+dy+dz)*10 + cost
}

// tryParallelShift attempts to extend proposal with a parallel-shift step
// landing on p: the ground cell beneath p must be empty or PassageFloor,
// and the h cells of p upward must each be empty or PassageSpace. Checks
// against both the already-committed map and the route's own proposal so
// a route never contradicts a cell it already wrote.
func tryParallelShift(committed *voxel.Map, proposal map[voxel.Point]voxel.Class, p voxel.Point, height int) bool {
	groundPoint := p.Add(voxel.Point{Y: -1})
	if !cellOK(committed, proposal, groundPoint, voxel.PassageFloorClass) {
		return false
	}
	for k := 0; k < height; k++ {
		sp := p.Up(k)
		if !cellOK(committed, proposal, sp, voxel.PassageSpaceClass) {
			return false
		}
	}

	proposal[groundPoint] = voxel.PassageFloorClass
	for k := 0; k < height; k++ {
		proposal[p.Up(k)] = voxel.PassageSpaceClass
	}
	return true
}

// tryStair attempts to extend proposal with a stair step at p rising in
// direction dir: p itself must be completely empty (a stair displaces the
// ground, it doesn't sit on a floor cell), and the h cells above it must
// each be empty or PassageSpace.
func tryStair(committed *voxel.Map, proposal map[voxel.Point]voxel.Class, p voxel.Point, height int, dir voxel.Direction) bool {
	if !cellEmpty(committed, proposal, p) {
		return false
	}
	for k := 1; k <= height; k++ {
		sp := p.Up(k)
		if !cellOK(committed, proposal, sp, voxel.PassageSpaceClass) {
			return false
		}
	}

	proposal[p] = voxel.NewPassageStair(dir)
	for k := 1; k <= height; k++ {
		proposal[p.Up(k)] = voxel.PassageSpaceClass
	}
	return true
}

// cellOK reports whether p may be written as want: it must be either
// unoccupied in both the committed map and the proposal, or already
// classified exactly as want in one of them.
func cellOK(committed *voxel.Map, proposal map[voxel.Point]voxel.Class, p voxel.Point, want voxel.Class) bool {
	if c, ok := proposal[p]; ok {
		return c == want
	}
	c := committed.Read(p)
	if c == voxel.WallClass {
		return true
	}
	return c == want
}

// cellEmpty reports whether p is unoccupied in both the committed map and
// the proposal.
func cellEmpty(committed *voxel.Map, proposal map[voxel.Point]voxel.Class, p voxel.Point) bool {
	if _, ok := proposal[p]; ok {
		return false
	}
	return committed.Read(p) == voxel.WallClass
}

// acceptedEntry is one (mode, cost) pair in a cell's Pareto set.
type acceptedEntry struct {
	mode Mode
	cost int
}

// Route runs the passage router: a bounded best-first search from
// passage.Start toward a RoomBottomSpace cell of passage.EndRoomID, against
// committed (read-only during the search) with target describing the
// destination room's centre/floor for scoring.
//
// On success it returns a proposal map ready to be merged into committed
// via committed.Merge. On failure it returns ErrUnreachable, or a
// *NoRoomError if target.ID doesn't match passage.EndRoomID (a caller bug:
// the caller is expected to have already resolved the end room).
func Route(committed *voxel.Map, passage Passage, target TargetRoom) (map[voxel.Point]voxel.Class, error) {
	if target.ID != passage.EndRoomID {
		return nil, &NoRoomError{RoomID: passage.EndRoomID}
	}

	q := queue.New[int, *route]()
	accepted := make(map[voxel.Point][]acceptedEntry)

	for _, d := range passage.StartDirs {
		next := passage.Start.Add(d.Vector())
		score := calcScore(target, next, 0)

		q.PushBack(score, &route{
			mode:     ParallelShift(nextParallelShiftAllowed(d)),
			point:    next,
			cost:     0,
			proposal: make(map[voxel.Point]voxel.Class),
		})
		q.PushBack(score, &route{
			mode:     Stair(d),
			point:    next,
			cost:     0,
			proposal: make(map[voxel.Point]voxel.Class),
		})
	}

	start, end := committed.Bounds()

	for {
		r, ok := q.PopFirstBack()
		if !ok {
			break
		}

		if r.point.X < start.X || r.point.Y < start.Y || r.point.Z < start.Z ||
			r.point.X >= end.X || r.point.Y >= end.Y || r.point.Z >= end.Z {
			continue
		}

		if committed.Read(r.point).IsRoomBottomSpaceOf(passage.EndRoomID) {
			return r.proposal, nil
		}

		if !admit(accepted, r) {
			continue
		}

		if r.mode.IsStair {
			if !tryStair(committed, r.proposal, r.point, passage.Height, r.mode.Dir) {
				continue
			}
			enqueueStairSuccessors(q, target, r)
		} else {
			if !tryParallelShift(committed, r.proposal, r.point, passage.Height) {
				continue
			}
			enqueueParallelShiftSuccessors(q, target, r)
		}
	}

	return nil, ErrUnreachable
}

// admit applies the dominance check (spec step 3) at r.point: discard r if
// any already-accepted entry dominates it; otherwise remove every accepted
// entry r dominates (r's mode contains it at no greater cost) and store r in
// their place, or, if it dominates none, append r subject to the per-point
// cap. Replacing existing entries never grows the list, so only the append
// path is capped.
func admit(accepted map[voxel.Point][]acceptedEntry, r *route) bool {
	entries := accepted[r.point]

	for _, e := range entries {
		if e.mode.Contains(r.mode) && e.cost <= r.cost {
			return false
		}
	}

	kept := make([]acceptedEntry, 0, len(entries)+1)
	for _, e := range entries {
		if r.mode.Contains(e.mode) && r.cost <= e.cost {
			continue
		}
		kept = append(kept, e)
	}

	if len(kept) == len(entries) && len(entries) >= maxRoutesPerCell {
		return false
	}

	accepted[r.point] = append(kept, acceptedEntry{mode: r.mode, cost: r.cost})
	return true
}

func enqueueParallelShiftSuccessors(q *queue.OrderedBucketQueue[int, *route], target TargetRoom, r *route) {
	for _, d := range r.mode.Allowed.Slice() {
		next := r.point.Add(d.Vector())
		cost := r.cost + 1
		score := calcScore(target, next, cost)

		q.PushBack(score, &route{
			mode:     ParallelShift(nextParallelShiftAllowed(d)),
			point:    next,
			cost:     cost,
			proposal: cloneProposal(r.proposal),
		})
		q.PushBack(score, &route{
			mode:     Stair(d),
			point:    next,
			cost:     cost,
			proposal: cloneProposal(r.proposal),
		})
	}
}

func enqueueStairSuccessors(q *queue.OrderedBucketQueue[int, *route], target TargetRoom, r *route) {
	d := r.mode.Dir
	next := r.point.Add(d.Vector()).Up(1)
	cost := r.cost + 1
	score := calcScore(target, next, cost)

	q.PushBack(score, &route{
		mode:     ParallelShift(nextParallelShiftAllowed(d)),
		point:    next,
		cost:     cost,
		proposal: cloneProposal(r.proposal),
	})
	q.PushBack(score, &route{
		mode:     Stair(d),
		point:    next,
		cost:     cost,
		proposal: cloneProposal(r.proposal),
	})
}
