package router

import "github.com/duskforge/voxeldungeon/pkg/voxel"

// DirSet is a small bitset over the four cardinal directions.
type DirSet uint8

// AllDirs is the set containing all four cardinal directions.
const AllDirs DirSet = 1<<voxel.Left | 1<<voxel.Right | 1<<voxel.Far | 1<<voxel.Near

// NewDirSet builds a DirSet from a list of directions.
func NewDirSet(dirs ...voxel.Direction) DirSet {
	var s DirSet
	for _, d := range dirs {
		s |= 1 << d
	}
	return s
}

// Has reports whether d is a member of s.
func (s DirSet) Has(d voxel.Direction) bool {
	return s&(1<<d) != 0
}

// Without returns s with d removed.
func (s DirSet) Without(d voxel.Direction) DirSet {
	return s &^ (1 << d)
}

// SubsetOf reports whether every direction in s is also in other.
func (s DirSet) SubsetOf(other DirSet) bool {
	return s & ^other == 0
}

// Slice returns the set's members in the fixed, deterministic order of
// voxel.Directions. This order governs successor-enqueue order in the
// router, which the generator's determinism contract depends on.
func (s DirSet) Slice() []voxel.Direction {
	out := make([]voxel.Direction, 0, 4)
	for _, d := range voxel.Directions {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Mode is a route's movement mode: either ParallelShift (free horizontal
// movement restricted to Allowed directions for the next step) or Stair
// (the next step must build a stair rising in Dir).
type Mode struct {
	IsStair bool
	Allowed DirSet          // meaningful when !IsStair
	Dir     voxel.Direction // meaningful when IsStair
}

// ParallelShift builds a ParallelShift mode allowing the given directions.
func ParallelShift(allowed DirSet) Mode {
	return Mode{IsStair: false, Allowed: allowed}
}

// Stair builds a Stair mode rising in direction dir.
func Stair(dir voxel.Direction) Mode {
	return Mode{IsStair: true, Dir: dir}
}

// Contains implements the dominance relation: a.Contains(b) holds when a is
// at least as permissive as b for the purposes of future moves, either both
// are ParallelShift and a's allowed set is a superset of b's, or both are
// the identical Stair mode.
func (a Mode) Contains(b Mode) bool {
	if a.IsStair || b.IsStair {
		return a.IsStair && b.IsStair && a.Dir == b.Dir
	}
	return b.Allowed.SubsetOf(a.Allowed)
}

// nextParallelShiftAllowed computes the allowed-directions set for the
// ParallelShift successor after moving in direction m: every direction
// except m's opposite.
func nextParallelShiftAllowed(m voxel.Direction) DirSet {
	return AllDirs.Without(m.Opposite())
}
