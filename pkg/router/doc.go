// Package router implements the passage router: a bounded best-first search
// that carves a connected corridor (with stairs where tiers change) from a
// room boundary exit to a target room's floor, against a shared voxel.Map.
//
// This is the hard part of the generator. A plain A* does not work here
// because a cell's state is not a scalar best-cost: the same cell can be
// reached under different movement modes (which neighbours remain legal as
// the next step), and each mode has its own cost, so the "closed set" per
// cell is a short list of non-dominated (mode, cost) pairs rather than a
// single best value. See Route and the dominance relation on Mode.
//
// In Go, package voxel cannot import package router (router already depends
// on voxel for Map/Class/Point), so the search lives here as a free function
// operating on a *voxel.Map and merging its result back in via Map.Merge.
package router
