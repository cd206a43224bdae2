// Package voxel defines the voxel coordinate system, the per-cell class
// taxonomy, and the bounded sparse Map that owns committed dungeon geometry.
//
// The map is the single source of truth for "what is already built": rooms
// are stamped into it directly, and passages are carved into it through the
// router (package router), which never sees the map mutate mid-search; it
// works against a private proposal and only the final accepted route is
// merged back in.
package voxel
