// Package room defines the Room type and a tiered room placer.
//
// Room placement is an external collaborator to the passage router: the
// router only needs a set of non-overlapping rooms and doesn't care how
// they were produced. This package supplies one concrete placer, using a
// tiered block-partitioning scheme, so the module is runnable end to end.
package room
