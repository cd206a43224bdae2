// Package export serializes a generated dungeon.Result to JSON for
// storage/transmission and to SVG for a plan-view (top-down, every tier
// drawn onto one plane) visualization.
package export
