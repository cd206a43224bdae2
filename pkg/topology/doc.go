// Package topology selects which room pairs get connected: a required set
// via minimum spanning tree over pairwise room-centre distances (every room
// reachable, no cycles), and an optional set via 3D Delaunay triangulation
// over the same centres (extra connections that add cycles back in, making
// the layout less maze-like). Both are external collaborators in the
// generator's pipeline; the orchestrator always routes the required set
// and best-effort routes the optional set.
package topology
