// Package geometry picks the exit point and starting directions for a
// passage between two rooms: the lower room's boundary is intersected with
// the line from its centre toward the higher room's centre, and the
// intersection point's position on the rectangle determines which cardinal
// directions a corridor may legally start in.
package geometry
