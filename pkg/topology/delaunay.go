package topology

import "github.com/duskforge/voxeldungeon/pkg/room"

// This file implements the Bowyer-Watson 3D Delaunay triangulation. Each
// vertex carries an explicit integer index (synthetic negative indices for
// the four bounding super-vertices), so identity is exact rather than
// reconstructed from rounded float coordinates.

type vertex struct {
	idx     int // index into the caller's point list; negative for super-vertices
	x, y, z float64
}

func (v vertex) equal(o vertex) bool { return v.idx == o.idx }

type tetrahedron struct {
	a, b, c, d          vertex
	circumcenter        [3]float64
	circumradiusSquared float64
	bad                 bool
}

func newTetrahedron(a, b, c, d vertex) tetrahedron {
	t := tetrahedron{a: a, b: b, c: c, d: d}
	t.calculateCircumsphere()
	return t
}

func det4(m [16]float64) float64 {
	// Cofactor expansion along the first row. m is row-major: m[0..3] row 0,
	// m[4..7] row 1, etc. The determinant is basis-independent of row/column
	// convention since det(A) == det(A^T).
	sub3 := func(a, b, c, d, e, f, g, h, i float64) float64 {
		return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	}
	m00 := sub3(m[5], m[6], m[7], m[9], m[10], m[11], m[13], m[14], m[15])
	m01 := sub3(m[4], m[6], m[7], m[8], m[10], m[11], m[12], m[14], m[15])
	m02 := sub3(m[4], m[5], m[7], m[8], m[9], m[11], m[12], m[13], m[15])
	m03 := sub3(m[4], m[5], m[6], m[8], m[9], m[10], m[12], m[13], m[14])
	return m[0]*m00 - m[1]*m01 + m[2]*m02 - m[3]*m03
}

func (t *tetrahedron) calculateCircumsphere() {
	ax, ay, az := t.a.x, t.a.y, t.a.z
	bx, by, bz := t.b.x, t.b.y, t.b.z
	cx, cy, cz := t.c.x, t.c.y, t.c.z
	dx, dy, dz := t.d.x, t.d.y, t.d.z

	detA := det4([16]float64{
		ax, bx, cx, dx,
		ay, by, cy, dy,
		az, bz, cz, dz,
		1, 1, 1, 1,
	})

	sqA := ax*ax + ay*ay + az*az
	sqB := bx*bx + by*by + bz*bz
	sqC := cx*cx + cy*cy + cz*cz
	sqD := dx*dx + dy*dy + dz*dz

	dxDet := det4([16]float64{
		sqA, sqB, sqC, sqD,
		ay, by, cy, dy,
		az, bz, cz, dz,
		1, 1, 1, 1,
	})
	dyDet := -det4([16]float64{
		sqA, sqB, sqC, sqD,
		ax, bx, cx, dx,
		az, bz, cz, dz,
		1, 1, 1, 1,
	})
	dzDet := det4([16]float64{
		sqA, sqB, sqC, sqD,
		ax, bx, cx, dx,
		ay, by, cy, dy,
		1, 1, 1, 1,
	})
	cDet := det4([16]float64{
		sqA, sqB, sqC, sqD,
		ax, bx, cx, dx,
		ay, by, cy, dy,
		az, bz, cz, dz,
	})

	t.circumcenter = [3]float64{
		dxDet / (2 * detA),
		dyDet / (2 * detA),
		dzDet / (2 * detA),
	}
	t.circumradiusSquared = (dxDet*dxDet + dyDet*dyDet + dzDet*dzDet - 4*detA*cDet) / (4 * detA * detA)
}

func (t *tetrahedron) circumsphereContains(p [3]float64) bool {
	dx := p[0] - t.circumcenter[0]
	dy := p[1] - t.circumcenter[1]
	dz := p[2] - t.circumcenter[2]
	return dx*dx+dy*dy+dz*dz <= t.circumradiusSquared
}

func (t *tetrahedron) containsVertex(v vertex) bool {
	return v.equal(t.a) || v.equal(t.b) || v.equal(t.c) || v.equal(t.d)
}

type triangle struct {
	u, v, w vertex
	bad     bool
}

func newTriangle(u, v, w vertex) triangle { return triangle{u: u, v: v, w: w} }

// sameVertexSet reports whether t and o share the same three vertices,
// order-independent.
func (t triangle) sameVertexSet(o triangle) bool {
	has := func(tr triangle, v vertex) bool {
		return v.equal(tr.u) || v.equal(tr.v) || v.equal(tr.w)
	}
	return has(o, t.u) && has(o, t.v) && has(o, t.w)
}

type edge struct {
	u, v vertex
}

func (e edge) sameVertexSet(o edge) bool {
	return (e.u.equal(o.u) || e.v.equal(o.u)) && (e.u.equal(o.v) || e.v.equal(o.v))
}

// DelaunayEdges computes the 3D Delaunay triangulation over the centres of
// rooms and returns one RoomConnection per triangulation edge between two
// real rooms (super-vertex edges are discarded along with any tetrahedron
// touching a super-vertex). Order is deterministic: rooms are visited in
// ascending id order, matching allPairs/kruskalMST's tie-breaking contract.
func DelaunayEdges(rooms map[room.ID]*room.Room) []*RoomConnection {
	ids := sortedIDs(rooms)
	if len(ids) < 2 {
		return nil
	}

	verts := make([]vertex, len(ids))
	for i, id := range ids {
		x, y, z := rooms[id].Center()
		verts[i] = vertex{idx: i, x: x, y: y, z: z}
	}

	tetras := triangulate(verts)

	seenEdges := make([]edge, 0, len(tetras)*6)
	conns := make([]*RoomConnection, 0, len(tetras)*6)
	addEdge := func(a, b vertex) {
		if a.idx < 0 || b.idx < 0 {
			return
		}
		e := edge{u: a, v: b}
		for _, s := range seenEdges {
			if s.sameVertexSet(e) {
				return
			}
		}
		seenEdges = append(seenEdges, e)
		roomA, roomB := rooms[ids[a.idx]], rooms[ids[b.idx]]
		conns = append(conns, &RoomConnection{
			Room0ID:       roomA.ID,
			Room1ID:       roomB.ID,
			SquaredLength: squaredDistance(roomA, roomB),
		})
	}

	for _, t := range tetras {
		addEdge(t.a, t.b)
		addEdge(t.b, t.c)
		addEdge(t.c, t.a)
		addEdge(t.d, t.a)
		addEdge(t.d, t.b)
		addEdge(t.d, t.c)
	}

	return conns
}

// triangulate runs Bowyer-Watson incremental insertion and returns the
// final tetrahedra, with every tetrahedron touching one of the four
// bounding super-vertices already discarded.
func triangulate(verts []vertex) []tetrahedron {
	minX, minY, minZ := verts[0].x, verts[0].y, verts[0].z
	maxX, maxY, maxZ := minX, minY, minZ
	for _, v := range verts {
		if v.x < minX {
			minX = v.x
		}
		if v.x > maxX {
			maxX = v.x
		}
		if v.y < minY {
			minY = v.y
		}
		if v.y > maxY {
			maxY = v.y
		}
		if v.z < minZ {
			minZ = v.z
		}
		if v.z > maxZ {
			maxZ = v.z
		}
	}

	dx, dy, dz := maxX-minX, maxY-minY, maxZ-minZ
	deltaMax := dx
	if dy > deltaMax {
		deltaMax = dy
	}
	if dz > deltaMax {
		deltaMax = dz
	}
	deltaMax *= 2

	p1 := vertex{idx: -1, x: minX - 1, y: minY - 1, z: minZ - 1}
	p2 := vertex{idx: -2, x: maxX + deltaMax, y: minY - 1, z: minZ - 1}
	p3 := vertex{idx: -3, x: minX - 1, y: maxY + deltaMax, z: minZ - 1}
	p4 := vertex{idx: -4, x: minX - 1, y: minY - 1, z: maxZ + deltaMax}

	tetras := []tetrahedron{newTetrahedron(p1, p2, p3, p4)}

	for _, v := range verts {
		pos := [3]float64{v.x, v.y, v.z}
		var polygon []triangle

		for i := range tetras {
			if tetras[i].circumsphereContains(pos) {
				tetras[i].bad = true
				polygon = append(polygon,
					newTriangle(tetras[i].a, tetras[i].b, tetras[i].c),
					newTriangle(tetras[i].a, tetras[i].b, tetras[i].d),
					newTriangle(tetras[i].a, tetras[i].c, tetras[i].d),
					newTriangle(tetras[i].b, tetras[i].c, tetras[i].d),
				)
			}
		}

		for i := 0; i < len(polygon); i++ {
			for j := i + 1; j < len(polygon); j++ {
				if polygon[i].sameVertexSet(polygon[j]) {
					polygon[i].bad = true
					polygon[j].bad = true
				}
			}
		}

		tetras = filterBadTetrahedra(tetras)
		for _, tr := range polygon {
			if tr.bad {
				continue
			}
			tetras = append(tetras, newTetrahedron(tr.u, tr.v, tr.w, v))
		}
	}

	final := tetras[:0]
	for _, t := range tetras {
		if t.containsVertex(p1) || t.containsVertex(p2) || t.containsVertex(p3) || t.containsVertex(p4) {
			continue
		}
		final = append(final, t)
	}
	return final
}

func filterBadTetrahedra(tetras []tetrahedron) []tetrahedron {
	kept := tetras[:0]
	for _, t := range tetras {
		if !t.bad {
			kept = append(kept, t)
		}
	}
	return kept
}
