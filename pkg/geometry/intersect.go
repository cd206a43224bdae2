package geometry

// Vec2 is a real-valued 2D point, used here for the (x, z) plane.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in the (x, z) plane: Origin is its
// lower corner, Size its (width, depth).
type Rect struct {
	Origin Vec2
	Size   Vec2
}

// IntersectLineLine finds the point where segment p00-p01 crosses segment
// p10-p11, if any. Its parameter ranges are deliberately asymmetric: d_r
// (the position along p00-p01) is inclusive at both ends, d_s (the position
// along p10-p11) is inclusive at 0 but exclusive at 1, so a crossing exactly
// at p11 is not reported.
func IntersectLineLine(p00, p01, p10, p11 Vec2) (Vec2, bool) {
	d := (p01.X-p00.X)*(p11.Y-p10.Y) - (p01.Y-p00.Y)*(p11.X-p10.X)
	if d == 0 {
		return Vec2{}, false
	}

	vx := p10.X - p00.X
	vy := p10.Y - p00.Y
	dr := ((p11.Y-p10.Y)*vx - (p11.X-p10.X)*vy) / d
	ds := ((p01.Y-p00.Y)*vx - (p01.X-p00.X)*vy) / d

	if dr < 0 || dr > 1 || ds < 0 || ds >= 1 {
		return Vec2{}, false
	}
	return Vec2{p00.X + dr*(p01.X-p00.X), p00.Y + dr*(p01.Y-p00.Y)}, true
}

// IntersectRectLine finds where the segment p0-p1 crosses rect's boundary,
// testing the top, bottom, left, and right edges in that order. The order
// matters: PickStart takes the last match.
func IntersectRectLine(rect Rect, p0, p1 Vec2) []Vec2 {
	lb := Vec2{rect.Origin.X, rect.Origin.Y}
	lt := Vec2{rect.Origin.X, rect.Origin.Y + rect.Size.Y}
	rb := Vec2{rect.Origin.X + rect.Size.X, rect.Origin.Y}
	rt := Vec2{rect.Origin.X + rect.Size.X, rect.Origin.Y + rect.Size.Y}

	var out []Vec2
	if p, ok := IntersectLineLine(p0, p1, lt, rt); ok {
		out = append(out, p)
	}
	if p, ok := IntersectLineLine(p0, p1, lb, rb); ok {
		out = append(out, p)
	}
	if p, ok := IntersectLineLine(p0, p1, lb, lt); ok {
		out = append(out, p)
	}
	if p, ok := IntersectLineLine(p0, p1, rb, rt); ok {
		out = append(out, p)
	}
	return out
}
