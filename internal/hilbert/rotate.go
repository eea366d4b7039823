package hilbert

import "fmt"

// rotate applies the quadrant rotation of the recursive construction to p,
// for quadrant digit (rx, ry) inside a square of dimension d.
//
// When ry is 0 the point is transposed, and reflected first if rx is 1.
// When ry is 1 the quadrant already has the parent's orientation.
//
// PointToIndex passes the full side as d, IndexToPoint the current scale.
// Both keep p strictly inside d, so a point outside it here is a bug in the
// caller's loop and not something the public API can produce.
func rotate(p Point, rx, ry, d uint32) Point {
	if ry != 0 {
		return p
	}
	if rx == 1 {
		if p.X >= d || p.Y >= d {
			panic(fmt.Sprintf("hilbert: reflecting (%d, %d) outside dimension %d", p.X, p.Y, d))
		}
		p.X = d - 1 - p.X
		p.Y = d - 1 - p.Y
	}
	p.X, p.Y = p.Y, p.X
	return p
}

// move shifts p into the quadrant (rx, ry) of a square twice the size of
// scale.
func move(p Point, rx, ry, scale uint32) Point {
	p.X += scale * rx
	p.Y += scale * ry
	return p
}
