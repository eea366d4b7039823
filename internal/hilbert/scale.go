package hilbert

// CellLen is the number of pixels along each edge of one cell when the grid
// is drawn into a width x width projection. Widths smaller than the side
// of the grid get one pixel per cell, as do orders that fail Validate,
// whose side does not fit a uint32.
func (c Curve) CellLen(width uint32) uint32 {
	if c.Validate() != nil {
		return 1
	}
	l := width / c.Side()
	if l == 0 {
		return 1
	}
	return l
}

// OffsetPoint returns the pixel at the centre of cell p in a projection of
// the given width. The width should be a multiple of the side; otherwise the
// trailing pixels are never addressed.
func (c Curve) OffsetPoint(p Point, width uint32) Point {
	l := c.CellLen(width)
	return Point{
		X: p.X*l + l/2,
		Y: p.Y*l + l/2,
	}
}

// DeoffsetPoint returns the cell containing pixel p in a projection of the
// given width. It inverts OffsetPoint.
func (c Curve) DeoffsetPoint(p Point, width uint32) Point {
	l := c.CellLen(width)
	return Point{
		X: p.X / l,
		Y: p.Y / l,
	}
}
