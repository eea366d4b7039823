// Package hilbert maps cells of a 2^order square grid to their position
// along a Hilbert curve of the same order, and back.
//
// A Curve only holds its order. Every method is a pure function of its
// arguments, so a single Curve may be shared freely between goroutines.
package hilbert

import (
	"errors"
	"fmt"
)

// MaxOrder is the largest supported order. The side 2^31 still fits a
// uint32 coordinate and the capacity 4^31 fits a uint64 index.
const MaxOrder = 31

var (
	ErrPointOutOfRange = errors.New("hilbert: point must be in range with the order")
	ErrIndexOutOfRange = errors.New("hilbert: index exceeds capacity of this order")
	ErrOrderTooLarge   = errors.New("hilbert: order exceeds the supported maximum")
)

// Point is a cell on the grid. X and Y are both less than the side of the
// curve it is used with.
type Point struct {
	X uint32 `json:"x" msgpack:"x"`
	Y uint32 `json:"y" msgpack:"y"`
}

// Curve is a Hilbert curve of a fixed order.
type Curve struct {
	order uint16
}

// New returns the curve of the given order. The order is not checked here;
// see Validate.
func New(order uint16) Curve {
	return Curve{order: order}
}

func (c Curve) Order() uint16 { return c.order }

// Side is the number of cells along each edge of the grid, 2^order.
func (c Curve) Side() uint32 {
	return uint32(1) << c.order
}

// Capacity is the number of cells on the curve, 4^order.
func (c Curve) Capacity() uint64 {
	side := uint64(c.Side())
	return side * side
}

// Validate reports whether the order can be represented with the chosen
// coordinate and index widths.
func (c Curve) Validate() error {
	if c.order > MaxOrder {
		return fmt.Errorf("%w: order %d, maximum %d", ErrOrderTooLarge, c.order, MaxOrder)
	}
	return nil
}

// Contains reports whether p lies on the grid of this curve.
func (c Curve) Contains(p Point) bool {
	side := c.Side()
	return p.X < side && p.Y < side
}

// PointToIndex returns the position of p along the curve.
//
// The quadrant digits are peeled off from the most significant bit down.
// Each step rotates the remaining coordinates into the frame of the
// sub-quadrant, reflecting against the full side of the grid.
func (c Curve) PointToIndex(p Point) (uint64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	side := c.Side()
	if !c.Contains(p) {
		return 0, fmt.Errorf("%w: (%d, %d) on a %dx%d grid", ErrPointOutOfRange, p.X, p.Y, side, side)
	}

	var index uint64
	for row := side / 2; row > 0; row /= 2 {
		rx := quadrantBit(p.X, row)
		ry := quadrantBit(p.Y, row)
		index += digitIndex(row, rx, ry)
		// The reflection must use the full side, not row.
		p = rotate(p, rx, ry, side)
	}
	return index, nil
}

// IndexToPoint returns the cell at position index along the curve.
//
// The point is built from the smallest scale outwards, two bits of index
// per level. Unlike PointToIndex the rotation here reflects against the
// current scale.
func (c Curve) IndexToPoint(index uint64) (Point, error) {
	if err := c.Validate(); err != nil {
		return Point{}, err
	}
	if index >= c.Capacity() {
		return Point{}, fmt.Errorf("%w: index %d, capacity %d", ErrIndexOutOfRange, index, c.Capacity())
	}

	var p Point
	remaining := index
	side := c.Side()
	for scale := uint32(1); scale < side; scale *= 2 {
		rx := digitRx(remaining)
		ry := digitRy(remaining, rx)
		p = rotate(p, rx, ry, scale)
		p = move(p, rx, ry, scale)
		remaining /= 4
	}
	return p, nil
}

// OrderForCapacity returns the smallest order whose curve has at least n
// cells. Zero and one item both fit on the order 0 curve.
func OrderForCapacity(n uint64) uint16 {
	var order uint16
	for order < MaxOrder && New(order).Capacity() < n {
		order++
	}
	return order
}

// Distance is the Manhattan distance between two cells. Consecutive
// indices on a curve are always at distance 1.
func Distance(a, b Point) uint32 {
	return absDiff(a.X, b.X) + absDiff(a.Y, b.Y)
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
