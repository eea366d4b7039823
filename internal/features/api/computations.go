package api

import (
	"context"

	"github.com/chromy/hilbertviz/internal/core"
	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/chromy/hilbertviz/internal/schemas"
)

// Neighbors are the cells visited just before and just after an index.
// Either is nil at the ends of the curve.
type Neighbors struct {
	Index    uint64         `json:"index" msgpack:"index"`
	Point    hilbert.Point  `json:"point" msgpack:"point"`
	Previous *hilbert.Point `json:"previous,omitempty" msgpack:"previous"`
	Next     *hilbert.Point `json:"next,omitempty" msgpack:"next"`
}

var GetPoint = core.RegisterCurveComputation("point", func(ctx context.Context, curve hilbert.Curve, index uint64) (hilbert.Point, error) {
	return curve.IndexToPoint(index)
})

var GetNeighbors = core.RegisterCurveComputation("neighbors", func(ctx context.Context, curve hilbert.Curve, index uint64) (Neighbors, error) {
	p, err := GetPoint(ctx, curve, index)
	if err != nil {
		return Neighbors{}, err
	}

	n := Neighbors{Index: index, Point: p}
	if index > 0 {
		prev, err := GetPoint(ctx, curve, index-1)
		if err != nil {
			return Neighbors{}, err
		}
		n.Previous = &prev
	}
	if index+1 < curve.Capacity() {
		next, err := GetPoint(ctx, curve, index+1)
		if err != nil {
			return Neighbors{}, err
		}
		n.Next = &next
	}
	return n, nil
})

func init() {
	schemas.Register("api.Neighbors", Neighbors{})
}
