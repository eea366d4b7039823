package quadtree

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/chromy/hilbertviz/internal/core"
	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/chromy/hilbertviz/internal/schemas"
)

var ErrMalformed = errors.New("quadtree: malformed encoding")

// Quadtree is the set of cells covered by an index range, encoded with
// rangeToQuadtreeBinary and base64.
type Quadtree struct {
	Order uint16 `json:"order"`
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
	Data  string `json:"data"`
}

// Range is a half open span of curve indices.
type Range struct {
	Start uint64
	End   uint64
}

// rangeToQuadtreeBinary builds a depth first binary encoded quadtree for
// the index range [targetDStart, targetDEnd) on a curve with the given
// capacity, using 4-bit child masks.
//
// Every aligned run of 4^k indices on a Hilbert curve is a 2^k square, so
// the children of a node in curve order are its four sub-quadrants. Bit i of
// a mask is child i. A node entirely inside the range is written as mask 0
// and not descended into. Masks are packed high nibble first.
func rangeToQuadtreeBinary(targetDStart, targetDEnd uint64, capacity uint64) []byte {
	if targetDStart >= targetDEnd {
		return nil
	}

	var buffer []byte
	currentByte := byte(0)
	bitsUsed := 0

	addMask := func(mask byte) {
		if bitsUsed == 0 {
			currentByte = mask << 4
			bitsUsed = 4
		} else {
			currentByte |= mask
			buffer = append(buffer, currentByte)
			currentByte = 0
			bitsUsed = 0
		}
	}

	var processNode func(nodeDStart, nodeDEnd uint64)
	processNode = func(nodeDStart, nodeDEnd uint64) {
		if nodeDEnd <= targetDStart || nodeDStart >= targetDEnd {
			return
		}

		if nodeDStart >= targetDStart && nodeDEnd <= targetDEnd {
			addMask(0)
			return
		}

		quarter := (nodeDEnd - nodeDStart) / 4
		childMask := byte(0)

		for i := uint64(0); i < 4; i++ {
			childStart := nodeDStart + (i * quarter)
			childEnd := childStart + quarter

			if childEnd > targetDStart && childStart < targetDEnd {
				childMask |= 1 << i
			}
		}

		addMask(childMask)

		for i := uint64(0); i < 4; i++ {
			if childMask&(1<<i) != 0 {
				childStart := nodeDStart + (i * quarter)
				childEnd := childStart + quarter
				processNode(childStart, childEnd)
			}
		}
	}

	processNode(0, capacity)

	if bitsUsed > 0 {
		buffer = append(buffer, currentByte)
	}

	return buffer
}

// quadtreeBinaryToRanges inverts rangeToQuadtreeBinary, returning the
// covered index ranges in curve order. Adjacent ranges are not merged.
func quadtreeBinaryToRanges(data []byte, capacity uint64) ([]Range, error) {
	if len(data) == 0 {
		return nil, nil
	}

	nibble := 0
	next := func() (byte, error) {
		if nibble/2 >= len(data) {
			return 0, fmt.Errorf("%w: truncated after %d nibbles", ErrMalformed, nibble)
		}
		b := data[nibble/2]
		if nibble%2 == 0 {
			b >>= 4
		}
		nibble++
		return b & 0xf, nil
	}

	var ranges []Range
	var walk func(start, size uint64) error
	walk = func(start, size uint64) error {
		mask, err := next()
		if err != nil {
			return err
		}
		if mask == 0 {
			ranges = append(ranges, Range{Start: start, End: start + size})
			return nil
		}
		if size < 4 {
			return fmt.Errorf("%w: cell at %d has children", ErrMalformed, start)
		}
		quarter := size / 4
		for i := uint64(0); i < 4; i++ {
			if mask&(1<<i) != 0 {
				if err := walk(start+i*quarter, quarter); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(0, capacity); err != nil {
		return nil, err
	}
	return ranges, nil
}

var GetQuadtree = core.RegisterRangeComputation("quadtree", func(ctx context.Context, curve hilbert.Curve, start uint64, end uint64) (Quadtree, error) {
	if end > curve.Capacity() {
		return Quadtree{}, fmt.Errorf("%w: range end %d, capacity %d", hilbert.ErrIndexOutOfRange, end, curve.Capacity())
	}
	if start > end {
		return Quadtree{}, fmt.Errorf("%w: range start %d after end %d", core.ErrBadParam, start, end)
	}

	encoded := rangeToQuadtreeBinary(start, end, curve.Capacity())

	return Quadtree{
		Order: curve.Order(),
		Start: start,
		End:   end,
		Data:  base64.StdEncoding.EncodeToString(encoded),
	}, nil
})

// Decode returns the index ranges covered by q.
func (q Quadtree) Decode() ([]Range, error) {
	data, err := base64.StdEncoding.DecodeString(q.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return quadtreeBinaryToRanges(data, hilbert.New(q.Order).Capacity())
}

func init() {
	schemas.Register("quadtree.Quadtree", Quadtree{})
}
