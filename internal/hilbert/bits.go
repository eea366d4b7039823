package hilbert

// quadrantBit is 1 if v has the row bit set.
func quadrantBit(v, row uint32) uint32 {
	if v&row != 0 {
		return 1
	}
	return 0
}

// digitRx extracts the x half of the lowest quadrant digit of q.
//
//	q&3: 0 1 2 3
//	rx:  0 0 1 1
func digitRx(q uint64) uint32 {
	return uint32((q / 2) & 1)
}

// digitRy extracts the y half of the lowest quadrant digit of q, given rx.
//
//	q&3: 0 1 2 3
//	ry:  0 1 1 0
func digitRy(q uint64, rx uint32) uint32 {
	return uint32((q ^ uint64(rx)) & 1)
}

// digitIndex is the contribution of quadrant (rx, ry) at the given row to
// the curve index. The digit order is 00->0, 01->1, 11->2, 10->3.
func digitIndex(row, rx, ry uint32) uint64 {
	r := uint64(row)
	return r * r * uint64((3*rx)^ry)
}
