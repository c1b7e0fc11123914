package rtp

import "sort"

// erasedPositions returns the (up to three) positions erased for
// erasureSetID, sorted ascending with absent entries padded as -1 at the
// end (X <= Y <= Z among the present entries).
func (proc *RTPProcessor) erasedPositions(erasureSetID uint32) (x, y, z int) {
	a := proc.array.GetErasedPosition(erasureSetID, 0)
	b := proc.array.GetErasedPosition(erasureSetID, 1)
	c := proc.array.GetErasedPosition(erasureSetID, 2)
	return sortErasedTriple(a, b, c)
}

func sortErasedTriple(a, b, c int) (x, y, z int) {
	vals := make([]int, 0, 3)
	for _, v := range []int{a, b, c} {
		if v >= 0 {
			vals = append(vals, v)
		}
	}
	sort.Ints(vals)
	out := [3]int{-1, -1, -1}
	copy(out[:], vals)
	return out[0], out[1], out[2]
}

// numErasedRaid4Symbols counts erased positions among the p RAID4 symbols
// (data and row parity), excluding the diagonal and anti-diagonal parities.
func (proc *RTPProcessor) numErasedRaid4Symbols(erasureSetID uint32) uint32 {
	n := proc.array.GetNumOfErasures(erasureSetID)
	if proc.array.IsErased(erasureSetID, proc.p) {
		n--
	}
	if proc.array.IsErased(erasureSetID, proc.p+1) {
		n--
	}
	return n
}

func rangeOverlaps(x, y, z int, first, count uint32) bool {
	for _, v := range []int{x, y, z} {
		if v < 0 {
			continue
		}
		if uint32(v) >= first && uint32(v) < first+count {
			return true
		}
	}
	return false
}
