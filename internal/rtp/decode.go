package rtp

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DecodeDataSymbols reconstructs count contiguous data symbols starting at
// firstSymbol into dst (count*SymbolSize() bytes). If none of the erasure
// set's erased positions fall inside the requested range, it is satisfied
// with plain reads. Otherwise it runs the RAID4 -> RDP -> RTP reconstruction
// ladder before copying the requested range out.
func (proc *RTPProcessor) DecodeDataSymbols(stripeID uint64, erasureSetID uint32, firstSymbol, count uint32, dst []byte, threadID int) (bool, error) {
	if proc.array == nil {
		return false, fmt.Errorf("rtp: DecodeDataSymbols called before Attach")
	}
	if firstSymbol+count > proc.k {
		return false, fmt.Errorf("rtp: requested range [%d,%d) exceeds code dimension %d", firstSymbol, firstSymbol+count, proc.k)
	}
	symSize := int(proc.SymbolSize())
	if len(dst) != int(count)*symSize {
		return false, fmt.Errorf("rtp: DecodeDataSymbols expects a %d-byte destination, got %d", int(count)*symSize, len(dst))
	}

	x, y, z := proc.erasedPositions(erasureSetID)

	if !rangeOverlaps(x, y, z, firstSymbol, count) {
		ok := true
		for i := uint32(0); i < count; i++ {
			s := firstSymbol + i
			ok = proc.readSymbol(stripeID, erasureSetID, s, dst[int(i)*symSize:int(i+1)*symSize]) && ok
		}
		return ok, nil
	}

	e := proc.numErasedRaid4Symbols(erasureSetID)
	if proc.array.GetNumOfErasures(erasureSetID) > 3 || e > 3 {
		return false, fmt.Errorf("rtp: erasure set %d cannot be corrected (too many erasures)", erasureSetID)
	}
	isAnti := proc.array.IsErased(erasureSetID, proc.p)

	ok := true
	symbols := make([]Buffer, proc.p)
	for s := uint32(0); s < proc.p; s++ {
		symbols[s] = NewBuffer(proc.SymbolSize())
		if !proc.array.IsErased(erasureSetID, s) {
			ok = proc.readSymbol(stripeID, erasureSetID, s, symbols[s].Bytes()) && ok
		}
	}

	var diagFull [][]byte
	if e > 1 {
		d := proc.p
		if isAnti {
			d = proc.p + 1
		}
		stored := NewBuffer(proc.SymbolSize())
		ok = proc.readSymbol(stripeID, erasureSetID, d, stored.Bytes()) && ok
		diagFull = proc.expandFull(stored)
		for s := uint32(0); s < proc.p; s++ {
			if !proc.array.IsErased(erasureSetID, s) {
				proc.addToDiagVec(diagFull, isAnti, s, symbols[s].Bytes())
			}
		}
	}

	switch e {
	case 0:
		// only the diagonal/anti-diagonal parities are erased; the fast
		// path above already satisfies any data-symbol request.
	case 1:
		proc.restoreSingleErasure(symbols, uint32(x))
	case 2:
		proc.restoreRDP(symbols, diagFull, isAnti, uint32(x), uint32(y))
	case 3:
		if isAnti {
			return false, fmt.Errorf("rtp: triple erasure requires both diagonal parities present")
		}
		newY, ok2, err := proc.solveTripleErasure(stripeID, erasureSetID, symbols, diagFull, uint32(x), uint32(y), uint32(z))
		if err != nil {
			return ok && ok2, err
		}
		ok = ok && ok2
		proc.restoreRDP(symbols, diagFull, false, uint32(x), newY)
	}

	for i := uint32(0); i < count; i++ {
		s := firstSymbol + i
		copy(dst[int(i)*symSize:int(i+1)*symSize], symbols[s].Bytes())
	}

	logrus.Debugf("[rtp] DecodeDataSymbols stripe=%d erasureSet=%d first=%d count=%d e=%d ok=%v", stripeID, erasureSetID, firstSymbol, count, e, ok)
	return ok, nil
}

// restoreSingleErasure handles e=1 (the plain RAID4 case): the erased
// symbol equals the XOR of every other RAID4 symbol.
func (proc *RTPProcessor) restoreSingleErasure(symbols []Buffer, x uint32) {
	restored := NewBuffer(proc.SymbolSize())
	for s := uint32(0); s < proc.p; s++ {
		if s == x {
			continue
		}
		restored.XorInto(symbols[s].Bytes())
	}
	symbols[x] = restored
}

// restoreRDP handles e=2: walk the diagonal/anti-diagonal chase used by the
// RDP code to alternately restore a subsymbol of X then of Y, starting from
// the imaginary zero row.
func (proc *RTPProcessor) restoreRDP(symbols []Buffer, diagFull [][]byte, isAnti bool, x, y uint32) {
	u := int(proc.unitSize)
	p := proc.p
	r := p - 1

	for i := uint32(0); i < p-1; i++ {
		d := proc.diagNum(isAnti, y, r)
		if r != p-1 {
			xorBytes(diagFull[d], symbols[y].Slice(int(r)*u, u))
		}

		if isAnti {
			r = (p + x - d) % p
		} else {
			r = (p + d - x) % p
		}

		copy(symbols[x].Slice(int(r)*u, u), diagFull[d])

		rowSum := make([]byte, u)
		for s := uint32(0); s < p; s++ {
			if s == y {
				continue
			}
			xorBytes(rowSum, symbols[s].Slice(int(r)*u, u))
		}
		copy(symbols[y].Slice(int(r)*u, u), rowSum)
	}
}

// solveTripleErasure handles e=3: build the adiag and row length-p vectors,
// solve a GF(2) Gauss-Jordan system for Y's subsymbols, fold Y's now-known
// contribution out of diagFull, and return Z as the new "Y" label for the
// RDP fallthrough over (X, Z).
func (proc *RTPProcessor) solveTripleErasure(stripeID uint64, erasureSetID uint32, symbols []Buffer, diagFull [][]byte, x, y, z uint32) (uint32, bool, error) {
	ok := true
	u := int(proc.unitSize)
	p := int(proc.p)

	adiagStored := NewBuffer(proc.SymbolSize())
	ok = proc.readSymbol(stripeID, erasureSetID, proc.p+1, adiagStored.Bytes()) && ok
	adiagFull := proc.expandFull(adiagStored)
	for s := uint32(0); s < proc.p; s++ {
		if !proc.array.IsErased(erasureSetID, s) {
			proc.addToDiagVec(adiagFull, true, s, symbols[s].Bytes())
		}
	}

	rowBuf := NewBuffer(proc.SymbolSize())
	for s := uint32(0); s < proc.p; s++ {
		rowBuf.XorInto(symbols[s].Bytes())
	}
	// Unlike diag/adiag, row's row p-1 is never a derived "XOR of the rest"
	// value: it is the imaginary zero row itself, always zero, for every
	// column including the erased ones. expandFull's reconstruction rule
	// does not apply here.
	rowFull := make([][]byte, p)
	for r := 0; r < p-1; r++ {
		slot := make([]byte, u)
		copy(slot, rowBuf.Slice(r*u, u))
		rowFull[r] = slot
	}
	rowFull[p-1] = make([]byte, u)

	A := make([][]bool, p)
	R := make([][]byte, p)
	for k := 0; k < p; k++ {
		A[k] = make([]bool, p-1)
		for _, c := range []int{k, k + int(z) - int(y), k + int(y) - int(x), k + int(z) - int(x)} {
			col := modp(c, p)
			if col == p-1 {
				continue
			}
			A[k][col] = !A[k][col]
		}

		rowIdx := modp(k+int(z)-int(x), p)
		dIdx := proc.diagNum(false, z, uint32(k))
		adIdx := proc.diagNum(true, x, uint32(k))

		// Combining row[rowIdx], diag[dIdx] and adiag[adIdx] alone still
		// leaves X's and Z's own subsymbols at row k uncancelled (their
		// contributions through the adiag-at-X and diag-at-Z terms land on
		// row k, not on rowIdx). row[k] supplies the matching row identity
		// (x_k ^ y_k ^ z_k) that cancels both of them, leaving only Y terms.
		rk := make([]byte, u)
		for i := 0; i < u; i++ {
			rk[i] = rowFull[k][i] ^ rowFull[rowIdx][i] ^ diagFull[dIdx][i] ^ adiagFull[adIdx][i]
		}
		R[k] = rk
	}

	if err := gaussJordanEliminate(A, R, p, u); err != nil {
		return y, ok, err
	}

	for k := 0; k < p-1; k++ {
		copy(symbols[y].Slice(k*u, u), R[k])
	}
	proc.addToDiagVec(diagFull, false, y, symbols[y].Bytes())

	return z, ok, nil
}

// gaussJordanEliminate reduces the p x (p-1) boolean matrix A (with
// right-hand side R) to [I | 0] over [R[0..p-2] | 0], in place.
func gaussJordanEliminate(A [][]bool, R [][]byte, p, u int) error {
	for r := 0; r < p-1; r++ {
		if !A[r][r] {
			swapRow := -1
			for rr := r + 1; rr < p; rr++ {
				if A[rr][r] {
					swapRow = rr
					break
				}
			}
			if swapRow == -1 {
				debugAssert(false, "gauss-jordan elimination found no pivot for column %d", r)
				return fmt.Errorf("rtp: gauss-jordan elimination found no pivot for column %d", r)
			}
			A[r], A[swapRow] = A[swapRow], A[r]
			R[r], R[swapRow] = R[swapRow], R[r]
		}

		for row2 := 0; row2 < p; row2++ {
			if row2 == r || !A[row2][r] {
				continue
			}
			for c := 0; c < p-1; c++ {
				A[row2][c] = A[row2][c] != A[r][c]
			}
			xorBytes(R[row2], R[r])
		}
	}

	if Debug {
		for rr := 0; rr < p-1; rr++ {
			for cc := 0; cc < p-1; cc++ {
				debugAssert(A[rr][cc] == (rr == cc), "gauss-jordan invariant violated at (%d,%d)", rr, cc)
			}
		}
		for cc := 0; cc < p-1; cc++ {
			debugAssert(!A[p-1][cc], "gauss-jordan last row not all-zero at column %d", cc)
		}
		for i := 0; i < u; i++ {
			debugAssert(R[p-1][i] == 0, "gauss-jordan R[p-1] not all-zero at byte %d", i)
		}
	}

	return nil
}

// DecodeDataSubsymbols reconstructs a contiguous run of subsymbols within a
// single data symbol, taking the single-erasure fast path (a row-XOR over
// the other RAID4 symbols) when possible instead of reconstructing the
// whole symbol.
func (proc *RTPProcessor) DecodeDataSubsymbols(stripeID uint64, erasureSetID, symbolID, subsymbolID, count uint32, dst []byte, threadID int) (bool, error) {
	if proc.array == nil {
		return false, fmt.Errorf("rtp: DecodeDataSubsymbols called before Attach")
	}
	if symbolID >= proc.k {
		return false, fmt.Errorf("rtp: symbol %d is out of data-symbol range [0,%d)", symbolID, proc.k)
	}
	u := int(proc.unitSize)
	if len(dst) != int(count)*u {
		return false, fmt.Errorf("rtp: DecodeDataSubsymbols expects a %d-byte destination, got %d", int(count)*u, len(dst))
	}

	if !proc.array.IsErased(erasureSetID, symbolID) {
		return proc.readSubsymbols(stripeID, erasureSetID, symbolID, dst, subsymbolID, count), nil
	}

	if e := proc.numErasedRaid4Symbols(erasureSetID); e == 1 {
		ok := true
		acc := make([]byte, int(count)*u)
		tmp := make([]byte, int(count)*u)
		for s := uint32(0); s < proc.p; s++ {
			if s == symbolID {
				continue
			}
			ok = proc.readSubsymbols(stripeID, erasureSetID, s, tmp, subsymbolID, count) && ok
			xorBytes(acc, tmp)
		}
		copy(dst, acc)
		return ok, nil
	}

	full := make([]byte, proc.SymbolSize())
	ok, err := proc.DecodeDataSymbols(stripeID, erasureSetID, symbolID, 1, full, threadID)
	if err != nil {
		return ok, err
	}
	copy(dst, full[int(subsymbolID)*u:int(subsymbolID+count)*u])
	return ok, nil
}
