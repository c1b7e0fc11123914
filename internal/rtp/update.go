package rtp

import "fmt"

// lazyChecksum accumulates a delta per subsymbol index, lazily: the first
// touch sets the slot, later touches XOR into it. diag and adiag additionally
// seed that first touch from the on-disk value (via RTPProcessor.accumulate)
// so the checksum ends up holding the new on-disk value directly, not a bare
// delta.
type lazyChecksum struct {
	checksum    Buffer
	initialized []bool
	active      bool // false when the backing parity disk is erased
}

func newLazyChecksum(symbolSize, unitsPerSymbol uint32, active bool) lazyChecksum {
	return lazyChecksum{
		checksum:    NewBuffer(symbolSize),
		initialized: make([]bool, unitsPerSymbol),
		active:      active,
	}
}

func (lc *lazyChecksum) fold(idx uint32, delta []byte) {
	if !lc.active {
		return
	}
	u := len(delta)
	dst := lc.checksum.Slice(int(idx)*u, u)
	if lc.initialized[idx] {
		xorBytes(dst, delta)
	} else {
		copy(dst, delta)
		lc.initialized[idx] = true
	}
}

// accumulate folds delta into lc at subsymbol idx, seeding the slot from the
// on-disk value at the given parity position on first touch so the
// checksum holds the diagonal's full updated value rather than a delta.
func (proc *RTPProcessor) accumulate(lc *lazyChecksum, stripeID uint64, erasureSetID, position, idx uint32, delta []byte, ok *bool) {
	if !lc.active {
		return
	}
	u := len(delta)
	dst := lc.checksum.Slice(int(idx)*u, u)
	if !lc.initialized[idx] {
		cur := make([]byte, u)
		*ok = proc.readSubsymbols(stripeID, erasureSetID, position, cur, idx, 1) && *ok
		copy(dst, cur)
		lc.initialized[idx] = true
	}
	xorBytes(dst, delta)
}

// UpdateInformationSymbols applies count new subsymbol values starting at
// global subsymbol index firstSubsymbol (spanning one or more data symbols),
// updating row/diag/anti-diag parity incrementally rather than re-encoding
// the whole stripe.
func (proc *RTPProcessor) UpdateInformationSymbols(stripeID uint64, erasureSetID uint32, firstSubsymbol, count uint32, pData []byte, threadID int) (bool, error) {
	if proc.array == nil {
		return false, fmt.Errorf("rtp: UpdateInformationSymbols called before Attach")
	}
	u := proc.unitSize
	if uint32(len(pData)) != count*u {
		return false, fmt.Errorf("rtp: UpdateInformationSymbols expects %d bytes, got %d", count*u, len(pData))
	}

	rowErased := proc.array.IsErased(erasureSetID, proc.p-1)
	diagErased := proc.array.IsErased(erasureSetID, proc.p)
	adiagErased := proc.array.IsErased(erasureSetID, proc.p+1)

	if rowErased && diagErased && adiagErased {
		ok := true
		for i := uint32(0); i < count; i++ {
			global := firstSubsymbol + i
			symbolID := global / proc.unitsPerSymbol
			sub := global % proc.unitsPerSymbol
			ok = proc.writeSubsymbols(stripeID, erasureSetID, symbolID, pData[i*u:(i+1)*u], sub, 1) && ok
		}
		return ok, nil
	}

	row := newLazyChecksum(proc.SymbolSize(), proc.unitsPerSymbol, !rowErased)
	diag := newLazyChecksum(proc.SymbolSize(), proc.unitsPerSymbol, !diagErased)
	adiag := newLazyChecksum(proc.SymbolSize(), proc.unitsPerSymbol, !adiagErased)

	ok := true
	for i := uint32(0); i < count; i++ {
		global := firstSubsymbol + i
		symbolID := global / proc.unitsPerSymbol
		sub := global % proc.unitsPerSymbol
		newBytes := pData[i*u : (i+1)*u]

		old := make([]byte, u)
		ok = proc.readSubsymbols(stripeID, erasureSetID, symbolID, old, sub, 1) && ok

		delta := make([]byte, u)
		copy(delta, old)
		xorBytes(delta, newBytes)

		row.fold(sub, delta)

		if d := proc.diagNum(false, symbolID, sub); d != proc.p-1 {
			proc.accumulate(&diag, stripeID, erasureSetID, proc.p, d, delta, &ok)
		}
		if d := proc.diagNum(true, symbolID, sub); d != proc.p-1 {
			proc.accumulate(&adiag, stripeID, erasureSetID, proc.p+1, d, delta, &ok)
		}

		ok = proc.writeSubsymbols(stripeID, erasureSetID, symbolID, newBytes, sub, 1) && ok
	}

	for i := uint32(0); i < proc.unitsPerSymbol; i++ {
		if !row.initialized[i] {
			continue
		}
		deltaRow := row.checksum.Slice(int(i)*int(u), int(u))

		if d := proc.diagNum(false, proc.p-1, i); d != proc.p-1 {
			proc.accumulate(&diag, stripeID, erasureSetID, proc.p, d, deltaRow, &ok)
		}
		if d := proc.diagNum(true, proc.p-1, i); d != proc.p-1 {
			proc.accumulate(&adiag, stripeID, erasureSetID, proc.p+1, d, deltaRow, &ok)
		}
	}

	for i := uint32(0); i < proc.unitsPerSymbol; i++ {
		if !row.active || !row.initialized[i] {
			continue
		}
		cur := make([]byte, u)
		ok = proc.readSubsymbols(stripeID, erasureSetID, proc.p-1, cur, i, 1) && ok
		xorBytes(cur, row.checksum.Slice(int(i)*int(u), int(u)))
		ok = proc.writeSubsymbols(stripeID, erasureSetID, proc.p-1, cur, i, 1) && ok
	}

	for i := uint32(0); i < proc.unitsPerSymbol; i++ {
		if diag.active && diag.initialized[i] {
			ok = proc.writeSubsymbols(stripeID, erasureSetID, proc.p, diag.checksum.Slice(int(i)*int(u), int(u)), i, 1) && ok
		}
		if adiag.active && adiag.initialized[i] {
			ok = proc.writeSubsymbols(stripeID, erasureSetID, proc.p+1, adiag.checksum.Slice(int(i)*int(u), int(u)), i, 1) && ok
		}
	}

	return ok, nil
}

// EncodingStrategy is the policy decision GetEncodingStrategy returns:
// whether a write should go through the incremental update path or fall
// back to a full re-encode.
type EncodingStrategy int

const (
	StrategyUpdate EncodingStrategy = iota
	StrategyReadWrite
)

func (s EncodingStrategy) String() string {
	if s == StrategyUpdate {
		return "update"
	}
	return "read-write"
}

// GetEncodingStrategy decides whether a write touching count subsymbols
// starting at firstSubsymbol should use the incremental update path. It
// forces a full re-encode when any touched data symbol is itself erased,
// and otherwise picks update only when it touches less than 3/4 of the
// stripe's subsymbols (4*count < 3*unitsPerSymbol*k).
func (proc *RTPProcessor) GetEncodingStrategy(erasureSetID uint32, firstSubsymbol, count uint32) EncodingStrategy {
	for i := uint32(0); i < count; {
		symbolID := (firstSubsymbol + i) / proc.unitsPerSymbol
		if proc.array.IsErased(erasureSetID, symbolID) {
			return StrategyReadWrite
		}
		nextBoundary := (symbolID + 1) * proc.unitsPerSymbol
		i += nextBoundary - (firstSubsymbol + i)
	}

	if uint64(4)*uint64(count) < uint64(3)*uint64(proc.unitsPerSymbol)*uint64(proc.k) {
		return StrategyUpdate
	}
	return StrategyReadWrite
}
