package rtp

// addToDiagStored folds symbol's subsymbols into a stored (p-1 slot)
// parity buffer, the shape an on-disk diag/adiag symbol actually has.
// Subsymbols that map to diagonal p-1 are discarded: there is no physical
// slot for the imaginary zero row.
func (proc *RTPProcessor) addToDiagStored(stored Buffer, isAnti bool, s uint32, symbol []byte) {
	u := int(proc.unitSize)
	for r := uint32(0); r < proc.unitsPerSymbol; r++ {
		d := proc.diagNum(isAnti, s, r)
		if d == proc.p-1 {
			continue
		}
		xorBytes(stored.Slice(int(d)*u, u), symbol[int(r)*u:int(r+1)*u])
	}
}

// addToDiags folds a symbol's contribution into both a diag and an adiag
// stored buffer in one call, as EncodeStripe and CheckCodeword need.
func (proc *RTPProcessor) addToDiags(diag, adiag Buffer, s uint32, symbol []byte) {
	proc.addToDiagStored(diag, false, s, symbol)
	proc.addToDiagStored(adiag, true, s, symbol)
}

// expandFull rebuilds the full length-p diagonal vector from a stored
// (p-1 slot) parity buffer: slots 0..p-2 are copied, and slot p-1 (the
// imaginary zero row) is synthesized as the XOR of the rest. The result is
// independently owned, safe for the caller to mutate.
func (proc *RTPProcessor) expandFull(stored Buffer) [][]byte {
	u := int(proc.unitSize)
	p := int(proc.p)
	out := make([][]byte, p)
	last := make([]byte, u)
	for d := 0; d < p-1; d++ {
		slot := make([]byte, u)
		copy(slot, stored.Slice(d*u, u))
		xorBytes(last, slot)
		out[d] = slot
	}
	out[p-1] = last
	return out
}

// addToDiagVec folds symbol's contribution into an already-expanded
// length-p diagonal vector. Unlike addToDiagStored it never discards:
// slot p-1 is a real, mutable element of the working vector used during
// reconstruction, not a physical absence.
func (proc *RTPProcessor) addToDiagVec(vec [][]byte, isAnti bool, s uint32, symbol []byte) {
	u := int(proc.unitSize)
	for r := uint32(0); r < proc.unitsPerSymbol; r++ {
		d := proc.diagNum(isAnti, s, r)
		xorBytes(vec[d], symbol[int(r)*u:int(r+1)*u])
	}
}
