package rtp

import "fmt"

// CheckCodeword verifies that the three parities on disk are consistent
// with the data symbols for a stripe. It cannot say anything meaningful
// under any erasure (there is nothing to compare the missing symbol
// against), so it vacuously reports true in that case; the caller is
// expected to have already checked IsCorrectable/erasure state separately.
func (proc *RTPProcessor) CheckCodeword(stripeID uint64, erasureSetID uint32, threadID int) (bool, error) {
	if proc.array == nil {
		return false, fmt.Errorf("rtp: CheckCodeword called before Attach")
	}
	if proc.array.GetNumOfErasures(erasureSetID) > 0 {
		return true, nil
	}

	row := NewBuffer(proc.SymbolSize())
	diag := NewBuffer(proc.SymbolSize())
	adiag := NewBuffer(proc.SymbolSize())

	symbolBuf := make([]byte, proc.SymbolSize())
	for s := uint32(0); s < proc.p; s++ {
		if !proc.readSymbol(stripeID, erasureSetID, s, symbolBuf) {
			return false, fmt.Errorf("rtp stripe %d: %w (symbol %d)", stripeID, ErrCheckReadFailed, s)
		}
		row.XorInto(symbolBuf)
		proc.addToDiags(diag, adiag, s, symbolBuf)
	}

	storedDiag := NewBuffer(proc.SymbolSize())
	if !proc.readSymbol(stripeID, erasureSetID, proc.p, storedDiag.Bytes()) {
		return false, fmt.Errorf("rtp stripe %d: %w (diag parity)", stripeID, ErrCheckReadFailed)
	}
	storedAdiag := NewBuffer(proc.SymbolSize())
	if !proc.readSymbol(stripeID, erasureSetID, proc.p+1, storedAdiag.Bytes()) {
		return false, fmt.Errorf("rtp stripe %d: %w (adiag parity)", stripeID, ErrCheckReadFailed)
	}

	return row.IsZero() && diag.Equal(storedDiag) && adiag.Equal(storedAdiag), nil
}
