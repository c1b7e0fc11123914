package rtp

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// EncodeStripe computes row, diagonal and anti-diagonal parity for k data
// symbols and writes every non-erased symbol (data and parity) to the
// attached disk array. data must hold exactly k*SymbolSize() bytes.
func (proc *RTPProcessor) EncodeStripe(stripeID uint64, erasureSetID uint32, data []byte, threadID int) (bool, error) {
	if proc.array == nil {
		return false, fmt.Errorf("rtp: EncodeStripe called before Attach")
	}
	symSize := int(proc.SymbolSize())
	if len(data) != int(proc.k)*symSize {
		return false, fmt.Errorf("rtp: EncodeStripe expects %d bytes of data, got %d", int(proc.k)*symSize, len(data))
	}

	row := NewBuffer(proc.SymbolSize())
	diag := NewBuffer(proc.SymbolSize())
	adiag := NewBuffer(proc.SymbolSize())

	ok := true
	for s := uint32(0); s < proc.k; s++ {
		symbol := data[int(s)*symSize : int(s+1)*symSize]

		if !proc.array.IsErased(erasureSetID, s) {
			ok = proc.writeSymbol(stripeID, erasureSetID, s, symbol) && ok
		}

		row.XorInto(symbol)
		proc.addToDiags(diag, adiag, s, symbol)
	}

	// the row-parity symbol itself participates in the diagonals, as
	// column p-1.
	proc.addToDiags(diag, adiag, proc.p-1, row.Bytes())

	if !proc.array.IsErased(erasureSetID, proc.p-1) {
		ok = proc.writeSymbol(stripeID, erasureSetID, proc.p-1, row.Bytes()) && ok
	}
	if !proc.array.IsErased(erasureSetID, proc.p) {
		ok = proc.writeSymbol(stripeID, erasureSetID, proc.p, diag.Bytes()) && ok
	}
	if !proc.array.IsErased(erasureSetID, proc.p+1) {
		ok = proc.writeSymbol(stripeID, erasureSetID, proc.p+1, adiag.Bytes()) && ok
	}

	logrus.Debugf("[rtp] EncodeStripe stripe=%d erasureSet=%d ok=%v", stripeID, erasureSetID, ok)
	return ok, nil
}
