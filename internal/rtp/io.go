package rtp

// readSymbol, readSubsymbols, writeSymbol and writeSubsymbols delegate to
// the attached DiskArray. They exist as their own layer (rather than
// calling proc.array directly throughout the package) so the full-symbol
// convenience of addressing subStart=0, subCount=unitsPerSymbol lives in
// one place.

func (proc *RTPProcessor) readSymbol(stripeID uint64, erasureSetID, symbolPos uint32, out []byte) bool {
	return proc.array.ReadStripeUnit(stripeID, erasureSetID, symbolPos, 0, proc.unitsPerSymbol, out)
}

func (proc *RTPProcessor) readSubsymbols(stripeID uint64, erasureSetID, symbolPos uint32, out []byte, start, count uint32) bool {
	return proc.array.ReadStripeUnit(stripeID, erasureSetID, symbolPos, start, count, out)
}

func (proc *RTPProcessor) writeSymbol(stripeID uint64, erasureSetID, symbolPos uint32, symbol []byte) bool {
	return proc.array.WriteStripeUnit(stripeID, erasureSetID, symbolPos, 0, proc.unitsPerSymbol, symbol)
}

func (proc *RTPProcessor) writeSubsymbols(stripeID uint64, erasureSetID, symbolPos uint32, data []byte, start, count uint32) bool {
	return proc.array.WriteStripeUnit(stripeID, erasureSetID, symbolPos, start, count, data)
}
