package rtp

// DiskArray is the capability surface the engine needs from the base disk
// array: symbol-level IO addressed by (stripe, erasure set, symbol position,
// subsymbol range), plus erasure-set introspection. Where logical symbols
// land on physical devices, and the actual block IO, are the array's
// concern, not the engine's.
type DiskArray interface {
	ReadStripeUnit(stripeID uint64, erasureSetID, symbolPos, subStart, subCount uint32, buf []byte) bool
	WriteStripeUnit(stripeID uint64, erasureSetID, symbolPos, subStart, subCount uint32, buf []byte) bool

	IsErased(erasureSetID, pos uint32) bool
	// GetErasedPosition returns the k-th erased position (k in 0..2) for
	// erasureSetID, or -1 if this erasure set has no such entry.
	GetErasedPosition(erasureSetID uint32, k int) int
	GetNumOfErasures(erasureSetID uint32) uint32
}
