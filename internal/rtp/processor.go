package rtp

import "fmt"

// RTPParams configures an RTPProcessor. CodeDimension is k, the number of
// data symbols per stripe; p = CodeDimension+1 must be prime.
type RTPParams struct {
	CodeDimension uint32
}

type threadScratch struct {
	a, b Buffer
}

// RTPProcessor implements the row/diagonal/anti-diagonal triple-parity
// erasure code over a striped disk array. It holds no stripe state itself;
// all durable state lives behind the attached DiskArray.
type RTPProcessor struct {
	k              uint32 // data symbols per stripe
	p              uint32 // k+1, prime
	unitsPerSymbol uint32 // p-1
	unitSize       uint32 // bytes per stripe unit (subsymbol)

	array   DiskArray
	scratch []threadScratch
}

// NewRTPProcessor validates params and constructs a detached processor.
// Call Attach before using it.
func NewRTPProcessor(params RTPParams, stripeUnitSize uint32) (*RTPProcessor, error) {
	if stripeUnitSize == 0 {
		return nil, fmt.Errorf("rtp: stripe unit size must be greater than 0")
	}
	if params.CodeDimension == 0 {
		return nil, fmt.Errorf("rtp: CodeDimension must be greater than 0")
	}

	p := params.CodeDimension + 1
	if !isPrime(p) {
		return nil, fmt.Errorf("rtp: CodeDimension+1 (%d) must be prime", p)
	}

	return &RTPProcessor{
		k:              params.CodeDimension,
		p:              p,
		unitsPerSymbol: p - 1,
		unitSize:       stripeUnitSize,
	}, nil
}

// SymbolSize returns the size in bytes of one symbol (unitsPerSymbol * unit size).
func (proc *RTPProcessor) SymbolSize() uint32 { return proc.unitsPerSymbol * proc.unitSize }

// N returns the codeword length k+3 (data + row + diag + anti-diag).
func (proc *RTPProcessor) N() uint32 { return proc.k + 3 }

// K returns the code dimension.
func (proc *RTPProcessor) K() uint32 { return proc.k }

// P returns k+1.
func (proc *RTPProcessor) P() uint32 { return proc.p }

// Attach binds the processor to a disk array and reserves per-thread
// scratch space, allocated once up front like the teacher's constructors.
func (proc *RTPProcessor) Attach(array DiskArray, concurrentThreads int) error {
	if array == nil {
		return fmt.Errorf("rtp: Attach requires a non-nil disk array")
	}
	if concurrentThreads <= 0 {
		return fmt.Errorf("rtp: concurrentThreads must be positive, got %d", concurrentThreads)
	}

	proc.array = array
	proc.scratch = make([]threadScratch, concurrentThreads)
	for i := range proc.scratch {
		proc.scratch[i] = threadScratch{
			a: NewBuffer(proc.SymbolSize()),
			b: NewBuffer(proc.SymbolSize()),
		}
	}
	return nil
}

// IsCorrectable reports whether erasureSetID can still be reconstructed.
func (proc *RTPProcessor) IsCorrectable(erasureSetID uint32) bool {
	return proc.array.GetNumOfErasures(erasureSetID) <= 3
}
