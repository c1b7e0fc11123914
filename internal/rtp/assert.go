package rtp

import "fmt"

// Debug gates internal consistency assertions (Gauss-Jordan elimination
// invariants, geometry invariants). Left false by default: a corrupted
// erasure set degrades to a wrong answer rather than a panic in production
// use. Tests turn it on to catch algebra bugs early.
var Debug = false

func debugAssert(cond bool, format string, args ...any) {
	if !Debug || cond {
		return
	}
	panic(fmt.Sprintf("rtp: assertion failed: "+format, args...))
}
