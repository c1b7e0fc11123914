package diskarray

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Disk is one simulated physical disk: a sparse map of stripe id to that
// stripe's symbol bytes. There is no placement logic here, unlike a real
// array; it exists to give the RTP engine something to read and write
// against in tests and the CLI demo.
type Disk struct {
	ID   int
	Data map[uint64][]byte
}

// SimDiskArray is an in-memory reference implementation of rtp.DiskArray.
// Erasure sets are registered up front as an immutable list of up to three
// erased positions; IsErased/GetErasedPosition/GetNumOfErasures all read
// back from that registration.
type SimDiskArray struct {
	disks          []*Disk
	unitsPerSymbol uint32
	unitSize       uint32

	erasureSets [][]int
}

// NewSimDiskArray allocates numDisks disks, each symbol unitsPerSymbol*unitSize bytes.
func NewSimDiskArray(numDisks int, unitsPerSymbol, unitSize uint32) *SimDiskArray {
	disks := make([]*Disk, numDisks)
	for i := range disks {
		disks[i] = &Disk{ID: i, Data: make(map[uint64][]byte)}
	}
	return &SimDiskArray{
		disks:          disks,
		unitsPerSymbol: unitsPerSymbol,
		unitSize:       unitSize,
	}
}

// RegisterErasureSet registers an immutable combination of up to three
// erased disk positions and returns its erasure-set id.
func (a *SimDiskArray) RegisterErasureSet(positions []int) (uint32, error) {
	if len(positions) > 3 {
		return 0, fmt.Errorf("diskarray: erasure set has %d positions, max 3", len(positions))
	}
	cp := make([]int, len(positions))
	copy(cp, positions)
	a.erasureSets = append(a.erasureSets, cp)
	id := uint32(len(a.erasureSets) - 1)
	logrus.Debugf("[diskarray] registered erasure set %d: %v", id, cp)
	return id, nil
}

func (a *SimDiskArray) symbolSize() int {
	return int(a.unitsPerSymbol * a.unitSize)
}

func (a *SimDiskArray) ReadStripeUnit(stripeID uint64, erasureSetID, symbolPos, subStart, subCount uint32, buf []byte) bool {
	if a.IsErased(erasureSetID, symbolPos) {
		logrus.Debugf("[diskarray] read refused: disk %d erased for set %d", symbolPos, erasureSetID)
		return false
	}
	if int(symbolPos) >= len(a.disks) {
		return false
	}
	data, ok := a.disks[symbolPos].Data[stripeID]
	if !ok {
		return false
	}
	u := int(a.unitSize)
	off, n := int(subStart)*u, int(subCount)*u
	if off+n > len(data) || n > len(buf) {
		return false
	}
	copy(buf, data[off:off+n])
	return true
}

func (a *SimDiskArray) WriteStripeUnit(stripeID uint64, erasureSetID, symbolPos, subStart, subCount uint32, buf []byte) bool {
	if a.IsErased(erasureSetID, symbolPos) {
		logrus.Debugf("[diskarray] write refused: disk %d erased for set %d", symbolPos, erasureSetID)
		return false
	}
	if int(symbolPos) >= len(a.disks) {
		return false
	}
	disk := a.disks[symbolPos]
	data, ok := disk.Data[stripeID]
	if !ok {
		data = make([]byte, a.symbolSize())
		disk.Data[stripeID] = data
	}
	u := int(a.unitSize)
	off, n := int(subStart)*u, int(subCount)*u
	if off+n > len(data) || n > len(buf) {
		return false
	}
	copy(data[off:off+n], buf)
	return true
}

func (a *SimDiskArray) IsErased(erasureSetID, pos uint32) bool {
	if int(erasureSetID) >= len(a.erasureSets) {
		return false
	}
	for _, p := range a.erasureSets[erasureSetID] {
		if uint32(p) == pos {
			return true
		}
	}
	return false
}

func (a *SimDiskArray) GetErasedPosition(erasureSetID uint32, k int) int {
	if int(erasureSetID) >= len(a.erasureSets) {
		return -1
	}
	set := a.erasureSets[erasureSetID]
	if k < 0 || k >= len(set) {
		return -1
	}
	return set[k]
}

func (a *SimDiskArray) GetNumOfErasures(erasureSetID uint32) uint32 {
	if int(erasureSetID) >= len(a.erasureSets) {
		return 0
	}
	return uint32(len(a.erasureSets[erasureSetID]))
}
