package rtp

import (
	"fmt"

	"github.com/raidcore/rtp/internal/diskarray"
	"github.com/sirupsen/logrus"
)

// RunRTPSimulation drives one encode -> check -> erase -> decode cycle over
// an in-memory disk array, the way the teacher's per-RAID-level
// *SimulationFlow helpers drove a single demo pass.
func RunRTPSimulation(k uint32, data []byte, erase []int) error {
	proc, err := NewRTPProcessor(RTPParams{CodeDimension: k}, 1)
	if err != nil {
		return fmt.Errorf("failed to construct RTP processor: %w", err)
	}

	symSize := int(proc.SymbolSize())
	padded := make([]byte, int(k)*symSize)
	copy(padded, data)

	array := diskarray.NewSimDiskArray(int(proc.N()), proc.unitsPerSymbol, proc.unitSize)
	if err := proc.Attach(array, 1); err != nil {
		return fmt.Errorf("failed to attach disk array: %w", err)
	}

	const stripeID = 0

	cleanSetID, err := array.RegisterErasureSet(nil)
	if err != nil {
		return fmt.Errorf("failed to register clean erasure set: %w", err)
	}

	ok, err := proc.EncodeStripe(stripeID, cleanSetID, padded, 0)
	if err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}
	logrus.Infof("[rtp] EncodeStripe k=%d ok=%v", k, ok)

	checkOk, err := proc.CheckCodeword(stripeID, cleanSetID, 0)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	logrus.Infof("[rtp] CheckCodeword (no erasures) ok=%v", checkOk)

	erasedSetID, err := array.RegisterErasureSet(erase)
	if err != nil {
		return fmt.Errorf("failed to register erasure set %v: %w", erase, err)
	}

	dst := make([]byte, len(padded))
	decOk, err := proc.DecodeDataSymbols(stripeID, erasedSetID, 0, k, dst, 0)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	logrus.Infof("[rtp] DecodeDataSymbols after erasing %v ok=%v recovered=%q", erase, decOk, string(dst))

	return nil
}
