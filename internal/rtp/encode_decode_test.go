package rtp_test

import (
	"testing"

	"github.com/raidcore/rtp/internal/diskarray"
	"github.com/raidcore/rtp/internal/rtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStripe builds a processor for the given code dimension, encodes
// random-ish data into a fresh clean stripe, and returns everything needed
// to register erasure sets and decode against it.
func setupStripe(t *testing.T, k uint32, unitSize uint32) (*rtp.RTPProcessor, *diskarray.SimDiskArray, []byte) {
	t.Helper()
	rtp.Debug = true

	proc, err := rtp.NewRTPProcessor(rtp.RTPParams{CodeDimension: k}, unitSize)
	require.NoError(t, err)

	array := diskarray.NewSimDiskArray(int(proc.N()), proc.P()-1, unitSize)
	require.NoError(t, proc.Attach(array, 2))

	data := make([]byte, int(k)*int(proc.SymbolSize()))
	for i := range data {
		data[i] = byte(i*31 + 7)
	}

	cleanSet, err := array.RegisterErasureSet(nil)
	require.NoError(t, err)
	require.Equal(t, uint32(0), cleanSet)

	ok, err := proc.EncodeStripe(0, cleanSet, data, 0)
	require.NoError(t, err)
	require.True(t, ok)

	return proc, array, data
}

func TestEncodeThenCheckCodewordClean(t *testing.T) {
	proc, array, _ := setupStripe(t, 4, 2)
	cleanSet, err := array.RegisterErasureSet(nil)
	require.NoError(t, err)

	ok, err := proc.CheckCodeword(0, cleanSet, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckCodewordVacuouslyTrueUnderErasure(t *testing.T) {
	proc, array, _ := setupStripe(t, 4, 2)
	erasedSet, err := array.RegisterErasureSet([]int{1})
	require.NoError(t, err)

	ok, err := proc.CheckCodeword(0, erasedSet, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDecodeNoErasureIsFastPath(t *testing.T) {
	proc, array, data := setupStripe(t, 4, 2)
	cleanSet, err := array.RegisterErasureSet(nil)
	require.NoError(t, err)

	dst := make([]byte, len(data))
	ok, err := proc.DecodeDataSymbols(0, cleanSet, 0, 4, dst, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, data, dst)
}

func TestDecodeSingleErasureEveryPosition(t *testing.T) {
	proc, array, data := setupStripe(t, 4, 2)
	symSize := int(proc.SymbolSize())

	// n = k+3 = 7 possible positions for a single erasure.
	for pos := 0; pos < int(proc.N()); pos++ {
		t.Run(positionName(pos), func(t *testing.T) {
			set, err := array.RegisterErasureSet([]int{pos})
			require.NoError(t, err)

			dst := make([]byte, len(data))
			ok, err := proc.DecodeDataSymbols(0, set, 0, 4, dst, 0)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, data, dst)
		})
	}
	_ = symSize
}

func TestDecodeDoubleErasure(t *testing.T) {
	proc, array, data := setupStripe(t, 4, 2)

	pairs := [][2]int{{0, 1}, {0, 4}, {3, 4}, {4, 5}, {0, 5}}
	for _, pair := range pairs {
		t.Run(positionName(pair[0])+"_"+positionName(pair[1]), func(t *testing.T) {
			set, err := array.RegisterErasureSet([]int{pair[0], pair[1]})
			require.NoError(t, err)

			dst := make([]byte, len(data))
			ok, err := proc.DecodeDataSymbols(0, set, 0, 4, dst, 0)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, data, dst)
		})
	}
}

func TestDecodeTripleErasureRAID4Positions(t *testing.T) {
	proc, array, data := setupStripe(t, 4, 2)

	triples := [][3]int{{0, 1, 2}, {0, 1, 4}, {2, 3, 4}, {0, 2, 4}}
	for _, tr := range triples {
		t.Run(positionName(tr[0])+"_"+positionName(tr[1])+"_"+positionName(tr[2]), func(t *testing.T) {
			set, err := array.RegisterErasureSet([]int{tr[0], tr[1], tr[2]})
			require.NoError(t, err)

			dst := make([]byte, len(data))
			ok, err := proc.DecodeDataSymbols(0, set, 0, 4, dst, 0)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, data, dst)
		})
	}
}

func TestDecodeTripleErasureBothDiagonalsLostRestoresByRow(t *testing.T) {
	proc, array, data := setupStripe(t, 4, 2)

	// positions 5 and 6 are diag and adiag (p=5, p+1=6); erasing both plus
	// one data symbol leaves a single RAID4 erasure, which the row parity
	// alone restores.
	set, err := array.RegisterErasureSet([]int{0, 5, 6})
	require.NoError(t, err)

	dst := make([]byte, len(data))
	ok, err := proc.DecodeDataSymbols(0, set, 0, 4, dst, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, data, dst)
}

func TestNewRTPProcessorRejectsNonPrimeP(t *testing.T) {
	// k=3 -> p=4, not prime.
	_, err := rtp.NewRTPProcessor(rtp.RTPParams{CodeDimension: 3}, 1)
	assert.Error(t, err)
}

func TestGetEncodingStrategyBound(t *testing.T) {
	proc, array, _ := setupStripe(t, 4, 2)
	cleanSet, err := array.RegisterErasureSet(nil)
	require.NoError(t, err)

	small := proc.GetEncodingStrategy(cleanSet, 0, 1)
	assert.Equal(t, rtp.StrategyUpdate, small)

	whole := proc.GetEncodingStrategy(cleanSet, 0, 4*4) // full stripe worth of subsymbols
	assert.Equal(t, rtp.StrategyReadWrite, whole)

	erasedSet, err := array.RegisterErasureSet([]int{0})
	require.NoError(t, err)
	forced := proc.GetEncodingStrategy(erasedSet, 0, 1)
	assert.Equal(t, rtp.StrategyReadWrite, forced)
}

func TestUpdateInformationSymbolsMatchesReEncode(t *testing.T) {
	const unitSize = 2
	proc, array, data := setupStripe(t, 4, unitSize)
	cleanSet, err := array.RegisterErasureSet(nil)
	require.NoError(t, err)

	// global subsymbol indices 3 and 4 (each unitSize bytes) live at byte
	// offset [3*unitSize, 5*unitSize) in the flat symbol-major layout.
	const firstSubsymbol, count = 3, 2
	off := firstSubsymbol * unitSize
	n := count * unitSize

	modified := make([]byte, len(data))
	copy(modified, data)
	for i := 0; i < n; i++ {
		modified[off+i] ^= byte(0xF0 + i)
	}

	ok, err := proc.UpdateInformationSymbols(0, cleanSet, firstSubsymbol, count, modified[off:off+n], 0)
	require.NoError(t, err)
	assert.True(t, ok)

	checkOk, err := proc.CheckCodeword(0, cleanSet, 0)
	require.NoError(t, err)
	assert.True(t, checkOk)

	dst := make([]byte, len(data))
	ok, err = proc.DecodeDataSymbols(0, cleanSet, 0, 4, dst, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, modified, dst)
}

func positionName(pos int) string {
	switch pos {
	case 0, 1, 2, 3:
		return "data"
	default:
		return "parity"
	}
}
