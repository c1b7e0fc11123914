package rtp_test

import (
	"testing"

	"github.com/raidcore/rtp/internal/diskarray"
	"github.com/raidcore/rtp/internal/rtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSmallestPrimeScenario exercises the smallest valid configuration,
// k=2 (p=3, n=5), through every erasure count the code supports.
func TestSmallestPrimeScenario(t *testing.T) {
	rtp.Debug = true
	proc, err := rtp.NewRTPProcessor(rtp.RTPParams{CodeDimension: 2}, 1)
	require.NoError(t, err)

	array := diskarray.NewSimDiskArray(int(proc.N()), proc.P()-1, 1)
	require.NoError(t, proc.Attach(array, 1))

	data := []byte{0xAA, 0xAA, 0xBB, 0xBB} // symbol0=[0xAA,0xAA], symbol1=[0xBB,0xBB]

	cleanSet, err := array.RegisterErasureSet(nil)
	require.NoError(t, err)
	ok, err := proc.EncodeStripe(0, cleanSet, data, 0)
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("no_erasure", func(t *testing.T) {
		set, err := array.RegisterErasureSet(nil)
		require.NoError(t, err)
		dst := make([]byte, len(data))
		ok, err := proc.DecodeDataSymbols(0, set, 0, 2, dst, 0)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, data, dst)
	})

	t.Run("single_data_erasure", func(t *testing.T) {
		set, err := array.RegisterErasureSet([]int{0})
		require.NoError(t, err)
		dst := make([]byte, len(data))
		ok, err := proc.DecodeDataSymbols(0, set, 0, 2, dst, 0)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, data, dst)
	})

	t.Run("double_data_erasure", func(t *testing.T) {
		set, err := array.RegisterErasureSet([]int{0, 1})
		require.NoError(t, err)
		dst := make([]byte, len(data))
		ok, err := proc.DecodeDataSymbols(0, set, 0, 2, dst, 0)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, data, dst)
	})

	t.Run("triple_erasure_both_data_and_row", func(t *testing.T) {
		// positions: 0,1 data; 2 row; 3 diag; 4 adiag.
		set, err := array.RegisterErasureSet([]int{0, 1, 2})
		require.NoError(t, err)
		dst := make([]byte, len(data))
		ok, err := proc.DecodeDataSymbols(0, set, 0, 2, dst, 0)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, data, dst)
	})
}
