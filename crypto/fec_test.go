package crypto

import (
	"testing"

	"github.com/klauspost/reedsolomon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildVerifiedBlob(t *testing.T, data []byte) []byte {
	t.Helper()
	dataShardCount := (len(data) + fecShardSize - 1) / fecShardSize
	shards := make([][]byte, dataShardCount+fecParityShards)
	for i := 0; i < dataShardCount; i++ {
		shard := make([]byte, fecShardSize)
		start := i * fecShardSize
		end := start + fecShardSize
		if end > len(data) {
			end = len(data)
		}
		copy(shard, data[start:end])
		shards[i] = shard
	}
	for i := dataShardCount; i < len(shards); i++ {
		shards[i] = make([]byte, fecShardSize)
	}

	enc, err := reedsolomon.New(dataShardCount, fecParityShards)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(shards))

	var parity []byte
	for _, s := range shards[dataShardCount:] {
		parity = append(parity, s...)
	}
	return append(append([]byte{}, data...), parity...)
}

func TestFECStrip_VerifiedParityIsRemoved(t *testing.T) {
	data := []byte("a sealed acoustic frame body")
	blob := buildVerifiedBlob(t, data)

	stripped := FECStrip(blob)
	assert.Equal(t, data, stripped)
}

func TestFECStrip_InvalidParityLeavesBlobUnchanged(t *testing.T) {
	data := []byte("a sealed acoustic frame body")
	blob := buildVerifiedBlob(t, data)
	blob[len(blob)-1] ^= 0xFF // corrupt the trailing parity byte

	stripped := FECStrip(blob)
	assert.Equal(t, blob, stripped)
}

func TestFECStrip_ShortBlobReturnedUnchanged(t *testing.T) {
	blob := []byte("short")
	assert.Equal(t, blob, FECStrip(blob))
}
