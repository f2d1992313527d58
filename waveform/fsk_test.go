package waveform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func synthesizeFSK(t *testing.T, dem *FSKDemodulator, bits []byte) []float32 {
	t.Helper()
	sps := dem.SamplesPerSymbol()
	samples := make([]float32, 0, len(bits)*sps)
	for _, bit := range bits {
		freq := dem.SpaceHz()
		if bit == BitOne {
			freq = dem.MarkHz()
		}
		for n := 0; n < sps; n++ {
			idx := len(samples)
			samples = append(samples, float32(CosSample(freq, idx, dsssTestSampleRate)))
		}
	}
	return samples
}

func TestFSKDemodulator_RecoversBits(t *testing.T) {
	dem := NewFSKDemodulator(dsssTestSampleRate)
	want := []byte{BitOne, BitOne, BitZero, BitOne, BitZero, BitZero}
	samples := synthesizeFSK(t, dem, want)

	got := dem.Demodulate(samples)
	require.Len(t, got, len(want))
	assert.Equal(t, want, got)
}

func TestFSKDemodulator_SilenceIsIndeterminate(t *testing.T) {
	dem := NewFSKDemodulator(dsssTestSampleRate)
	silence := make([]float32, dem.SamplesPerSymbol()*3)

	got := dem.Demodulate(silence)
	for _, b := range got {
		assert.Equal(t, BitIndeterminate, b)
	}
}
