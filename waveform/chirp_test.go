package waveform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func synthesizeChirp(dem *ChirpDemodulator, bits []byte) []float64 {
	up, down := dem.UpTemplate(), dem.DownTemplate()
	samples := make([]float64, 0, len(bits)*dem.SamplesPerSymbol())
	for _, bit := range bits {
		tmpl := down
		if bit == BitOne {
			tmpl = up
		}
		samples = append(samples, tmpl...)
	}
	return samples
}

func TestChirpDemodulator_FindsPreambleAndDecodesBits(t *testing.T) {
	dem := NewChirpDemodulator(dsssTestSampleRate)
	preamble := []byte{BitOne, BitOne, BitZero, BitZero}
	payload := []byte{BitOne, BitZero, BitOne, BitOne, BitZero}

	samples := synthesizeChirp(dem, append(append([]byte{}, preamble...), payload...))

	start, ok := dem.FindPreamble(samples)
	require.True(t, ok)

	got, _, ok := dem.DecodeBits(samples, start, len(payload))
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestChirpDemodulator_NoPreambleInSilence(t *testing.T) {
	dem := NewChirpDemodulator(dsssTestSampleRate)
	silence := make([]float64, dem.SamplesPerSymbol()*10)

	_, ok := dem.FindPreamble(silence)
	assert.False(t, ok)
}

func TestToFloat64(t *testing.T) {
	in := []float32{1, -1, 0.5}
	out := ToFloat64(in)
	assert.Equal(t, []float64{1, -1, 0.5}, out)
}
