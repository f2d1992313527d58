package framesync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/acoustipipe/waveform"
)

func bitsFrom(s string) []byte {
	bits := make([]byte, len(s))
	for i, c := range s {
		if c == '1' {
			bits[i] = waveform.BitOne
		}
	}
	return bits
}

func TestFind_ExactMatch(t *testing.T) {
	pattern := bitsFrom("1010")
	stream := append(append(bitsFrom("0011"), pattern...), bitsFrom("1111")...)

	m, ok := Find(stream, pattern, 0, 100)
	require.True(t, ok)
	assert.Equal(t, 4+len(pattern), m.Offset)
	assert.False(t, m.Inverted)
}

func TestFind_ToleratesBitErrors(t *testing.T) {
	pattern := bitsFrom("00011010")
	noisy := bitsFrom("00111010") // one bit flipped
	stream := append(noisy, bitsFrom("0000")...)

	m, ok := Find(stream, pattern, 1, 100)
	require.True(t, ok)
	assert.Equal(t, len(pattern), m.Offset)
}

func TestFind_DetectsInversion(t *testing.T) {
	pattern := bitsFrom("00011010")
	inverted := bitsFrom("11100101")
	stream := append(inverted, bitsFrom("0000")...)

	m, ok := Find(stream, pattern, 0, 100)
	require.True(t, ok)
	assert.True(t, m.Inverted)
}

func TestFind_NoMatchBeyondTolerance(t *testing.T) {
	pattern := bitsFrom("000000000000")
	stream := bitsFrom("000000111111") // 6 bits off either polarity

	_, ok := Find(stream, pattern, 2, 100)
	assert.False(t, ok)
}

func TestFind_IndeterminateNeverMatchesEitherPolarity(t *testing.T) {
	pattern := bitsFrom("0000")
	stream := []byte{waveform.BitIndeterminate, waveform.BitIndeterminate, waveform.BitIndeterminate, waveform.BitIndeterminate}

	_, ok := Find(stream, pattern, 1, 100)
	assert.False(t, ok)
}

func TestInvertFrom(t *testing.T) {
	bits := bitsFrom("0011")
	out := InvertFrom(bits, 2)
	assert.Equal(t, bitsFrom("0000"), out)
}
