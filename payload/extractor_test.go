package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/acoustipipe/waveform"
)

func bitsForLength(v int) []byte {
	bits := make([]byte, 16)
	for i := 0; i < 16; i++ {
		if v&(1<<uint(15-i)) != 0 {
			bits[i] = waveform.BitOne
		}
	}
	return bits
}

func bitsForByte(b byte) []byte {
	bits := make([]byte, 8)
	for i := 0; i < 8; i++ {
		if b&(1<<uint(7-i)) != 0 {
			bits[i] = waveform.BitOne
		}
	}
	return bits
}

func buildFrame(data []byte) []byte {
	lengthBits := bitsForLength(len(data))
	var dataBits []byte
	for _, b := range data {
		dataBits = append(dataBits, bitsForByte(b)...)
	}
	frame := append([]byte{}, lengthBits...)
	frame = append(frame, dataBits...)
	frame = append(frame, dataBits...)
	frame = append(frame, dataBits...)
	return frame
}

func TestExtract_CleanTripleRedundancy(t *testing.T) {
	data := []byte("hi")
	frame := buildFrame(data)

	got, err := Extract(frame, 0)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestExtract_MajorityVoteCorrectsSingleFlip(t *testing.T) {
	data := []byte{0xFF}
	frame := buildFrame(data)
	// flip one bit in the second copy only; majority of 3 still picks 1.
	copyLen := 8 * len(data)
	frame[16+copyLen] = waveform.BitZero

	got, err := Extract(frame, 0)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestExtract_TruncatedStreamIsMalformed(t *testing.T) {
	data := []byte("hello")
	frame := buildFrame(data)
	frame = frame[:len(frame)-10]

	_, err := Extract(frame, 0)
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestParseLength_RejectsZeroAndOverMax(t *testing.T) {
	_, err := ParseLength(bitsForLength(0))
	assert.ErrorIs(t, err, ErrMalformedFrame)

	_, err = ParseLength(bitsForLength(MaxLength + 1))
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestParseLength_AcceptsMaxLength(t *testing.T) {
	v, err := ParseLength(bitsForLength(MaxLength))
	require.NoError(t, err)
	assert.Equal(t, MaxLength, v)
}

func TestExtract_OffsetIntoLargerStream(t *testing.T) {
	data := []byte("x")
	syncWord := []byte{waveform.BitOne, waveform.BitZero, waveform.BitOne}
	frame := append(append([]byte{}, syncWord...), buildFrame(data)...)

	got, err := Extract(frame, len(syncWord))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
