// Package payload implements the payload extractor: it reads the 16-bit
// length-prefixed, triple-redundant PayloadFrame that follows a frame sync
// match and reduces it to bytes by majority vote.
package payload

import (
	"errors"

	"github.com/opd-ai/acoustipipe/waveform"
)

// MaxLength is the hard cap on a PayloadFrame's declared byte length,
// enforced before any allocation proportional to it.
const MaxLength = 1024

// ErrMalformedFrame means the length field was out of range or the stream
// was truncated before the full triple-redundant payload arrived. It is
// swallowed silently by the decoder — "no message", not an error record.
var ErrMalformedFrame = errors.New("payload: malformed frame")

// Extract reads a 16-bit big-endian length L from bits[offset:], validates
// 0 < L <= MaxLength, and majority-votes the following 3*8*L bits into L
// bytes. It never allocates proportional to a declared length before that
// length has been validated.
func Extract(bits []byte, offset int) ([]byte, error) {
	if len(bits) < offset+16 {
		return nil, ErrMalformedFrame
	}

	length, err := ParseLength(bits[offset : offset+16])
	if err != nil {
		return nil, err
	}

	bodyStart := offset + 16
	need := 3 * 8 * length
	if len(bits)-bodyStart < need {
		return nil, ErrMalformedFrame
	}

	copyLen := 8 * length
	data := make([]byte, length)
	for i := 0; i < copyLen; i++ {
		a := bits[bodyStart+i]
		b := bits[bodyStart+copyLen+i]
		c := bits[bodyStart+2*copyLen+i]

		if majority(a, b, c) == waveform.BitOne {
			data[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return data, nil
}

// ParseLength reads a 16-bit big-endian length field (MSB first) and
// validates 0 < L <= MaxLength. Exposed separately so the chirp variant,
// which decodes the length field before it knows how many payload bits to
// re-center for, can validate without re-implementing the bit arithmetic.
func ParseLength(bits []byte) (int, error) {
	if len(bits) != 16 {
		return 0, ErrMalformedFrame
	}
	v := 0
	for _, b := range bits {
		v <<= 1
		if b == waveform.BitOne {
			v |= 1
		}
	}
	if v == 0 || v > MaxLength {
		return 0, ErrMalformedFrame
	}
	return v, nil
}

// majority returns BitOne only if at least two of the three copies are
// BitOne; an indeterminate symbol counts as BitZero.
func majority(a, b, c byte) byte {
	ones := 0
	for _, v := range []byte{a, b, c} {
		if v == waveform.BitOne {
			ones++
		}
	}
	if ones >= 2 {
		return waveform.BitOne
	}
	return waveform.BitZero
}
