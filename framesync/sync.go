// Package framesync implements the frame synchronizer: it scans a
// RawBitStream for a known sync word, tolerating a small number of bit
// errors and carrier inversion.
//
// The linear-chirp waveform synchronizes differently (in the correlator
// domain rather than over a bit pattern); see waveform.ChirpDemodulator's
// FindPreamble for that path. This package covers the DSSS and FSK
// variants, which share one bit-pattern search.
package framesync

import "github.com/opd-ai/acoustipipe/waveform"

// Match describes where a sync word was found in a RawBitStream.
type Match struct {
	// Offset is the bit index immediately following the sync word, i.e.
	// where the length field begins.
	Offset int
	// Inverted is true if the sync word matched only after inverting
	// every bit; subsequent bits must be negated before further use.
	Inverted bool
}

// Find scans bits for pattern at every offset in [0, min(len(bits)-len(pattern), cap)],
// both ends included, accepting the first offset whose Hamming distance to pattern or to the
// bitwise negation of pattern is at most tolerance. It never allocates on a
// failed search and never reports an error: "no sync" is communicated
// solely via the boolean return.
func Find(bits []byte, pattern []byte, tolerance int, cap int) (Match, bool) {
	if len(pattern) == 0 || len(bits) < len(pattern) {
		return Match{}, false
	}

	limit := len(bits) - len(pattern)
	if limit > cap {
		limit = cap
	}

	for i := 0; i <= limit; i++ {
		window := bits[i : i+len(pattern)]

		if hamming(window, pattern) <= tolerance {
			return Match{Offset: i + len(pattern), Inverted: false}, true
		}
		if hammingInverted(window, pattern) <= tolerance {
			return Match{Offset: i + len(pattern), Inverted: true}, true
		}
	}
	return Match{}, false
}

func hamming(a, b []byte) int {
	dist := 0
	for i := range a {
		if normalize(a[i]) != b[i] {
			dist++
		}
	}
	return dist
}

func hammingInverted(a, b []byte) int {
	dist := 0
	for i := range a {
		if invert(normalize(a[i])) != b[i] {
			dist++
		}
	}
	return dist
}

// normalize treats an indeterminate symbol as a bit-error against either
// polarity: it never equals 0 or 1 so it always counts against the
// distance, matching the payload extractor's "indeterminate counts as 0"
// rule applied symmetrically here (a 2 never coincidentally matches).
func normalize(b byte) byte {
	if b == waveform.BitZero || b == waveform.BitOne {
		return b
	}
	return 2
}

func invert(b byte) byte {
	switch b {
	case waveform.BitZero:
		return waveform.BitOne
	case waveform.BitOne:
		return waveform.BitZero
	default:
		return b
	}
}

// InvertFrom returns a copy of bits with every bit from index start onward
// negated, for use after a Match with Inverted == true: the sync word
// itself already matched against its negation, but everything the payload
// extractor reads afterward must be un-inverted first.
func InvertFrom(bits []byte, start int) []byte {
	out := make([]byte, len(bits))
	copy(out, bits)
	for i := start; i < len(out); i++ {
		out[i] = invert(out[i])
	}
	return out
}
