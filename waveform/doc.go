// Package waveform implements the acoustic physical layer: it turns a
// windowed audio buffer into a raw bit stream, one bit per symbol. Three
// interchangeable variants share one contract (the [Demodulator]
// interface) so the frame synchronizer and payload extractor never need to
// know which waveform produced the bits they're reading.
//
// Variants never fail: a noisy or silent window simply yields a
// low-quality bit stream, and frame synchronization downstream is the sole
// arbiter of "signal present".
package waveform

import "math"

// BitZero, BitOne, and BitIndeterminate are the three symbols a
// demodulator may emit per symbol slot. An indeterminate bit counts as 0
// during majority-vote payload extraction.
const (
	BitZero          byte = 0
	BitOne           byte = 1
	BitIndeterminate byte = 2
)

// Variant names the waveform family, used for logging and configuration.
type Variant int

const (
	VariantDSSSCovert Variant = iota
	VariantDSSSBurst
	VariantDSSSHeavyDuty
	VariantFSK
	VariantChirp
)

// Demodulator converts one AudioWindow into a RawBitStream. Implementations
// must be safe to reuse across windows without carrying state between
// calls (filter state, correlator indices, etc. are local to Demodulate).
type Demodulator interface {
	// SamplesPerSymbol is the number of audio samples one symbol occupies.
	SamplesPerSymbol() int
	// SyncPattern is the known sync word this variant's synchronizer
	// searches for, as a slice of 0/1 bytes, MSB first.
	SyncPattern() []byte
	// SyncTolerance is the maximum Hamming distance (or, for Chirp, the
	// sample tolerance around an expected peak) accepted as a sync match.
	SyncTolerance() int
	// Demodulate converts window into a RawBitStream.
	Demodulate(window []float32) []byte
}

// bitsFromPattern converts a literal "0101..." string into a RawBitStream.
func bitsFromPattern(pattern string) []byte {
	bits := make([]byte, len(pattern))
	for i, c := range pattern {
		if c == '1' {
			bits[i] = BitOne
		}
	}
	return bits
}

func cosSample(freqHz float64, n int, sampleRate int) float64 {
	return math.Cos(2 * math.Pi * freqHz * float64(n) / float64(sampleRate))
}

// CosSample exposes the carrier waveform sample formula for reference
// encoders that need to synthesize audio the decoders in this package will
// demodulate correctly.
func CosSample(freqHz float64, n int, sampleRate int) float64 {
	return cosSample(freqHz, n, sampleRate)
}
