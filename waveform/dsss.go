package waveform

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// dsssSyncWordPattern is the 32-bit sync word shared by all DSSS/BPSK variants:
// 00011010 11001111 11111111 00011101.
const dsssSyncWordPattern = "00011010110011111111111100011101"

// barker31 is the 31-element spreading chip sequence used by the covert and
// heavy-duty DSSS variants.
var barker31 = []float64{
	1, 1, 1, 1, 1, -1, -1, 1, 1, -1, 1, -1, -1, 1, 1, 1,
	1, 1, -1, -1, 1, 1, -1, 1, -1, 1, -1, -1, -1, -1, -1,
}

// DSSSMode selects among the three BPSK-family sub-variants, which differ
// only in spreading, chip rate, and pre-filtering.
type DSSSMode int

const (
	// ModeCovert is the default: Barker-31 spreading, 4 samples/chip.
	ModeCovert DSSSMode = iota
	// ModeBurst is unspread BPSK, 8 samples/symbol.
	ModeBurst
	// ModeHeavyDuty is Barker-31 spreading at 20 samples/chip with a
	// fixed 14500 Hz carrier and a band-pass pre-filter.
	ModeHeavyDuty
)

// DSSSDemodulator implements Demodulator for the DSSS/BPSK waveform family.
type DSSSDemodulator struct {
	mode       DSSSMode
	sampleRate int
	carrierHz  float64
	template   []float64 // nil for ModeBurst (unspread)
	sps        int
}

// NewDSSSDemodulator builds a demodulator for the given sub-mode. carrierHz
// is ignored (fixed at 14500 Hz) for ModeHeavyDuty.
func NewDSSSDemodulator(mode DSSSMode, sampleRate int, carrierHz float64) *DSSSDemodulator {
	d := &DSSSDemodulator{mode: mode, sampleRate: sampleRate, carrierHz: carrierHz}

	switch mode {
	case ModeBurst:
		d.sps = 8
		d.template = nil
	case ModeHeavyDuty:
		d.carrierHz = 14500
		d.template = spreadTemplate(barker31, 20)
		d.sps = len(d.template)
	default: // ModeCovert
		d.template = spreadTemplate(barker31, 4)
		d.sps = len(d.template)
	}
	return d
}

// spreadTemplate replicates each chip samplesPerChip times.
func spreadTemplate(chips []float64, samplesPerChip int) []float64 {
	out := make([]float64, 0, len(chips)*samplesPerChip)
	for _, c := range chips {
		for i := 0; i < samplesPerChip; i++ {
			out = append(out, c)
		}
	}
	return out
}

func (d *DSSSDemodulator) SamplesPerSymbol() int { return d.sps }

// CarrierHz returns the carrier frequency actually in effect (fixed at
// 14500 Hz for ModeHeavyDuty regardless of what was passed to the
// constructor).
func (d *DSSSDemodulator) CarrierHz() float64 { return d.carrierHz }

// Template returns the chip-spread correlation template, or nil for
// ModeBurst. A reference encoder modulating this waveform weights its
// carrier by the same template so the decoder's correlation sees the
// expected spreading sequence.
func (d *DSSSDemodulator) Template() []float64 { return d.template }

func (d *DSSSDemodulator) SyncPattern() []byte { return bitsFromPattern(dsssSyncWordPattern) }

func (d *DSSSDemodulator) SyncTolerance() int {
	switch d.mode {
	case ModeHeavyDuty:
		return 2
	default:
		return 0
	}
}

// Demodulate multiplies the window by the carrier and, for spread modes,
// correlates each symbol slot against the replicated chip template;
// ModeBurst instead integrates the raw baseband over the symbol.
func (d *DSSSDemodulator) Demodulate(window []float32) []byte {
	samples := window
	if d.mode == ModeHeavyDuty {
		samples = applyBandpass(window, d.carrierHz, 2000, d.sampleRate)
	}

	nSymbols := len(samples) / d.sps
	bits := make([]byte, nSymbols)

	baseband := make([]float64, d.sps)
	for s := 0; s < nSymbols; s++ {
		base := s * d.sps
		for n := 0; n < d.sps; n++ {
			baseband[n] = float64(samples[base+n]) * cosSample(d.carrierHz, base+n, d.sampleRate)
		}

		var energy float64
		if d.template != nil {
			energy = floats.Dot(baseband, d.template)
		} else {
			energy = floats.Sum(baseband)
		}

		if energy > 0 {
			bits[s] = BitOne
		} else {
			bits[s] = BitZero
		}
	}
	return bits
}

// biquadCoeffs are a standard direct-form-I transposed band-pass biquad's
// coefficients, normalized by a0.
type biquadCoeffs struct {
	b0, b1, b2 float64
	a1, a2     float64
}

func bandpassCoeffs(centerHz, bandwidthHz float64, sampleRate int) biquadCoeffs {
	q := centerHz / bandwidthHz
	w0 := 2 * math.Pi * centerHz / float64(sampleRate)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha
	return biquadCoeffs{
		b0: alpha / a0,
		b1: 0,
		b2: -alpha / a0,
		a1: -2 * math.Cos(w0) / a0,
		a2: (1 - alpha) / a0,
	}
}

// applyBandpass runs a freshly-zeroed biquad band-pass filter over window.
// Filter state is never persisted across calls: each decode is independent.
func applyBandpass(window []float32, centerHz, bandwidthHz float64, sampleRate int) []float32 {
	c := bandpassCoeffs(centerHz, bandwidthHz, sampleRate)
	var x1, x2, y1, y2 float64

	out := make([]float32, len(window))
	for i, xf := range window {
		x := float64(xf)
		y := c.b0*x + c.b1*x1 + c.b2*x2 - c.a1*y1 - c.a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		out[i] = float32(y)
	}
	return out
}
