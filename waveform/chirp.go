package waveform

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	chirpLowHz         = 14000.0
	chirpHighHz        = 17000.0
	chirpSymbolMillis  = 50.0
	chirpCorrStep      = 20
	chirpPeakThreshold = 50.0
	chirpPreambleLen   = 4 // Up, Up, Down, Down
)

// ChirpDemodulator implements Demodulator for the linear-chirp ("Dolphin")
// waveform. Unlike the bit-pattern synchronizers used by the other
// variants, chirp synchronization and symbol extraction both run in the
// correlator domain: see FindPreamble, DecodeSymbol and DecodeBits, which
// the decoder package's chirp path calls directly instead of going through
// the framesync package.
type ChirpDemodulator struct {
	sampleRate   int
	sps          int
	upTemplate   []float64
	downTemplate []float64
}

// NewChirpDemodulator precomputes and caches the up/down chirp templates
// once; they are reused, never recomputed, across decode attempts.
func NewChirpDemodulator(sampleRate int) *ChirpDemodulator {
	sps := int(math.Round(float64(sampleRate) * chirpSymbolMillis / 1000))
	return &ChirpDemodulator{
		sampleRate:   sampleRate,
		sps:          sps,
		upTemplate:   chirpTemplate(chirpLowHz, chirpHighHz, sps, sampleRate),
		downTemplate: chirpTemplate(chirpHighHz, chirpLowHz, sps, sampleRate),
	}
}

func chirpTemplate(f0, f1 float64, sps, sampleRate int) []float64 {
	t := make([]float64, sps)
	durationSec := float64(sps) / float64(sampleRate)
	for n := 0; n < sps; n++ {
		ts := float64(n) / float64(sampleRate)
		phase := 2 * math.Pi * (f0*ts + (f1-f0)*ts*ts/(2*durationSec))
		t[n] = math.Cos(phase)
	}
	return t
}

func (c *ChirpDemodulator) SamplesPerSymbol() int { return c.sps }

// UpTemplate and DownTemplate expose the cached chirp templates so a
// reference encoder can synthesize symbols the correlator will recognize
// without recomputing the phase formula.
func (c *ChirpDemodulator) UpTemplate() []float64   { return c.upTemplate }
func (c *ChirpDemodulator) DownTemplate() []float64 { return c.downTemplate }

// SyncPattern is unused for Chirp: synchronization is peak-based, not a bit
// pattern. It returns nil; callers must special-case VariantChirp.
func (c *ChirpDemodulator) SyncPattern() []byte { return nil }

// SyncTolerance is the sample tolerance (±) around an expected symbol
// boundary, used both for preamble peak spacing and per-symbol re-centering.
func (c *ChirpDemodulator) SyncTolerance() int { return 400 }

// Demodulate provides best-effort Demodulator-interface compliance by
// locating the preamble and decoding symbols to the end of window with
// per-symbol re-centering. Callers that need the exact sync offset (to
// align the payload extractor) should call FindPreamble and DecodeSymbol
// directly instead, since Demodulate discards the start offset.
func (c *ChirpDemodulator) Demodulate(window []float32) []byte {
	samples := ToFloat64(window)
	start, ok := c.FindPreamble(samples)
	if !ok {
		return nil
	}

	var bits []byte
	pos := start
	for {
		bit, peakPos, ok := c.DecodeSymbol(samples, pos)
		if !ok {
			break
		}
		bits = append(bits, bit)
		pos = peakPos + c.sps
	}
	return bits
}

// correlate returns the correlation of the up and down templates against
// samples starting at pos. It is the caller's responsibility to ensure
// pos+sps <= len(samples).
func (c *ChirpDemodulator) correlate(samples []float64, pos int) (up, down float64) {
	segment := samples[pos : pos+c.sps]
	return floats.Dot(segment, c.upTemplate), floats.Dot(segment, c.downTemplate)
}

type chirpPeak struct {
	pos int
	up  bool // true: up-chirp peak, false: down-chirp peak
}

// FindPreamble scans samples in chirpCorrStep increments for the fixed
// Up, Up, Down, Down preamble, tolerating ±SyncTolerance() samples of
// spacing error between consecutive peaks. It returns the sample index of
// the symbol immediately following the fourth preamble peak.
func (c *ChirpDemodulator) FindPreamble(samples []float64) (int, bool) {
	var peaks []chirpPeak
	lastUp, lastDown := 0.0, 0.0

	for pos := 0; pos+c.sps <= len(samples); pos += chirpCorrStep {
		up, down := c.correlate(samples, pos)
		// abs() rather than the raw signed correlation: a negated
		// (carrier-inverted) input flips the sign of both correlations
		// without changing which template matches in magnitude, so this
		// keeps preamble detection invariant to a global polarity flip.
		absUp, absDown := math.Abs(up), math.Abs(down)

		if absUp > chirpPeakThreshold && absUp >= lastUp {
			peaks = append(peaks, chirpPeak{pos: pos, up: true})
		}
		if absDown > chirpPeakThreshold && absDown >= lastDown {
			peaks = append(peaks, chirpPeak{pos: pos, up: false})
		}
		lastUp, lastDown = absUp, absDown

		if seq, ok := matchPreambleSuffix(peaks, c.sps, c.SyncTolerance()); ok {
			return seq + c.sps, true
		}
	}
	return 0, false
}

// matchPreambleSuffix checks whether the last four recorded peaks form
// Up, Up, Down, Down with inter-peak spacing within tolerance of sps, and
// returns the position of the fourth peak.
func matchPreambleSuffix(peaks []chirpPeak, sps, tolerance int) (int, bool) {
	if len(peaks) < chirpPreambleLen {
		return 0, false
	}
	last := peaks[len(peaks)-chirpPreambleLen:]
	wantUp := []bool{true, true, false, false}
	for i, p := range last {
		if p.up != wantUp[i] {
			return 0, false
		}
		if i > 0 {
			gap := p.pos - last[i-1].pos
			if abs(gap-sps) > tolerance {
				return 0, false
			}
		}
	}
	return last[len(last)-1].pos, true
}

// DecodeSymbol searches a ±SyncTolerance() window around expectedPos for
// the stronger of the two template correlations, decoding one bit (1 for
// up, 0 for down) and returning the sample index of the chosen peak so the
// caller can re-center the cursor for clock-drift tolerance.
func (c *ChirpDemodulator) DecodeSymbol(samples []float64, expectedPos int) (bit byte, peakPos int, ok bool) {
	tol := c.SyncTolerance()
	lo := expectedPos - tol
	if lo < 0 {
		lo = 0
	}
	hi := expectedPos + tol

	bestStrength := -1.0
	found := false
	var bestPos int
	var bestBit byte

	for pos := lo; pos <= hi && pos+c.sps <= len(samples); pos += chirpCorrStep {
		up, down := c.correlate(samples, pos)
		absUp, absDown := math.Abs(up), math.Abs(down)
		if absUp > bestStrength {
			bestStrength, bestPos, bestBit, found = absUp, pos, BitOne, true
		}
		if absDown > bestStrength {
			bestStrength, bestPos, bestBit, found = absDown, pos, BitZero, true
		}
	}

	if !found || bestStrength < chirpPeakThreshold {
		return 0, 0, false
	}
	return bestBit, bestPos, true
}

// DecodeBits decodes exactly n symbols starting at startPos, re-centering
// per symbol via DecodeSymbol, and returns the decoded bits plus the
// sample position where decoding stopped (one samples-per-symbol past the
// last chosen peak, ready for the next call to continue from). ok is false
// if any symbol in the run could not be found.
func (c *ChirpDemodulator) DecodeBits(samples []float64, startPos, n int) ([]byte, int, bool) {
	bits := make([]byte, 0, n)
	pos := startPos
	for i := 0; i < n; i++ {
		bit, peakPos, ok := c.DecodeSymbol(samples, pos)
		if !ok {
			return nil, 0, false
		}
		bits = append(bits, bit)
		pos = peakPos + c.sps
	}
	return bits, pos, true
}

func ToFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
