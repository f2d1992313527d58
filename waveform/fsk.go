package waveform

import "math"

const (
	fskMarkHz          = 14000.0
	fskSpaceHz         = 14200.0
	fskSymbolMillis    = 50.0
	fskSyncWordPattern = "1010101011001100" // 0xAACC
)

// FSKDemodulator implements Demodulator for the 2-FSK ("Screecher")
// waveform. It evaluates one Goertzel tone comparison per non-overlapping
// symbol block, producing one bit per SamplesPerSymbol() samples.
type FSKDemodulator struct {
	sampleRate int
	sps        int // samples per symbol
}

// NewFSKDemodulator builds a 2-FSK demodulator for the given sample rate.
func NewFSKDemodulator(sampleRate int) *FSKDemodulator {
	sps := int(math.Round(float64(sampleRate) * fskSymbolMillis / 1000))
	return &FSKDemodulator{sampleRate: sampleRate, sps: sps}
}

func (f *FSKDemodulator) SamplesPerSymbol() int { return f.sps }

func (f *FSKDemodulator) SyncPattern() []byte { return bitsFromPattern(fskSyncWordPattern) }

func (f *FSKDemodulator) SyncTolerance() int { return 1 }

// MarkHz and SpaceHz return the two tone frequencies this demodulator
// listens for; a reference encoder uses the same two frequencies.
func (f *FSKDemodulator) MarkHz() float64  { return fskMarkHz }
func (f *FSKDemodulator) SpaceHz() float64 { return fskSpaceHz }

// Demodulate evaluates one Goertzel tone comparison per symbol block: 1 if
// the mark tone carries over 60% of the local tonal power, 0 if the space
// tone does, else BitIndeterminate.
func (f *FSKDemodulator) Demodulate(window []float32) []byte {
	nSymbols := len(window) / f.sps
	bits := make([]byte, nSymbols)

	for i := 0; i < nSymbols; i++ {
		segment := window[i*f.sps : (i+1)*f.sps]

		markPower := goertzelPower(segment, fskMarkHz, f.sampleRate)
		spacePower := goertzelPower(segment, fskSpaceHz, f.sampleRate)
		total := markPower + spacePower

		switch {
		case total <= 0:
			bits[i] = BitIndeterminate
		case markPower/total > 0.6:
			bits[i] = BitOne
		case spacePower/total > 0.6:
			bits[i] = BitZero
		default:
			bits[i] = BitIndeterminate
		}
	}
	return bits
}

// goertzelPower computes the Goertzel magnitude-squared of segment at
// freqHz, cheaper than a full DFT for a single bin.
func goertzelPower(segment []float32, freqHz float64, sampleRate int) float64 {
	n := len(segment)
	k := math.Round(float64(n) * freqHz / float64(sampleRate))
	omega := 2 * math.Pi * k / float64(n)
	coeff := 2 * math.Cos(omega)

	var s0, s1, s2 float64
	for _, x := range segment {
		s0 = float64(x) + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	return s1*s1 + s2*s2 - coeff*s1*s2
}
