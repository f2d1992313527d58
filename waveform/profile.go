package waveform

// DefaultCarrierHz is the DSSS carrier used when auto-scan is disabled.
const DefaultCarrierHz = 12000.0

// CarrierPoolHz is the eleven-frequency DSSS auto-scan order, 8-18 kHz.
var CarrierPoolHz = []float64{8000, 9000, 10000, 11000, 12000, 13000, 14000, 15000, 16000, 17000, 18000}

// NewDemodulator constructs the Demodulator for variant at the given
// sample rate and (DSSS-only) carrier frequency. Construction never fails:
// unknown variants fall back to the covert DSSS default.
func NewDemodulator(variant Variant, sampleRate int, carrierHz float64) Demodulator {
	switch variant {
	case VariantDSSSBurst:
		return NewDSSSDemodulator(ModeBurst, sampleRate, carrierHz)
	case VariantDSSSHeavyDuty:
		return NewDSSSDemodulator(ModeHeavyDuty, sampleRate, carrierHz)
	case VariantFSK:
		return NewFSKDemodulator(sampleRate)
	case VariantChirp:
		return NewChirpDemodulator(sampleRate)
	default:
		return NewDSSSDemodulator(ModeCovert, sampleRate, carrierHz)
	}
}
