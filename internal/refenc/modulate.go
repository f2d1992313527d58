package refenc

import (
	"github.com/opd-ai/acoustipipe/config"
	"github.com/opd-ai/acoustipipe/waveform"
)

// modulateDSSS synthesizes samples for the BPSK/DSSS family by weighting
// the carrier with the demodulator's own correlation template, so
// Demodulate's dot-product sees exactly the spreading sequence it expects.
func modulateDSSS(opts Options, bits []byte) []float32 {
	mode := dsssModeFor(opts.Variant)
	carrier := opts.CarrierHz
	if carrier == 0 {
		carrier = waveform.DefaultCarrierHz
	}
	dem := waveform.NewDSSSDemodulator(mode, opts.SampleRate, carrier)

	fullBits := append(append([]byte{}, dem.SyncPattern()...), bits...)
	sps := dem.SamplesPerSymbol()
	template := dem.Template()
	actualCarrier := dem.CarrierHz()

	samples := make([]float32, 0, len(fullBits)*sps)
	for _, bit := range fullBits {
		polarity := -1.0
		if bit == waveform.BitOne {
			polarity = 1.0
		}
		for n := 0; n < sps; n++ {
			weight := 1.0
			if template != nil {
				weight = template[n]
			}
			idx := len(samples)
			val := polarity * weight * waveform.CosSample(actualCarrier, idx, opts.SampleRate)
			samples = append(samples, float32(val))
		}
	}
	return samples
}

func dsssModeFor(v config.Variant) waveform.DSSSMode {
	switch v {
	case config.VariantDSSSBurst:
		return waveform.ModeBurst
	case config.VariantDSSSHeavyDuty:
		return waveform.ModeHeavyDuty
	default:
		return waveform.ModeCovert
	}
}

// modulateFSK synthesizes one continuous mark/space tone block per bit,
// each SamplesPerSymbol() long, matching the non-overlapping symbol blocks
// FSKDemodulator.Demodulate evaluates.
func modulateFSK(opts Options, bits []byte) []float32 {
	dem := waveform.NewFSKDemodulator(opts.SampleRate)
	fullBits := append(append([]byte{}, dem.SyncPattern()...), bits...)
	sps := dem.SamplesPerSymbol()

	samples := make([]float32, 0, len(fullBits)*sps)
	for _, bit := range fullBits {
		freq := dem.SpaceHz()
		if bit == waveform.BitOne {
			freq = dem.MarkHz()
		}
		for n := 0; n < sps; n++ {
			idx := len(samples)
			samples = append(samples, float32(waveform.CosSample(freq, idx, opts.SampleRate)))
		}
	}
	return samples
}

// modulateChirp synthesizes the fixed Up,Up,Down,Down preamble followed by
// one up/down chirp template per payload bit, the same templates
// ChirpDemodulator correlates against.
func modulateChirp(opts Options, bits []byte) []float32 {
	dem := waveform.NewChirpDemodulator(opts.SampleRate)
	up, down := dem.UpTemplate(), dem.DownTemplate()

	preamble := []byte{waveform.BitOne, waveform.BitOne, waveform.BitZero, waveform.BitZero}
	fullBits := append(append([]byte{}, preamble...), bits...)

	samples := make([]float32, 0, len(fullBits)*dem.SamplesPerSymbol())
	for _, bit := range fullBits {
		tmpl := down
		if bit == waveform.BitOne {
			tmpl = up
		}
		for _, v := range tmpl {
			samples = append(samples, float32(v))
		}
	}
	return samples
}
