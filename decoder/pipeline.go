package decoder

import (
	"sync"

	"github.com/google/uuid"

	"github.com/opd-ai/acoustipipe/config"
	"github.com/opd-ai/acoustipipe/crypto"
	"github.com/opd-ai/acoustipipe/framesync"
	"github.com/opd-ai/acoustipipe/internal/metrics"
	"github.com/opd-ai/acoustipipe/internal/xlog"
	"github.com/opd-ai/acoustipipe/messaging"
	"github.com/opd-ai/acoustipipe/payload"
	"github.com/opd-ai/acoustipipe/waveform"
)

// Mode selects between the two DSSS sub-variants reachable from the
// `set_mode` control surface; heavy-duty and the FSK/Chirp families are
// configuration-time choices, not runtime-toggleable from here.
type Mode int

const (
	ModeCovert Mode = iota
	ModeBurst
)

// captureSeconds sizes the capture window generously enough for the
// slowest waveform (heavy-duty DSSS and FSK both run under 100 symbols per
// second once spreading/symbol duration is accounted for) to carry a
// modest-length message in one cycle.
const (
	captureSeconds = 180
	dsssSyncCap    = 2000
	fskSyncCap     = 5000
)

// Pipeline implements the Idle → Capturing → Decoding → Emitting state
// machine. It is safe for concurrent use: the audio callback calls Tick,
// and StartListening/StopListening/SetMode/SetAutoScan/SetKey may be
// called from any goroutine.
type Pipeline struct {
	mu sync.Mutex

	listening bool
	buffer    []float32

	sampleRate    int
	windowSamples int
	variant       config.Variant
	autoScan      bool
	key           crypto.Key
	publicKey     *[32]byte

	log *xlog.Logger
}

// NewPipeline builds a Pipeline from a DecoderConfig. The pipeline starts
// in Idle (not listening).
func NewPipeline(cfg *config.DecoderConfig) *Pipeline {
	return &Pipeline{
		sampleRate:    cfg.SampleRate,
		windowSamples: cfg.SampleRate * captureSeconds,
		variant:       cfg.Variant,
		autoScan:      cfg.AutoScan,
		key:           cfg.Key(),
		publicKey:     optionalPublicKey(cfg),
		log:           xlog.New("decoder", "Pipeline"),
	}
}

func optionalPublicKey(cfg *config.DecoderConfig) *[32]byte {
	if pk, ok := cfg.PublicKey(); ok {
		return &pk
	}
	return nil
}

// StartListening transitions out of Idle; idempotent.
func (p *Pipeline) StartListening() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listening = true
}

// StopListening is idempotent and clears any buffered samples immediately;
// an in-flight Decoding run (already handed its window) is allowed to
// finish, but Tick discards its result once it sees listening is false.
func (p *Pipeline) StopListening() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listening = false
	p.buffer = nil
}

// SetMode selects covert (DSSS spreading) or burst (plain BPSK).
func (p *Pipeline) SetMode(mode Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if mode == ModeBurst {
		p.variant = config.VariantDSSSBurst
	} else {
		p.variant = config.VariantDSSSCovert
	}
}

// SetAutoScan toggles carrier-pool scanning vs. the fixed default carrier.
func (p *Pipeline) SetAutoScan(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.autoScan = enabled
}

// SetKey overrides the preshared symmetric key, wiping the key it replaces.
func (p *Pipeline) SetKey(key crypto.Key) {
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.key
	p.key = key
	crypto.WipeKey(&old)
}

// Tick appends chunk to the capture buffer (a no-op if not listening) and,
// once roughly captureSeconds of audio has accumulated, runs one Decoding
// cycle and returns its Message Record. It returns (nil, false) while still
// Capturing, on NoSignal/MalformedFrame (silent per the error taxonomy), or
// if listening was turned off mid-cycle and the result was discarded.
func (p *Pipeline) Tick(chunk []float32) (*messaging.Record, bool) {
	p.mu.Lock()
	if !p.listening {
		p.mu.Unlock()
		return nil, false
	}

	p.buffer = append(p.buffer, chunk...)
	var window []float32
	if len(p.buffer) >= p.windowSamples {
		window = p.buffer
		p.buffer = nil // ownership transfer; decoder owns window from here
	}
	variant, autoScan, key, publicKey, sampleRate := p.variant, p.autoScan, p.key, p.publicKey, p.sampleRate
	p.mu.Unlock()

	if window == nil {
		return nil, false // still Capturing
	}

	cycleID := uuid.NewString()
	log := p.log.WithField("cycle_id", cycleID)
	log.Debug("decoding cycle starting")

	metrics.RecordCycle(variant.String())
	rec := decodeWindow(window, variant, autoScan, key, publicKey, sampleRate, log)

	p.mu.Lock()
	stillListening := p.listening
	p.mu.Unlock()
	if !stillListening {
		log.Debug("listening stopped mid-cycle; discarding result")
		return nil, false
	}

	if rec == nil {
		metrics.RecordOutcome(variant.String(), "none")
		return nil, false // Emitting is a no-op this cycle
	}
	if rec.Status == messaging.StatusError {
		metrics.RecordOutcome(variant.String(), "error")
	} else {
		metrics.RecordOutcome(variant.String(), "message")
	}
	return rec, true
}

// decodeWindow runs §4.1-§4.5 against one AudioWindow and returns the
// resulting Message Record, or nil for a silent NoSignal/MalformedFrame
// outcome. It never keeps a reference to window after returning.
func decodeWindow(window []float32, variant config.Variant, autoScan bool, key crypto.Key, publicKey *[32]byte, sampleRate int, log *xlog.Logger) *messaging.Record {
	if variant == config.VariantChirp {
		return decodeChirp(window, sampleRate, key, publicKey, log)
	}

	for _, carrierHz := range carrierCandidates(variant, autoScan) {
		dem := demodulatorFor(variant, sampleRate, carrierHz)
		syncCap := dsssSyncCap
		if variant == config.VariantFSK {
			syncCap = fskSyncCap
		}

		bits := dem.Demodulate(window)
		match, found := framesync.Find(bits, dem.SyncPattern(), dem.SyncTolerance(), syncCap)
		if !found {
			log.WithField("carrier_hz", carrierHz).Debug("no sync found")
			continue
		}

		if match.Inverted {
			bits = framesync.InvertFrom(bits, match.Offset)
		}

		frame, err := payload.Extract(bits, match.Offset)
		if err != nil {
			log.WithField("carrier_hz", carrierHz).Debug("sync found but frame malformed")
			return nil
		}

		return unsealAndAssemble(frame, key, publicKey, log)
	}
	return nil
}

func carrierCandidates(variant config.Variant, autoScan bool) []float64 {
	if variant == config.VariantDSSSHeavyDuty || variant == config.VariantFSK {
		return []float64{0} // fixed internal carrier; value unused
	}
	if autoScan {
		return waveform.CarrierPoolHz
	}
	return []float64{waveform.DefaultCarrierHz}
}

func demodulatorFor(variant config.Variant, sampleRate int, carrierHz float64) waveform.Demodulator {
	switch variant {
	case config.VariantDSSSBurst:
		return waveform.NewDemodulator(waveform.VariantDSSSBurst, sampleRate, carrierHz)
	case config.VariantDSSSHeavyDuty:
		return waveform.NewDemodulator(waveform.VariantDSSSHeavyDuty, sampleRate, carrierHz)
	case config.VariantFSK:
		return waveform.NewDemodulator(waveform.VariantFSK, sampleRate, carrierHz)
	default:
		return waveform.NewDemodulator(waveform.VariantDSSSCovert, sampleRate, carrierHz)
	}
}

// decodeChirp runs the correlator-domain sync and per-symbol re-centered
// extraction described for the linear-chirp variant.
func decodeChirp(window []float32, sampleRate int, key crypto.Key, publicKey *[32]byte, log *xlog.Logger) *messaging.Record {
	dem := waveform.NewChirpDemodulator(sampleRate)
	samples := waveform.ToFloat64(window)

	start, ok := dem.FindPreamble(samples)
	if !ok {
		log.Debug("no chirp preamble found")
		return nil
	}

	lengthBits, cursor, ok := dem.DecodeBits(samples, start, 16)
	if !ok {
		log.Debug("chirp stream truncated before length field")
		return nil
	}

	length, err := payload.ParseLength(lengthBits)
	if err != nil {
		log.Debug("chirp length field invalid")
		return nil
	}

	payloadBits, _, ok := dem.DecodeBits(samples, cursor, 3*8*length)
	if !ok {
		log.Debug("chirp stream truncated before full triple-redundant payload")
		return nil
	}

	allBits := append(lengthBits, payloadBits...)
	frame, err := payload.Extract(allBits, 0)
	if err != nil {
		log.Debug("chirp payload extraction failed")
		return nil
	}

	return unsealAndAssemble(frame, key, publicKey, log)
}

// unsealAndAssemble runs §4.4-§4.5 on an already-extracted PayloadFrame.
func unsealAndAssemble(frame []byte, key crypto.Key, publicKey *[32]byte, log *xlog.Logger) *messaging.Record {
	stripped := crypto.FECStrip(frame)

	plaintext, err := crypto.Unseal(stripped, key)
	if err != nil {
		log.WithError(err, classify(err), "Unseal").Warn("cryptographic unseal failed")
		switch err {
		case crypto.ErrCorruptData:
			rec := messaging.NewCorruptDataRecord()
			return &rec
		case crypto.ErrUnsupportedCipher:
			rec := messaging.NewUnsupportedCipherRecord()
			return &rec
		default:
			rec := messaging.NewAuthFailureRecord()
			return &rec
		}
	}
	defer crypto.ZeroBytes(plaintext)

	rec, err := messaging.Unwrap(plaintext, publicKey)
	if err != nil {
		log.WithError(err, "MalformedPlaintext", "Unwrap").Warn("packet unwrap failed")
		return &rec
	}

	log.WithField("msg_type", rec.Type).Debug("decode cycle produced a message")
	return &rec
}

func classify(err error) string {
	switch err {
	case crypto.ErrCorruptData:
		return "CorruptData"
	case crypto.ErrUnsupportedCipher:
		return "UnsupportedCipher"
	default:
		return "AuthFailure"
	}
}
