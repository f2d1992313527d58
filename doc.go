// Package acoustipipe decodes covert acoustic data-over-audio messages: it
// turns a live PCM stream into structured Message Records by demodulating
// one of five waveform families, synchronizing on a frame's sync word,
// extracting a triple-redundant length-prefixed payload, stripping any
// Reed-Solomon parity trailer, authenticating and decrypting the sealed
// blob, and unwrapping the resulting packet.
//
// # Getting Started
//
// Build a decode pipeline from a config and feed it PCM chunks as they
// arrive from an audio capture callback:
//
//	cfg := config.NewDefault()
//	p := decoder.NewPipeline(cfg)
//	p.StartListening()
//
//	for chunk := range audioChunks {
//	    if rec, ok := p.Tick(chunk); ok {
//	        fmt.Printf("[%s] %s: %s\n", rec.Priority, rec.Type, rec.Content)
//	    }
//	}
//
// # Package Layout
//
// This module has no root-level API surface; it is organized as one
// package per pipeline stage, each independently testable against the
// [waveform.Demodulator] and [messaging.Record] contracts that connect
// them:
//
//   - [config]: runtime configuration (sample rate, waveform variant,
//     carrier auto-scan, preshared key)
//   - [waveform]: the physical layer — DSSS/BPSK, 2-FSK, and linear-chirp
//     demodulators, all implementing one [waveform.Demodulator] interface
//   - [framesync]: sync-word search over a raw bit stream, tolerant of a
//     small number of bit errors and of carrier inversion
//   - [payload]: the 16-bit length-prefixed, triple-redundant payload
//     extractor
//   - [crypto]: AEAD unsealing (ChaCha20-Poly1305 with an
//     XSalsa20-Poly1305 fallback), Reed-Solomon parity verification, and
//     optional Ed25519 signature verification
//   - [messaging]: plaintext packet unwrapping into a [messaging.Record]
//   - [decoder]: the Idle → Capturing → Decoding → Emitting state machine
//     that wires the above stages into one pipeline
//
// A CLI front end lives in cmd/acoustidecode.
package acoustipipe
