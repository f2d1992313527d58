// Package refenc is the test-only reference encoder: it modulates a plain
// message through the crypto envelope and any of the five waveform variants,
// producing an AudioWindow the real decoder package can round-trip. It
// exists so the decoder's tests exercise the full receive chain against
// known-good signals instead of hand-crafted bit arrays.
//
// refenc is never imported outside _test.go files.
package refenc
