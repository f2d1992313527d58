// Package decoder orchestrates the full receive pipeline as the
// Idle → Capturing → Decoding → Emitting state machine: it accumulates
// audio chunks into a fixed-duration window, demodulates, synchronizes,
// extracts, unseals, and assembles a Message Record, delivering at most
// one per decode cycle.
package decoder
