// Package messaging shapes the authenticated plaintext recovered by the
// crypto package into a typed Message Record: it unwraps the
// type ‖ signature ‖ json_body plaintext packet and assigns the priority,
// message type, optional filename, and verification flag a consumer
// expects.
//
// Every error in the packet layout (plaintext too short, malformed JSON)
// recovers locally into a Message Record with Status == StatusError; the
// package never panics on attacker-controlled input.
package messaging
