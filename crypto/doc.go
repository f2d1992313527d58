// Package crypto implements the cryptographic unseal step of the acoustic
// link layer: authenticated symmetric decryption of a sealed blob recovered
// from the payload extractor, plus the optional Ed25519 signature slot
// reserved by the packet format.
//
// # Sealed blob layout
//
// A sealed blob is nonce ‖ ciphertext ‖ auth_tag, optionally followed by a
// trailing Reed-Solomon parity block that FECStrip removes before Unseal
// is called:
//
//	blob := crypto.FECStrip(rawPayloadBytes)
//	plaintext, err := crypto.Unseal(blob, key)
//
// Two AEAD ciphers are recognized, tried in order: ChaCha20-Poly1305 (12-byte
// nonce, primary/sender format) and XSalsa20-Poly1305/secretbox (24-byte
// nonce, legacy fallback). Unseal never returns partial plaintext on an
// authentication failure.
//
// # Keys
//
// A single 32-byte preshared key is assumed; DefaultKey reproduces the
// well-known insecure test key and exists only for reference-compatible
// decoding during development. Real deployments must call SetKey.
//
// # Signatures
//
// The packet format reserves a 64-byte Ed25519 signature slot. Verification
// is optional and gated behind a configured 32-byte public key; see [Verify].
package crypto
