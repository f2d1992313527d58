package crypto

import (
	"crypto/ed25519"
	"errors"
)

// SignatureSize is the width of the signature slot embedded in every
// plaintext packet, whether or not the sender actually signed it.
const SignatureSize = ed25519.SignatureSize

// Signature is the 64-byte value carried in a plaintext packet's signature
// slot. An all-zero Signature means the sender did not sign; the packet
// unwrapper checks for that before ever calling Verify.
type Signature [SignatureSize]byte

// minSignableBody is the shortest possible packet JSON body ("{}"). Sign
// and Verify both operate on the packet body specifically, not on an
// arbitrary byte slice, so they reject anything shorter as a malformed
// packet rather than asking ed25519 to sign or check an empty message.
const minSignableBody = 2

// Sign signs a plaintext packet's JSON body with an Ed25519 seed,
// expanding it to a full private key first. Only the reference encoder
// used in tests calls this; the decoder itself never signs, only
// verifies.
func Sign(jsonBody []byte, privateKey [32]byte) (Signature, error) {
	if len(jsonBody) < minSignableBody {
		return Signature{}, errors.New("crypto: packet body too short to sign")
	}

	edPrivateKey := ed25519.NewKeyFromSeed(privateKey[:])
	raw := ed25519.Sign(edPrivateKey, jsonBody)

	var sig Signature
	copy(sig[:], raw)
	return sig, nil
}

// Verify reports whether signature is a valid Ed25519 signature over a
// packet's JSON body under publicKey. Called only once the packet
// unwrapper has already ruled out an all-zero signature slot.
func Verify(jsonBody []byte, signature Signature, publicKey [32]byte) (bool, error) {
	if len(jsonBody) < minSignableBody {
		return false, errors.New("crypto: packet body too short to verify")
	}

	edPublicKey := ed25519.PublicKey(publicKey[:])
	return ed25519.Verify(edPublicKey, jsonBody, signature[:]), nil
}
