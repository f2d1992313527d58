package messaging

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/opd-ai/acoustipipe/crypto"
)

// MinPlaintextLength is the smallest valid authenticated plaintext: one
// type byte, a 64-byte signature slot, and an empty JSON object "{}".
const MinPlaintextLength = 1 + crypto.SignatureSize + 2

// ErrMalformedPlaintext means the plaintext was shorter than
// MinPlaintextLength or its JSON body failed to parse.
var ErrMalformedPlaintext = errors.New("messaging: malformed plaintext")

// packetBody is the recognized JSON key set: p(riority), m(essage text),
// f(ilename), d(ata, base64, decoded by an external collaborator).
type packetBody struct {
	Priority string `json:"p"`
	Message  string `json:"m"`
	Filename string `json:"f"`
	Data     string `json:"d"`
}

// Unwrap parses an authenticated plaintext packet (type ‖ signature ‖ json)
// into a Record. When publicKey is non-nil and the signature slot is
// non-zero, the signature is verified over the JSON body and Record.Verified
// reflects the result; an absent key or all-zero slot leaves Verified false.
func Unwrap(plaintext []byte, publicKey *[32]byte) (Record, error) {
	if len(plaintext) < MinPlaintextLength {
		return errorRecord("Invalid packet"), ErrMalformedPlaintext
	}

	typeByte := plaintext[0]
	sigSlot := plaintext[1 : 1+crypto.SignatureSize]
	jsonBody := plaintext[1+crypto.SignatureSize:]

	var body packetBody
	if err := json.Unmarshal(jsonBody, &body); err != nil {
		return errorRecord("JSON parse failed"), ErrMalformedPlaintext
	}

	msgType := messageTypeFromByte(typeByte)
	verified := verifySignature(sigSlot, jsonBody, publicKey)

	rec := Record{
		Priority: priorityFromString(body.Priority),
		Type:     msgType,
		Verified: verified,
		Status:   StatusOK,
	}

	switch msgType {
	case MessageTypeFile, MessageTypeImage:
		name := body.Filename
		if name == "" {
			name = "unknown"
		}
		rec.Content = "File: " + name
		rec.Filename = body.Filename
	default:
		rec.Content = body.Message
	}

	return rec, nil
}

func priorityFromString(s string) Priority {
	switch Priority(s) {
	case PriorityRoutine, PriorityPriority, PriorityImmediate, PriorityFlash:
		return Priority(s)
	default:
		return PriorityRoutine
	}
}

// verifySignature reports whether sigSlot is a valid Ed25519 signature over
// message given publicKey. An all-zero slot is unsigned; a nil publicKey
// means verification was never attempted — both yield false, never an
// error, since signature verification is an optional, deferrable feature.
func verifySignature(sigSlot, message []byte, publicKey *[32]byte) bool {
	if publicKey == nil || isAllZero(sigSlot) {
		return false
	}

	var sig crypto.Signature
	copy(sig[:], sigSlot)

	ok, err := crypto.Verify(message, sig, *publicKey)
	return err == nil && ok
}

func isAllZero(b []byte) bool {
	return bytes.Equal(b, make([]byte, len(b)))
}
