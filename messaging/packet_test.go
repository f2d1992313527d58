package messaging

import (
	"crypto/ed25519"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/acoustipipe/crypto"
)

func buildPlaintext(t *testing.T, typeByte byte, body packetBody, sig *crypto.Signature) []byte {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	plaintext := make([]byte, 0, 1+crypto.SignatureSize+len(jsonBody))
	plaintext = append(plaintext, typeByte)
	if sig != nil {
		plaintext = append(plaintext, sig[:]...)
	} else {
		plaintext = append(plaintext, make([]byte, crypto.SignatureSize)...)
	}
	plaintext = append(plaintext, jsonBody...)
	return plaintext
}

func TestUnwrap_TextMessageUnsigned(t *testing.T) {
	plaintext := buildPlaintext(t, 0x01, packetBody{Priority: "FLASH", Message: "contact report"}, nil)

	rec, err := Unwrap(plaintext, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, rec.Status)
	assert.Equal(t, PriorityFlash, rec.Priority)
	assert.Equal(t, "contact report", rec.Content)
	assert.False(t, rec.Verified)
}

func TestUnwrap_FileMessageUsesFilename(t *testing.T) {
	plaintext := buildPlaintext(t, 0x03, packetBody{Priority: "ROUTINE", Filename: "photo.jpg"}, nil)

	rec, err := Unwrap(plaintext, nil)
	require.NoError(t, err)
	assert.Equal(t, MessageTypeFile, rec.Type)
	assert.Equal(t, "File: photo.jpg", rec.Content)
	assert.Equal(t, "photo.jpg", rec.Filename)
}

func TestUnwrap_UnknownPriorityDefaultsToRoutine(t *testing.T) {
	plaintext := buildPlaintext(t, 0x01, packetBody{Priority: "BOGUS", Message: "x"}, nil)

	rec, err := Unwrap(plaintext, nil)
	require.NoError(t, err)
	assert.Equal(t, PriorityRoutine, rec.Priority)
}

func TestUnwrap_TooShortIsMalformed(t *testing.T) {
	_, err := Unwrap(make([]byte, 4), nil)
	assert.ErrorIs(t, err, ErrMalformedPlaintext)
}

func TestUnwrap_InvalidJSONIsMalformed(t *testing.T) {
	plaintext := make([]byte, 0, 1+crypto.SignatureSize+2)
	plaintext = append(plaintext, 0x01)
	plaintext = append(plaintext, make([]byte, crypto.SignatureSize)...)
	plaintext = append(plaintext, []byte("not-json")...)

	_, err := Unwrap(plaintext, nil)
	assert.ErrorIs(t, err, ErrMalformedPlaintext)
}

func TestUnwrap_ValidSignatureSetsVerified(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	var seed, pub [32]byte
	copy(seed[:], priv.Seed())
	copy(pub[:], priv.Public().(ed25519.PublicKey))

	body := packetBody{Priority: "IMMEDIATE", Message: "signed report"}
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	sig, err := crypto.Sign(jsonBody, seed)
	require.NoError(t, err)

	plaintext := buildPlaintext(t, 0x01, body, &sig)

	rec, err := Unwrap(plaintext, &pub)
	require.NoError(t, err)
	assert.True(t, rec.Verified)
}

func TestUnwrap_AllZeroSignatureIsUnverifiedNotError(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var pub [32]byte
	copy(pub[:], priv.Public().(ed25519.PublicKey))

	plaintext := buildPlaintext(t, 0x01, packetBody{Priority: "ROUTINE", Message: "hi"}, nil)

	rec, err := Unwrap(plaintext, &pub)
	require.NoError(t, err)
	assert.False(t, rec.Verified)
}
