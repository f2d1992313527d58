package crypto

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	var seed, pub [32]byte
	copy(seed[:], priv.Seed())
	copy(pub[:], priv.Public().(ed25519.PublicKey))

	message := []byte("sign this message")
	sig, err := Sign(message, seed)
	require.NoError(t, err)

	ok, err := Verify(message, sig, pub)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_RejectsTamperedMessage(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	var seed, pub [32]byte
	copy(seed[:], priv.Seed())
	copy(pub[:], priv.Public().(ed25519.PublicKey))

	sig, err := Sign([]byte("original"), seed)
	require.NoError(t, err)

	ok, err := Verify([]byte("tampered"), sig, pub)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSign_RejectsBodyShorterThanEmptyJSON(t *testing.T) {
	var seed [32]byte
	_, err := Sign(nil, seed)
	assert.Error(t, err)

	_, err = Sign([]byte("{"), seed)
	assert.Error(t, err)
}
