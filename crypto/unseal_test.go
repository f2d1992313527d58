package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/nacl/secretbox"
)

func sealChaCha(t *testing.T, plaintext []byte, key Key) []byte {
	t.Helper()
	aead, err := chacha20poly1305.New(key[:])
	require.NoError(t, err)
	nonce := make([]byte, chachaNonceSize)
	for i := range nonce {
		nonce[i] = byte(i)
	}
	return append(nonce, aead.Seal(nil, nonce, plaintext, nil)...)
}

func sealSecretboxBlob(t *testing.T, plaintext []byte, key Key) []byte {
	t.Helper()
	var shortNonce [chachaNonceSize]byte
	for i := range shortNonce {
		shortNonce[i] = byte(i)
	}
	var fullNonce [secretboxNonceSize]byte
	copy(fullNonce[secretboxNonceSize-chachaNonceSize:], shortNonce[:])

	var boxKey [32]byte
	copy(boxKey[:], key[:])

	sealed := secretbox.Seal(nil, plaintext, &fullNonce, &boxKey)
	return append(shortNonce[:], sealed...)
}

func TestUnseal_ChaCha20Poly1305RoundTrip(t *testing.T) {
	key := DefaultKey()
	blob := sealChaCha(t, []byte("acoustic payload"), key)

	pt, err := Unseal(blob, key)
	require.NoError(t, err)
	assert.Equal(t, "acoustic payload", string(pt))
}

func TestUnseal_SecretboxFallback(t *testing.T) {
	key := DefaultKey()
	blob := sealSecretboxBlob(t, []byte("fallback payload"), key)

	pt, err := Unseal(blob, key)
	require.NoError(t, err)
	assert.Equal(t, "fallback payload", string(pt))
}

func TestUnseal_CorruptDataTooShort(t *testing.T) {
	_, err := Unseal(make([]byte, 4), DefaultKey())
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestUnseal_AuthFailureWrongKey(t *testing.T) {
	key := DefaultKey()
	blob := sealChaCha(t, []byte("acoustic payload"), key)

	wrongKey, err := KeyFromBytes([]byte("zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"))
	require.NoError(t, err)

	_, err = Unseal(blob, wrongKey)
	assert.ErrorIs(t, err, ErrAuthFailure)
}

func TestUnseal_AuthFailureTamperedCiphertext(t *testing.T) {
	key := DefaultKey()
	blob := sealChaCha(t, []byte("acoustic payload"), key)
	blob[len(blob)-1] ^= 0xFF

	_, err := Unseal(blob, key)
	assert.ErrorIs(t, err, ErrAuthFailure)
}
