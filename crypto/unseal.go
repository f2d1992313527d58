package crypto

import (
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/opd-ai/acoustipipe/internal/xlog"
)

var log = xlog.New("crypto", "Unseal")

// Sentinel errors for the cryptographic unseal step. Callers map these onto
// the Message Record error taxonomy; none of them ever carry decrypted
// bytes.
var (
	// ErrCorruptData means the blob is too short to hold a nonce and tag
	// for any recognized cipher.
	ErrCorruptData = errors.New("crypto: corrupt data")
	// ErrAuthFailure means AEAD tag verification failed for every
	// recognized cipher.
	ErrAuthFailure = errors.New("crypto: decryption failed")
	// ErrUnsupportedCipher means the ChaCha20-Poly1305 cipher could not be
	// constructed for the key (configuration error, not a data error).
	// Unseal does not return it: it moves on to the secretbox fallback.
	ErrUnsupportedCipher = errors.New("crypto: chacha20 not supported")
)

const (
	chachaNonceSize     = chacha20poly1305.NonceSize // 12
	secretboxNonceSize  = 24
	minSealedBlobLength = chachaNonceSize + 16 // nonce + auth tag
)

// Unseal authenticates and decrypts a sealed blob (nonce ‖ ciphertext ‖ tag)
// against the preshared key. It tries ChaCha20-Poly1305 first (the sender's
// primary format) and falls back to XSalsa20-Poly1305/secretbox, left-padding
// the 12-byte nonce to secretbox's 24-byte requirement.
//
// On any authentication failure, Unseal returns ErrAuthFailure and never
// exposes partially decrypted bytes.
func Unseal(blob []byte, key Key) ([]byte, error) {
	if len(blob) < minSealedBlobLength {
		log.WithField("blob_size", len(blob)).Warn("sealed blob shorter than nonce+tag")
		return nil, ErrCorruptData
	}

	if pt, err := unsealChaCha20Poly1305(blob, key); err == nil {
		log.WithField("cipher", "chacha20poly1305").Debug("unseal succeeded")
		return pt, nil
	}

	pt, err := unsealSecretbox(blob, key)
	if err != nil {
		log.Warn("unseal failed for all recognized ciphers")
		return nil, ErrAuthFailure
	}
	log.WithField("cipher", "xsalsa20poly1305").Debug("unseal succeeded via fallback cipher")
	return pt, nil
}

func unsealChaCha20Poly1305(blob []byte, key Key) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, ErrUnsupportedCipher
	}
	nonce := blob[:chachaNonceSize]
	ciphertext := blob[chachaNonceSize:]
	pt, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailure
	}
	return pt, nil
}

// unsealSecretbox treats the same leading chachaNonceSize bytes of blob as a
// short nonce and left-pads it with zeros to secretbox's 24-byte nonce size,
// per the wire format's fallback rule.
func unsealSecretbox(blob []byte, key Key) ([]byte, error) {
	var nonce [secretboxNonceSize]byte
	copy(nonce[secretboxNonceSize-chachaNonceSize:], blob[:chachaNonceSize])

	var boxKey [32]byte
	copy(boxKey[:], key[:])

	pt, ok := secretbox.Open(nil, blob[chachaNonceSize:], &nonce, &boxKey)
	if !ok {
		return nil, ErrAuthFailure
	}
	return pt, nil
}
