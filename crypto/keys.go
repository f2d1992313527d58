package crypto

import "errors"

// KeySize is the length in bytes of the preshared symmetric key.
const KeySize = 32

// defaultKeyASCII is the well-known, explicitly insecure preshared key used
// when no override is configured. It exists only to reproduce
// reference-compatible decryption during development and testing; see
// SetKey to override it.
const defaultKeyASCII = "01234567890123456789012345678901"

// Key is a 32-byte preshared symmetric key.
type Key [KeySize]byte

// DefaultKey returns the insecure well-known test key.
func DefaultKey() Key {
	var k Key
	copy(k[:], defaultKeyASCII)
	return k
}

// KeyFromBytes builds a Key from exactly KeySize bytes.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return k, errors.New("crypto: key must be exactly 32 bytes")
	}
	copy(k[:], b)
	return k, nil
}
