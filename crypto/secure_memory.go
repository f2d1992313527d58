package crypto

import (
	"crypto/subtle"
	"errors"
	"runtime"
)

// wipe overwrites data with zeros in place. subtle.ConstantTimeCompare is
// called first purely as a side effect that touches every byte of data
// through a non-inlinable stdlib call, discouraging the compiler from
// proving the subsequent copy is dead and eliding it.
func wipe(data []byte) error {
	if data == nil {
		return errors.New("crypto: cannot wipe nil data")
	}

	zeros := make([]byte, len(data))
	subtle.ConstantTimeCompare(data, zeros)
	copy(data, zeros)

	runtime.KeepAlive(data)
	runtime.KeepAlive(zeros)
	return nil
}

// ZeroBytes wipes a decrypted plaintext packet (or other transient key
// material) the moment it is no longer needed. The decode pipeline defers
// this on the plaintext packet returned by Unseal so a plaintext that failed
// packet parsing still gets wiped before the decode cycle returns.
func ZeroBytes(data []byte) {
	_ = wipe(data)
}

// WipeKey zeroes a preshared symmetric key in place once a Pipeline no
// longer needs it, e.g. on a set_key control-surface call that replaces
// the key a running pipeline was constructed with.
func WipeKey(k *Key) {
	if k == nil {
		return
	}
	_ = wipe(k[:])
}
