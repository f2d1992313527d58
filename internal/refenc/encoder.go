package refenc

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/klauspost/reedsolomon"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/opd-ai/acoustipipe/config"
	"github.com/opd-ai/acoustipipe/crypto"
	"github.com/opd-ai/acoustipipe/messaging"
	"github.com/opd-ai/acoustipipe/waveform"
)

const (
	fecParitySize   = 32
	fecShardSize    = 2
	fecParityShards = fecParitySize / fecShardSize
)

// Options configures one reference-encoded message.
type Options struct {
	Variant    config.Variant
	SampleRate int
	CarrierHz  float64 // 0 selects the variant's default
	Key        crypto.Key
	Priority   messaging.Priority
	Type       messaging.MessageType
	Content    string
	Filename   string
	PrivateKey *[32]byte // non-nil signs the packet body
	SkipFEC    bool      // true emits the sealed blob with no parity trailer
	Corrupt    func(frame []byte) []byte
}

type packetBody struct {
	Priority string `json:"p"`
	Message  string `json:"m"`
	Filename string `json:"f"`
	Data     string `json:"d"`
}

// Encode builds an AudioWindow carrying one message, sealed and modulated
// exactly the way decoder.Pipeline expects to receive it: crypto envelope,
// optional Reed-Solomon parity trailer, 16-bit length prefix, triple
// redundancy, sync word, and waveform modulation.
func Encode(opts Options) ([]float32, error) {
	frame, err := buildFrame(opts)
	if err != nil {
		return nil, err
	}
	if opts.Corrupt != nil {
		frame = opts.Corrupt(frame)
	}

	bits := frameBits(frame)

	switch opts.Variant {
	case config.VariantFSK:
		return modulateFSK(opts, bits), nil
	case config.VariantChirp:
		return modulateChirp(opts, bits), nil
	default:
		return modulateDSSS(opts, bits), nil
	}
}

// buildFrame assembles the plaintext packet, seals it, and appends a
// verifying Reed-Solomon parity trailer.
func buildFrame(opts Options) ([]byte, error) {
	body := packetBody{
		Priority: string(opts.Priority),
		Message:  opts.Content,
		Filename: opts.Filename,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("refenc: marshal body: %w", err)
	}

	var sigSlot [crypto.SignatureSize]byte
	if opts.PrivateKey != nil {
		sig, err := crypto.Sign(jsonBody, *opts.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("refenc: sign: %w", err)
		}
		copy(sigSlot[:], sig[:])
	}

	plaintext := make([]byte, 0, 1+len(sigSlot)+len(jsonBody))
	plaintext = append(plaintext, messageTypeByte(opts.Type))
	plaintext = append(plaintext, sigSlot[:]...)
	plaintext = append(plaintext, jsonBody...)

	blob, err := seal(plaintext, opts.Key)
	if err != nil {
		return nil, err
	}

	if opts.SkipFEC {
		return blob, nil
	}
	return appendParity(blob)
}

func seal(plaintext []byte, key crypto.Key) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("refenc: chacha20poly1305: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("refenc: nonce: %w", err)
	}
	ciphertext := aead.Seal(nil, nonce, plaintext, nil)
	return append(nonce, ciphertext...), nil
}

// appendParity computes real Reed-Solomon parity over blob using the same
// 2-byte shard scheme crypto.FECStrip verifies against, so decoder round
// trips exercise genuine erasure-coding verification rather than an
// untested trailer.
func appendParity(blob []byte) ([]byte, error) {
	dataShardCount := (len(blob) + fecShardSize - 1) / fecShardSize
	shards := make([][]byte, dataShardCount+fecParityShards)
	for i := 0; i < dataShardCount; i++ {
		shard := make([]byte, fecShardSize)
		start := i * fecShardSize
		end := start + fecShardSize
		if end > len(blob) {
			end = len(blob)
		}
		copy(shard, blob[start:end])
		shards[i] = shard
	}
	for i := dataShardCount; i < len(shards); i++ {
		shards[i] = make([]byte, fecShardSize)
	}

	enc, err := reedsolomon.New(dataShardCount, fecParityShards)
	if err != nil {
		return nil, fmt.Errorf("refenc: reedsolomon.New: %w", err)
	}
	if err := enc.Encode(shards); err != nil {
		return nil, fmt.Errorf("refenc: reedsolomon encode: %w", err)
	}

	parity := make([]byte, 0, fecParitySize)
	for _, shard := range shards[dataShardCount:] {
		parity = append(parity, shard...)
	}
	return append(blob, parity...), nil
}

func messageTypeByte(t messaging.MessageType) byte {
	switch t {
	case messaging.MessageTypeLocation:
		return 0x02
	case messaging.MessageTypeFile:
		return 0x03
	case messaging.MessageTypeImage:
		return 0x04
	case messaging.MessageTypeAck:
		return 0x05
	default:
		return 0x01
	}
}

// frameBits renders frame as a 16-bit big-endian length prefix followed by
// the payload bits repeated three times consecutively, matching the layout
// payload.Extract reads: bit i of byte data, not byte i repeated three
// times.
func frameBits(frame []byte) []byte {
	length := len(frame)
	bits := make([]byte, 0, 16+3*8*length)

	lengthU16 := uint16(length)
	for i := 15; i >= 0; i-- {
		if lengthU16&(1<<uint(i)) != 0 {
			bits = append(bits, waveform.BitOne)
		} else {
			bits = append(bits, waveform.BitZero)
		}
	}

	dataBits := make([]byte, 8*length)
	for i, b := range frame {
		for bit := 0; bit < 8; bit++ {
			dataBits[i*8+bit] = bitAt(b, 7-bit)
		}
	}
	bits = append(bits, dataBits...)
	bits = append(bits, dataBits...)
	bits = append(bits, dataBits...)
	return bits
}

func bitAt(b byte, pos int) byte {
	if b&(1<<uint(pos)) != 0 {
		return waveform.BitOne
	}
	return waveform.BitZero
}
