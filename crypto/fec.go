package crypto

import "github.com/klauspost/reedsolomon"

// fecParitySize is the size in bytes of the trailing Reed-Solomon parity
// block that may be present at the end of a link-layer payload, per the
// wire format. It is split into fecParityShards equal shards so the
// decoder can tell a genuine parity block from payload bytes that merely
// happen to be 32 bytes long.
const (
	fecParitySize   = 32
	fecShardSize    = 2
	fecParityShards = fecParitySize / fecShardSize // 16
)

// FECStrip removes a trailing Reed-Solomon parity block from blob if one is
// present and verifies it, returning the payload with the parity block
// removed. If blob is fecParitySize bytes or smaller, or the trailing bytes
// do not verify as valid parity over the preceding data, blob is returned
// unchanged: there is no blind strip of an unverified trailer (the wire
// format carries no erasure markers, so an invalid parity block cannot be
// told apart from corrupted payload; stripping would silently damage a
// message no FEC was ever present in). Errors are never corrected.
func FECStrip(blob []byte) []byte {
	if len(blob) <= fecParitySize {
		return blob
	}

	split := len(blob) - fecParitySize
	data, parity := blob[:split], blob[split:]

	shards, err := buildShards(data, parity)
	if err != nil {
		log.WithError(err, "fec_shard_build_failed", "FECStrip").Debug("could not shard trailing parity block")
		return blob
	}

	enc, err := reedsolomon.New(len(shards)-fecParityShards, fecParityShards)
	if err != nil {
		log.WithError(err, "fec_encoder_init_failed", "FECStrip").Debug("reed-solomon encoder unavailable")
		return blob
	}

	ok, err := enc.Verify(shards)
	if err != nil || !ok {
		log.Debug("trailing 32 bytes did not verify as reed-solomon parity; leaving blob unstripped")
		return blob
	}

	log.WithField("data_bytes", len(data)).Debug("stripped verified reed-solomon parity trailer")
	return data
}

// buildShards splits data into fecShardSize-byte data shards (zero-padding
// the final shard if data's length isn't a multiple of fecShardSize) and
// parity into its fecParityShards shards, returning them in the order
// reedsolomon expects: all data shards followed by all parity shards.
func buildShards(data, parity []byte) ([][]byte, error) {
	dataShardCount := (len(data) + fecShardSize - 1) / fecShardSize
	shards := make([][]byte, 0, dataShardCount+fecParityShards)

	for i := 0; i < dataShardCount; i++ {
		start := i * fecShardSize
		end := start + fecShardSize
		shard := make([]byte, fecShardSize)
		if end > len(data) {
			end = len(data)
		}
		copy(shard, data[start:end])
		shards = append(shards, shard)
	}

	for i := 0; i < fecParityShards; i++ {
		start := i * fecShardSize
		shard := make([]byte, fecShardSize)
		copy(shard, parity[start:start+fecShardSize])
		shards = append(shards, shard)
	}

	return shards, nil
}
