package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/acoustipipe/crypto"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.Equal(t, VariantDSSSCovert, cfg.Variant)
	assert.False(t, cfg.AutoScan)
	assert.Len(t, cfg.CarrierPool, 11)
}

func TestVariantFromString_RoundTrip(t *testing.T) {
	for _, v := range []Variant{VariantDSSSCovert, VariantDSSSBurst, VariantDSSSHeavyDuty, VariantFSK, VariantChirp} {
		parsed, err := VariantFromString(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
}

func TestVariantFromString_UnknownIsError(t *testing.T) {
	_, err := VariantFromString("not-a-variant")
	assert.Error(t, err)
}

func TestLoad_FillsDefaultsForMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: fsk\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, VariantFSK, cfg.Variant)
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.Len(t, cfg.CarrierPool, 11)
	assert.Equal(t, crypto.DefaultKey(), cfg.Key())
}

func TestLoad_ParsesKeyHex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	keyHex := "0102030405060708090a0b0c0d0e0f100102030405060708090a0b0c0d0e0f10"[:64]
	require.NoError(t, os.WriteFile(path, []byte("key_hex: \""+keyHex+"\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, keyHex, cfg.KeyHex)
}

func TestSetPublicKeyHex_RejectsWrongLength(t *testing.T) {
	cfg := NewDefault()
	err := cfg.SetPublicKeyHex("abcd")
	assert.Error(t, err)
	_, ok := cfg.PublicKey()
	assert.False(t, ok)
}

func TestSetPublicKeyHex_Accepts32Bytes(t *testing.T) {
	cfg := NewDefault()
	hex64 := "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"[:64]
	require.NoError(t, cfg.SetPublicKeyHex(hex64))
	_, ok := cfg.PublicKey()
	assert.True(t, ok)
}
