// Package config loads the decoder's runtime configuration: sample rate,
// waveform variant selection, carrier auto-scan, and the preshared key.
// Configuration is optional — NewDefault reproduces spec-exact defaults
// when no file is supplied.
package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/acoustipipe/crypto"
)

// Variant selects which waveform demodulator the decoder uses.
type Variant int

const (
	// VariantDSSSCovert is the default DSSS/BPSK spread-spectrum waveform.
	VariantDSSSCovert Variant = iota
	// VariantDSSSBurst is unspread BPSK, 8 samples/symbol.
	VariantDSSSBurst
	// VariantDSSSHeavyDuty is DSSS with 20 samples/chip and a band-pass prefilter.
	VariantDSSSHeavyDuty
	// VariantFSK is 2-FSK ("Screecher").
	VariantFSK
	// VariantChirp is linear-chirp CSS ("Dolphin").
	VariantChirp
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case VariantDSSSCovert:
		return "dsss-covert"
	case VariantDSSSBurst:
		return "dsss-burst"
	case VariantDSSSHeavyDuty:
		return "dsss-heavy-duty"
	case VariantFSK:
		return "fsk"
	case VariantChirp:
		return "chirp"
	default:
		return "unknown"
	}
}

// MarshalYAML implements yaml.Marshaler.
func (v Variant) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Variant) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := VariantFromString(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// VariantFromString parses a waveform variant name.
func VariantFromString(s string) (Variant, error) {
	switch s {
	case "dsss-covert", "covert", "":
		return VariantDSSSCovert, nil
	case "dsss-burst", "burst":
		return VariantDSSSBurst, nil
	case "dsss-heavy-duty", "heavy-duty":
		return VariantDSSSHeavyDuty, nil
	case "fsk", "screecher":
		return VariantFSK, nil
	case "chirp", "dolphin":
		return VariantChirp, nil
	default:
		return 0, fmt.Errorf("config: unknown waveform variant %q", s)
	}
}

// DecoderConfig is the full set of tunables for one decode pipeline.
type DecoderConfig struct {
	SampleRate   int     `yaml:"sample_rate"`
	Variant      Variant `yaml:"variant"`
	AutoScan     bool    `yaml:"auto_scan"`
	CarrierPool  []int   `yaml:"carrier_pool_hz"`
	KeyHex       string  `yaml:"key_hex"`
	PublicKeyHex string  `yaml:"public_key_hex"`

	key       crypto.Key
	publicKey [32]byte
	hasPubKey bool
}

// defaultCarrierPool is the eleven-frequency DSSS carrier scan order.
var defaultCarrierPool = []int{8000, 9000, 10000, 11000, 12000, 13000, 14000, 15000, 16000, 17000, 18000}

// NewDefault returns the spec-exact default configuration: 44100 Hz,
// DSSS/BPSK covert mode, auto-scan disabled (12 kHz carrier only), and the
// insecure default preshared key.
func NewDefault() *DecoderConfig {
	return &DecoderConfig{
		SampleRate:  44100,
		Variant:     VariantDSSSCovert,
		AutoScan:    false,
		CarrierPool: append([]int(nil), defaultCarrierPool...),
		key:         crypto.DefaultKey(),
	}
}

// Load reads and parses a YAML configuration file, filling in spec-exact
// defaults for any field the file leaves zero.
func Load(path string) (*DecoderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if len(cfg.CarrierPool) == 0 {
		cfg.CarrierPool = append([]int(nil), defaultCarrierPool...)
	}

	if cfg.KeyHex != "" {
		if err := cfg.SetKeyHex(cfg.KeyHex); err != nil {
			return nil, err
		}
	} else {
		cfg.key = crypto.DefaultKey()
	}

	if cfg.PublicKeyHex != "" {
		if err := cfg.SetPublicKeyHex(cfg.PublicKeyHex); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Key returns the configured preshared symmetric key.
func (c *DecoderConfig) Key() crypto.Key { return c.key }

// SetKey overrides the preshared symmetric key (control-surface `set_key`).
func (c *DecoderConfig) SetKey(key crypto.Key) { c.key = key }

// SetKeyHex overrides the preshared key from a 64-character hex string.
func (c *DecoderConfig) SetKeyHex(hexKey string) error {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return fmt.Errorf("config: key_hex: %w", err)
	}
	key, err := crypto.KeyFromBytes(raw)
	if err != nil {
		return fmt.Errorf("config: key_hex: %w", err)
	}
	c.key = key
	return nil
}

// PublicKey returns the optional Ed25519 public key used for signature
// verification, and whether one has been configured.
func (c *DecoderConfig) PublicKey() ([32]byte, bool) { return c.publicKey, c.hasPubKey }

// SetPublicKeyHex configures the optional 32-byte Ed25519 public key from a
// 64-character hex string.
func (c *DecoderConfig) SetPublicKeyHex(hexKey string) error {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return fmt.Errorf("config: public_key_hex: %w", err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("config: public_key_hex: must decode to 32 bytes, got %d", len(raw))
	}
	copy(c.publicKey[:], raw)
	c.hasPubKey = true
	return nil
}
