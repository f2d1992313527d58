// Package main is the command-line front end for the acoustic message
// decoder: it reads a PCM or WAV capture, feeds it through a decode
// pipeline chunk by chunk, and prints every Message Record it emits.
package main

import (
	"encoding/binary"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/opd-ai/acoustipipe/config"
	"github.com/opd-ai/acoustipipe/decoder"
	"github.com/opd-ai/acoustipipe/internal/xlog"
	"github.com/opd-ai/acoustipipe/messaging"
)

const chunkSamples = 4096

func main() {
	var (
		configPath  = pflag.StringP("config", "c", "", "YAML config file (default: spec-exact defaults)")
		variant     = pflag.StringP("variant", "v", "", "Waveform variant override: dsss-covert, dsss-burst, dsss-heavy-duty, fsk, chirp")
		autoScan    = pflag.Bool("auto-scan", false, "Scan the carrier pool instead of using the fixed default carrier")
		keyHex      = pflag.String("key", "", "64-character hex preshared key override")
		sampleRate  = pflag.IntP("sample-rate", "r", 0, "Input sample rate override (Hz)")
		metricsAddr = pflag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090); empty disables")
		help        = pflag.BoolP("help", "h", false, "Display help text")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "acoustidecode - decode covert acoustic data-over-audio messages from a PCM capture.\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n  acoustidecode [options] <input.wav|input.pcm>\n\nOptions:\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "acoustidecode: exactly one input file is required")
		pflag.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "acoustidecode: %v\n", err)
		os.Exit(1)
	}

	if *variant != "" {
		v, err := config.VariantFromString(*variant)
		if err != nil {
			fmt.Fprintf(os.Stderr, "acoustidecode: %v\n", err)
			os.Exit(1)
		}
		cfg.Variant = v
	}
	if *autoScan {
		cfg.AutoScan = true
	}
	if *keyHex != "" {
		if err := cfg.SetKeyHex(*keyHex); err != nil {
			fmt.Fprintf(os.Stderr, "acoustidecode: %v\n", err)
			os.Exit(1)
		}
	}
	if *sampleRate > 0 {
		cfg.SampleRate = *sampleRate
	}

	log := xlog.New("cmd/acoustidecode", "main")

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, log)
	}

	samples, err := readPCM(pflag.Arg(0), cfg.SampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "acoustidecode: %v\n", err)
		os.Exit(1)
	}

	p := decoder.NewPipeline(cfg)
	p.StartListening()

	records := 0
	for offset := 0; offset < len(samples); offset += chunkSamples {
		end := offset + chunkSamples
		if end > len(samples) {
			end = len(samples)
		}
		if rec, ok := p.Tick(samples[offset:end]); ok {
			records++
			printRecord(rec)
		}
	}

	log.WithField("records", records).Info("decode run complete")
}

func loadConfig(path string) (*config.DecoderConfig, error) {
	if path == "" {
		return config.NewDefault(), nil
	}
	return config.Load(path)
}

func serveMetrics(addr string, log *xlog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.WithField("addr", addr).Info("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err, "MetricsServerFailed", "serveMetrics").Warn("metrics server exited")
	}
}

func printRecord(rec *messaging.Record) {
	if rec.Status == messaging.StatusError {
		fmt.Printf("[ERROR] %s\n", rec.Content)
		return
	}
	verified := ""
	if rec.Verified {
		verified = " (signed)"
	}
	if rec.Filename != "" {
		fmt.Printf("[%s] %s%s: %s (%s)\n", rec.Priority, rec.Type, verified, rec.Content, rec.Filename)
		return
	}
	fmt.Printf("[%s] %s%s: %s\n", rec.Priority, rec.Type, verified, rec.Content)
}

// readPCM loads a capture file as mono float32 samples in [-1, 1]. It
// recognizes a canonical 16-bit PCM WAV header and falls back to treating
// the whole file as raw little-endian int16 samples otherwise — no library
// in the reference pack parses WAV, so this stays a minimal stdlib reader.
func readPCM(path string, sampleRate int) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	pcm := data
	if len(data) >= 44 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE" {
		pcm = data[44:]
	}

	n := len(pcm) / 2
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
		samples[i] = float32(v) / 32768.0
	}
	_ = sampleRate // retained for CLI symmetry with future resampling support
	return samples, nil
}
