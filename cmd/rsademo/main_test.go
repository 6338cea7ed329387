package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrymbos/rsa/internal/config"
	"github.com/xrymbos/rsa/internal/numtheory"
)

func demoConfig(t *testing.T, text string) config.DemoConfig {
	t.Helper()

	file := filepath.Join(t.TempDir(), "text.txt")
	require.NoError(t, os.WriteFile(file, []byte(text), 0o600))
	return config.DemoConfig{
		KeyConfig:   config.KeyConfig{PrimeDigitWidth: 12, MillerRabinTrials: numtheory.DefaultTrials, Seed: 11, Timeout: time.Second},
		CodecConfig: config.CodecConfig{BlockLength: 4, AlphabetSize: 256},
		InputFile:   file,
	}
}

func TestRun(t *testing.T) {
	cfg := demoConfig(t, "ATTACK AT DAWN")
	cfg.Pause = true

	var out bytes.Buffer
	report, err := run(context.Background(), cfg, strings.NewReader(strings.Repeat("\n", 6)), &out)
	require.NoError(t, err)
	assert.True(t, report.RoundTrip)
	assert.True(t, report.Authentic())
	assert.Equal(t, 6, strings.Count(out.String(), "Press Enter to continue."))
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *config.DemoConfig)
	}{
		{
			name:   "Missing input file",
			modify: func(cfg *config.DemoConfig) { cfg.InputFile = filepath.Join(t.TempDir(), "missing.txt") },
		},
		{
			name:   "Invalid codec",
			modify: func(cfg *config.DemoConfig) { cfg.BlockLength = 0 },
		},
		{
			name:   "Key generation timeout",
			modify: func(cfg *config.DemoConfig) { cfg.PrimeDigitWidth, cfg.Timeout = 300, time.Nanosecond },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := demoConfig(t, "HELLO")
			tt.modify(&cfg)

			_, err := run(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{})
			require.Error(t, err)
		})
	}
}
