package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrymbos/rsa/internal/config"
	"github.com/xrymbos/rsa/internal/encryption/rsa"
	"github.com/xrymbos/rsa/internal/storage"
)

func TestNewServer(t *testing.T) {
	cfg := config.ServerConfig{
		KeyConfig:     config.KeyConfig{PrimeDigitWidth: 12, MillerRabinTrials: 20, Seed: 3},
		CodecConfig:   config.CodecConfig{BlockLength: 4, AlphabetSize: 256},
		Address:       "127.0.0.1:0",
		EvictInterval: time.Minute,
	}
	s, err := NewServer(cfg, storage.NewMemoryStorage(0))
	require.NoError(t, err)
	assert.Equal(t, 12, s.Digits)
	assert.Equal(t, 4, s.Codec.BlockLength())

	cfg.BlockLength = 0
	_, err = NewServer(cfg, storage.NewMemoryStorage(0))
	require.Error(t, err)
}

func TestEvict(t *testing.T) {
	store := storage.NewMemoryStorage(time.Millisecond)
	s := &Server{Storage: store}

	_, err := store.Put(context.Background(), &rsa.KeyPair{})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	s.evict(context.Background())
	assert.Equal(t, 0, store.Len())
}
