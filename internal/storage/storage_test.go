package storage

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrymbos/rsa/internal/encryption/rsa"
)

func testKeyPair() *rsa.KeyPair {
	return &rsa.KeyPair{
		PublicKey: rsa.PublicKey{N: big.NewInt(3233), E: big.NewInt(17)},
		D:         big.NewInt(2753),
		P:         big.NewInt(61),
		Q:         big.NewInt(53),
	}
}

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(0)

	kp := testKeyPair()
	id, err := s.Put(ctx, kp)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Same(t, kp, got)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)
}

func TestGetUnknown(t *testing.T) {
	_, err := NewMemoryStorage(time.Minute).Get(context.Background(), "unknown")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestExpiration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s := NewMemoryStorage(time.Minute)
	s.now = func() time.Time { return now }

	oldID, err := s.Put(ctx, testKeyPair())
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	newID, err := s.Put(ctx, testKeyPair())
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = s.Get(ctx, oldID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, newID)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Evict(ctx, now))
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, 1, s.Evict(ctx, now.Add(time.Hour)))
	assert.Equal(t, 0, s.Len())
}

func TestNoExpiration(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(0)

	id, err := s.Put(ctx, testKeyPair())
	require.NoError(t, err)

	assert.Equal(t, 0, s.Evict(ctx, time.Now().Add(24*365*time.Hour)))
	_, err = s.Get(ctx, id)
	require.NoError(t, err)
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Put(ctx, testKeyPair())
			assert.NoError(t, err)
			_, err = s.Get(ctx, id)
			assert.NoError(t, err)
			s.Evict(ctx, time.Now())
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, s.Len())
}
