package numtheory

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	mathrand "math/rand"
	"sync"
)

// Source поставляет равномерно распределенные целые числа.
// Реализации должны быть безопасны для конкурентного использования.
type Source interface {
	// Int возвращает случайное число из отрезка [min, max].
	Int(min, max *big.Int) (*big.Int, error)
}

type readerSource struct {
	reader io.Reader
}

// NewReaderSource создает Source поверх криптографического генератора r.
func NewReaderSource(r io.Reader) Source {
	return &readerSource{reader: r}
}

// CryptoSource возвращает Source поверх crypto/rand.
func CryptoSource() Source {
	return NewReaderSource(rand.Reader)
}

func (s *readerSource) Int(min, max *big.Int) (*big.Int, error) {
	span, err := span(min, max)
	if err != nil {
		return nil, err
	}
	v, err := rand.Int(s.reader, span)
	if err != nil {
		return nil, fmt.Errorf("failed to read random number: %w", err)
	}
	return v.Add(v, min), nil
}

type seededSource struct {
	mu  sync.Mutex
	rnd *mathrand.Rand
}

// NewSeededSource создает детерминированный Source.
// Подходит для тестов и воспроизводимых демонстраций, но не для реальных ключей.
func NewSeededSource(seed int64) Source {
	return &seededSource{rnd: mathrand.New(mathrand.NewSource(seed))}
}

func (s *seededSource) Int(min, max *big.Int) (*big.Int, error) {
	span, err := span(min, max)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	v := new(big.Int).Rand(s.rnd, span)
	s.mu.Unlock()

	return v.Add(v, min), nil
}

func span(min, max *big.Int) (*big.Int, error) {
	if min.Cmp(max) > 0 {
		return nil, fmt.Errorf("%w: empty range [%s, %s]", ErrInvalidArgument, min, max)
	}
	s := new(big.Int).Sub(max, min)
	return s.Add(s, one), nil
}
