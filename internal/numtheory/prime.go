package numtheory

import (
	"context"
	"fmt"
	"math/big"
)

// Generator подбирает случайные простые числа заданной десятичной длины.
type Generator struct {
	tester      *Tester
	rand        Source
	maxAttempts int
}

// GeneratorOption настраивает Generator.
type GeneratorOption func(*Generator)

// WithMaxAttempts ограничивает число кандидатов, проверяемых за один вызов.
// Ноль снимает ограничение.
func WithMaxAttempts(n int) GeneratorOption {
	return func(g *Generator) {
		g.maxAttempts = n
	}
}

// NewGenerator создает Generator. Источники tester и rnd могут различаться:
// сбой любого из них прерывает GeneratePrime с ошибкой.
func NewGenerator(tester *Tester, rnd Source, opts ...GeneratorOption) *Generator {
	g := &Generator{
		tester: tester,
		rand:   rnd,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GeneratePrime возвращает вероятно простое число из [10^(digits-1), 10^digits - 1].
// Контекст проверяется перед каждой попыткой; при отмене возвращается ErrCancelled.
func (g *Generator) GeneratePrime(ctx context.Context, digits int) (*big.Int, error) {
	if digits < 1 {
		return nil, fmt.Errorf("%w: digit width %d", ErrInvalidArgument, digits)
	}

	ten := big.NewInt(10)
	low := new(big.Int).Exp(ten, big.NewInt(int64(digits-1)), nil)
	high := new(big.Int).Exp(ten, big.NewInt(int64(digits)), nil)
	high.Sub(high, one)

	for attempt := 0; g.maxAttempts == 0 || attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: prime generation: %v", ErrCancelled, err)
		}

		candidate, err := g.rand.Int(low, high)
		if err != nil {
			return nil, err
		}
		prime, err := g.tester.ProbablyPrime(candidate)
		if err != nil {
			return nil, err
		}
		if prime {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("%w: no prime among %d candidates", ErrAttemptsExhausted, g.maxAttempts)
}
