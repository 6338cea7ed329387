package numtheory

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsProbablePrimeMatchesTrialDivision(t *testing.T) {
	tester := NewTester(40, NewSeededSource(42))
	for n := int64(0); n <= 10000; n++ {
		v := big.NewInt(n)
		require.Equal(t, IsPrimeTrialDivision(v), tester.IsProbablePrime(v), "n = %d", n)
	}
}

func TestIsProbablePrime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		prime bool
	}{
		{name: "Two", value: "2", prime: true},
		{name: "Three", value: "3", prime: true},
		{name: "One", value: "1", prime: false},
		{name: "Zero", value: "0", prime: false},
		{name: "Negative", value: "-7", prime: false},
		{name: "Even", value: "1000000", prime: false},
		{name: "Carmichael", value: "561", prime: false},
		{name: "Carmichael large", value: "3825123056546413051", prime: false},
		{name: "Mersenne 127", value: "170141183460469231731687303715884105727", prime: true},
		{name: "Mersenne 127 plus two", value: "170141183460469231731687303715884105729", prime: false},
		{name: "Prime squared", value: "10403", prime: false},
	}

	tester := NewTester(DefaultTrials, NewSeededSource(7))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := new(big.Int).SetString(tt.value, 10)
			require.True(t, ok)
			assert.Equal(t, tt.prime, tester.IsProbablePrime(n))
		})
	}
}

func TestNewTesterDefaultTrials(t *testing.T) {
	assert.Equal(t, DefaultTrials, NewTester(0, CryptoSource()).Trials())
	assert.Equal(t, 5, NewTester(5, CryptoSource()).Trials())
}

type failingSource struct{}

func (failingSource) Int(_, _ *big.Int) (*big.Int, error) {
	return nil, errors.New("entropy exhausted")
}

func TestIsProbablePrimeSourceFailure(t *testing.T) {
	tester := NewTester(DefaultTrials, failingSource{})
	assert.False(t, tester.IsProbablePrime(big.NewInt(101)))
	assert.True(t, tester.IsProbablePrime(big.NewInt(3)))
}

func TestGeneratePrime(t *testing.T) {
	rnd := NewSeededSource(2023)
	g := NewGenerator(NewTester(DefaultTrials, rnd), rnd)

	for _, digits := range []int{1, 2, 3, 10, 50} {
		p, err := g.GeneratePrime(context.Background(), digits)
		require.NoError(t, err)
		assert.Len(t, p.String(), digits)
		assert.True(t, p.ProbablyPrime(20), "%s is not prime", p)
		if digits <= 10 {
			assert.True(t, IsPrimeTrialDivision(p))
		}
	}
}

func TestGeneratePrimeDeterministic(t *testing.T) {
	generate := func() *big.Int {
		rnd := NewSeededSource(99)
		p, err := NewGenerator(NewTester(DefaultTrials, rnd), rnd).GeneratePrime(context.Background(), 20)
		require.NoError(t, err)
		return p
	}
	assert.Equal(t, 0, generate().Cmp(generate()))
}

func TestGeneratePrimeInvalidDigits(t *testing.T) {
	g := NewGenerator(NewTester(DefaultTrials, CryptoSource()), CryptoSource())
	_, err := g.GeneratePrime(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGeneratePrimeCancelled(t *testing.T) {
	g := NewGenerator(NewTester(DefaultTrials, CryptoSource()), CryptoSource())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, err := g.GeneratePrime(ctx, 50)
	require.ErrorIs(t, err, ErrCancelled)
	require.Nil(t, p)

	ctx, cancel = context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	_, err = g.GeneratePrime(ctx, 50)
	require.ErrorIs(t, err, ErrCancelled)
}

// evenSource всегда возвращает нижнюю границу отрезка, округленную до четного.
type evenSource struct{}

func (evenSource) Int(min, _ *big.Int) (*big.Int, error) {
	v := new(big.Int).Set(min)
	if v.Bit(0) == 1 {
		v.Add(v, one)
	}
	return v, nil
}

func TestGeneratePrimeAttemptsExhausted(t *testing.T) {
	g := NewGenerator(NewTester(DefaultTrials, CryptoSource()), evenSource{}, WithMaxAttempts(10))
	_, err := g.GeneratePrime(context.Background(), 5)
	require.ErrorIs(t, err, ErrAttemptsExhausted)
}

func TestProbablyPrimeSourceFailure(t *testing.T) {
	_, err := NewTester(DefaultTrials, failingSource{}).ProbablyPrime(big.NewInt(101))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy exhausted")

	prime, err := NewTester(DefaultTrials, failingSource{}).ProbablyPrime(big.NewInt(100))
	require.NoError(t, err)
	assert.False(t, prime)
}

func TestGeneratePrimeTesterSourceFailure(t *testing.T) {
	// кандидаты берутся из исправного источника, свидетели из сломанного
	g := NewGenerator(NewTester(DefaultTrials, failingSource{}), NewSeededSource(5))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := g.GeneratePrime(ctx, 20)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCancelled))
	assert.Contains(t, err.Error(), "entropy exhausted")
}

func TestGeneratePrimeSourceFailure(t *testing.T) {
	g := NewGenerator(NewTester(DefaultTrials, failingSource{}), failingSource{})
	_, err := g.GeneratePrime(context.Background(), 5)
	require.Error(t, err)
}

func TestSourceRange(t *testing.T) {
	for _, rnd := range []Source{CryptoSource(), NewSeededSource(1)} {
		min, max := big.NewInt(2), big.NewInt(4)
		seen := make(map[int64]bool)
		for i := 0; i < 200; i++ {
			v, err := rnd.Int(min, max)
			require.NoError(t, err)
			require.True(t, v.Cmp(min) >= 0 && v.Cmp(max) <= 0, "%s out of range", v)
			seen[v.Int64()] = true
		}
		assert.Len(t, seen, 3)

		v, err := rnd.Int(big.NewInt(5), big.NewInt(5))
		require.NoError(t, err)
		assert.Equal(t, int64(5), v.Int64())

		_, err = rnd.Int(big.NewInt(6), big.NewInt(5))
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}
