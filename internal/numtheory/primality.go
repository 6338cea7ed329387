package numtheory

import (
	"fmt"
	"math/big"
)

// DefaultTrials дает вероятность ложноположительного ответа не выше 4^-20.
const DefaultTrials = 20

// Tester проверяет числа на простоту вероятностным тестом Миллера-Рабина.
type Tester struct {
	trials int
	rand   Source
}

// NewTester создает Tester с заданным числом раундов.
// При trials < 1 используется DefaultTrials.
func NewTester(trials int, rnd Source) *Tester {
	if trials < 1 {
		trials = DefaultTrials
	}
	return &Tester{trials: trials, rand: rnd}
}

// Trials возвращает число раундов теста.
func (t *Tester) Trials() int {
	return t.trials
}

// IsProbablePrime сообщает, является ли n вероятно простым.
// Составное число принимается с вероятностью не выше 4^-trials.
// Ошибка источника случайности считается признаком составности.
func (t *Tester) IsProbablePrime(n *big.Int) bool {
	prime, err := t.ProbablyPrime(n)
	return err == nil && prime
}

// ProbablyPrime как IsProbablePrime, но возвращает ошибку источника свидетелей.
func (t *Tester) ProbablyPrime(n *big.Int) (bool, error) {
	if n.Cmp(two) == 0 || n.Cmp(big.NewInt(3)) == 0 {
		return true, nil
	}
	if n.Cmp(two) < 0 || n.Bit(0) == 0 {
		return false, nil
	}

	// n-1 = d * 2^s, d нечетно
	nMinusOne := new(big.Int).Sub(n, one)
	s := nMinusOne.TrailingZeroBits()
	d := new(big.Int).Rsh(nMinusOne, s)

	nMinusTwo := new(big.Int).Sub(n, two)
	for i := 0; i < t.trials; i++ {
		a, err := t.rand.Int(two, nMinusTwo)
		if err != nil {
			return false, fmt.Errorf("failed to draw witness: %w", err)
		}
		if isWitness(a, d, s, n, nMinusOne) {
			return false, nil
		}
	}
	return true, nil
}

// isWitness сообщает, доказывает ли a составность n.
func isWitness(a, d *big.Int, s uint, n, nMinusOne *big.Int) bool {
	x, err := ModPow(a, d, n)
	if err != nil {
		return true
	}
	if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
		return false
	}
	for r := uint(1); r < s; r++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinusOne) == 0 {
			return false
		}
		if x.Cmp(one) == 0 {
			return true
		}
	}
	return true
}

// IsPrimeTrialDivision проверяет простоту перебором делителей до sqrt(n).
// Всегда точен, но годится только для небольших чисел.
func IsPrimeTrialDivision(n *big.Int) bool {
	if n.Cmp(one) <= 0 {
		return false
	}
	x := big.NewInt(2)
	sq, r := new(big.Int), new(big.Int)
	for {
		sq.Mul(x, x)
		if sq.Cmp(n) > 0 {
			return true
		}
		if r.Mod(n, x).Sign() == 0 {
			return false
		}
		x.Add(x, one)
	}
}
