// Package numtheory содержит теоретико-числовые примитивы для учебного RSA:
// модульное возведение в степень, расширенный алгоритм Евклида,
// тест Миллера-Рабина и генерацию простых чисел.
package numtheory

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrCancelled         = errors.New("cancelled")
	ErrAttemptsExhausted = errors.New("attempts exhausted")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// ModPow вычисляет base^exponent mod modulus возведением в квадрат и умножением,
// начиная с младшего бита показателя.
func ModPow(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus %s must be positive", ErrInvalidArgument, modulus)
	}
	if exponent.Sign() < 0 {
		return nil, fmt.Errorf("%w: exponent %s must be non-negative", ErrInvalidArgument, exponent)
	}

	result := new(big.Int).Mod(one, modulus)
	b := new(big.Int).Mod(base, modulus)
	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}
	return result, nil
}

// ExtendedGCD возвращает gcd(a, b) и коэффициенты Безу x, y: a*x + b*y = gcd.
func ExtendedGCD(a, b *big.Int) (gcd, x, y *big.Int, err error) {
	if a.Sign() < 0 || b.Sign() < 0 {
		return nil, nil, nil, fmt.Errorf("%w: extended gcd of %s and %s", ErrInvalidArgument, a, b)
	}

	r0, r1 := new(big.Int).Set(a), new(big.Int).Set(b)
	x0, x1 := big.NewInt(1), big.NewInt(0)
	y0, y1 := big.NewInt(0), big.NewInt(1)

	q, r, t := new(big.Int), new(big.Int), new(big.Int)
	for r1.Sign() != 0 {
		q.DivMod(r0, r1, r)
		r0, r1 = r1, new(big.Int).Set(r)

		t.Mul(q, x1)
		x0, x1 = x1, new(big.Int).Sub(x0, t)

		t.Mul(q, y1)
		y0, y1 = y1, new(big.Int).Sub(y0, t)
	}
	return r0, x0, y0, nil
}
