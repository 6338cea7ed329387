package rsa

import (
	"context"
	"fmt"
	"math/big"

	"github.com/xrymbos/rsa/internal/numtheory"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// PublicKey открытая часть ключа, которую можно передавать другим сторонам.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// KeyPair ключевая пара RSA: n = p*q, e*d ≡ 1 (mod φ(n)).
// P и Q сохраняются только для вывода в демонстрации.
type KeyPair struct {
	PublicKey
	D *big.Int
	P *big.Int
	Q *big.Int
}

// Public возвращает копию открытой части ключа.
func (k *KeyPair) Public() PublicKey {
	return PublicKey{
		N: new(big.Int).Set(k.N),
		E: new(big.Int).Set(k.E),
	}
}

// Phi возвращает φ(n) = (p-1)(q-1).
func (k *KeyPair) Phi() *big.Int {
	return phi(k.P, k.Q)
}

// Generator создает ключевые пары из двух случайных простых чисел.
// Единственный разделяемый ресурс генератора - источник случайности,
// поэтому Generate можно вызывать из нескольких горутин.
type Generator struct {
	primes *numtheory.Generator
	rand   numtheory.Source
}

func NewGenerator(primes *numtheory.Generator, rnd numtheory.Source) *Generator {
	return &Generator{
		primes: primes,
		rand:   rnd,
	}
}

// NewDefaultGenerator собирает Generator с тестом Миллера-Рабина на trials раундов
// поверх одного источника случайности.
func NewDefaultGenerator(trials int, rnd numtheory.Source) *Generator {
	tester := numtheory.NewTester(trials, rnd)
	return NewGenerator(numtheory.NewGenerator(tester, rnd), rnd)
}

// Generate создает ключевую пару из простых чисел длиной digits десятичных знаков.
// При отмене ctx возвращается ошибка numtheory.ErrCancelled и никакой части ключа.
func (g *Generator) Generate(ctx context.Context, digits int) (*KeyPair, error) {
	p, err := g.primes.GeneratePrime(ctx, digits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate p: %w", err)
	}

	var q, totient *big.Int
	for {
		q, err = g.primes.GeneratePrime(ctx, digits)
		if err != nil {
			return nil, fmt.Errorf("failed to generate q: %w", err)
		}
		if q.Cmp(p) == 0 {
			continue
		}
		// e выбирается из [2, φ-1], поэтому φ должно быть не меньше 3.
		// Меньшее значение возможно только для однозначных p и q.
		totient = phi(p, q)
		if totient.Cmp(three) >= 0 {
			break
		}
	}

	e, d, err := g.chooseExponents(ctx, totient)
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		PublicKey: PublicKey{
			N: new(big.Int).Mul(p, q),
			E: e,
		},
		D: d,
		P: p,
		Q: q,
	}, nil
}

// chooseExponents подбирает случайное e, обратимое по модулю totient, и обратное к нему d.
func (g *Generator) chooseExponents(ctx context.Context, totient *big.Int) (e, d *big.Int, err error) {
	high := new(big.Int).Sub(totient, one)
	for {
		if err = ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("%w: exponent selection: %v", numtheory.ErrCancelled, err)
		}

		e, err = g.rand.Int(two, high)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to choose public exponent: %w", err)
		}

		var gcd, x *big.Int
		gcd, x, _, err = numtheory.ExtendedGCD(e, totient)
		if err != nil {
			return nil, nil, err
		}
		if gcd.Cmp(one) != 0 {
			continue
		}

		for x.Sign() < 0 {
			x.Add(x, totient)
		}
		return e, x, nil
	}
}

func phi(p, q *big.Int) *big.Int {
	pMinusOne := new(big.Int).Sub(p, one)
	qMinusOne := new(big.Int).Sub(q, one)
	return pMinusOne.Mul(pMinusOne, qMinusOne)
}
