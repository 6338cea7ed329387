// Package codec переводит текст в последовательность целых чисел фиксированной
// ширины и обратно, чтобы к ним можно было применять RSA.
package codec

import (
	"errors"
	"fmt"
	"math/big"
)

const (
	DefaultBlockLength  = 20
	DefaultAlphabetSize = 256
)

// sentinel дополняет текст до кратной длины и удаляется при декодировании.
const sentinel = 0

var (
	ErrInvalidArgument = errors.New("invalid codec parameters")
	ErrInvalidUnit     = errors.New("unit outside of alphabet")
)

// Codec разбивает текст на блоки по blockLength байт. Каждый блок
// кодируется числом в системе счисления с основанием alphabetSize,
// младший разряд соответствует первому байту блока.
type Codec struct {
	blockLength  int
	alphabetSize int
	base         *big.Int
}

func New(blockLength, alphabetSize int) (*Codec, error) {
	if blockLength < 1 {
		return nil, fmt.Errorf("%w: block length %d", ErrInvalidArgument, blockLength)
	}
	if alphabetSize < 2 || alphabetSize > 256 {
		return nil, fmt.Errorf("%w: alphabet size %d", ErrInvalidArgument, alphabetSize)
	}
	return &Codec{
		blockLength:  blockLength,
		alphabetSize: alphabetSize,
		base:         big.NewInt(int64(alphabetSize)),
	}, nil
}

func (c *Codec) BlockLength() int {
	return c.blockLength
}

func (c *Codec) AlphabetSize() int {
	return c.alphabetSize
}

// Bound возвращает alphabetSize^blockLength, строгую верхнюю границу значений блоков.
// RSA восстанавливает блок, только если модуль больше этой границы.
func (c *Codec) Bound() *big.Int {
	return new(big.Int).Exp(c.base, big.NewInt(int64(c.blockLength)), nil)
}

// Encode дополняет текст нулевыми байтами и кодирует его поблочно.
// Пустой текст кодируется пустой последовательностью.
func (c *Codec) Encode(text []byte) ([]*big.Int, error) {
	for i, unit := range text {
		if int(unit) >= c.alphabetSize {
			return nil, fmt.Errorf("%w: byte %#x at offset %d, alphabet size %d",
				ErrInvalidUnit, unit, i, c.alphabetSize)
		}
	}

	count := (len(text) + c.blockLength - 1) / c.blockLength
	blocks := make([]*big.Int, 0, count)
	unit := new(big.Int)
	for start := 0; start < len(text); start += c.blockLength {
		value := new(big.Int)
		for i := c.blockLength - 1; i >= 0; i-- {
			value.Mul(value, c.base)
			if start+i < len(text) {
				value.Add(value, unit.SetInt64(int64(text[start+i])))
			}
		}
		blocks = append(blocks, value)
	}
	return blocks, nil
}

// Decode восстанавливает текст и удаляет из него все нулевые байты,
// в том числе присутствовавшие в исходном тексте.
func (c *Codec) Decode(blocks []*big.Int) []byte {
	text := make([]byte, 0, len(blocks)*c.blockLength)
	value, unit := new(big.Int), new(big.Int)
	for _, block := range blocks {
		value.Set(block)
		for i := 0; i < c.blockLength; i++ {
			value.DivMod(value, c.base, unit)
			if u := unit.Int64(); u != sentinel {
				text = append(text, byte(u))
			}
		}
	}
	return text
}
