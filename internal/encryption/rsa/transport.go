package rsa

import (
	"fmt"
	"math/big"

	"github.com/xrymbos/rsa/internal/numtheory"
)

// Op пара (показатель, модуль), применяемая к каждому блоку сообщения.
// Шифрование, расшифрование, подпись и проверка подписи отличаются
// только выбором пары.
type Op struct {
	Exponent *big.Int
	Modulus  *big.Int
}

func EncryptOp(pub PublicKey) Op {
	return Op{Exponent: pub.E, Modulus: pub.N}
}

func DecryptOp(k *KeyPair) Op {
	return Op{Exponent: k.D, Modulus: k.N}
}

func SignOp(k *KeyPair) Op {
	return Op{Exponent: k.D, Modulus: k.N}
}

func VerifyOp(pub PublicKey) Op {
	return Op{Exponent: pub.E, Modulus: pub.N}
}

// Transform возводит каждый блок в степень op.Exponent по модулю op.Modulus.
// Блоки, не меньшие модуля, не обнаруживаются: результат для них
// не может быть корректно обращен.
func Transform(blocks []*big.Int, op Op) ([]*big.Int, error) {
	result := make([]*big.Int, len(blocks))
	for i, block := range blocks {
		v, err := numtheory.ModPow(block, op.Exponent, op.Modulus)
		if err != nil {
			return nil, fmt.Errorf("failed to transform block %d: %w", i, err)
		}
		result[i] = v
	}
	return result, nil
}
