// Package encryption предназначен для шифрования данных
package encryption

import "math/big"

type Encrypter interface {
	Encrypt(plaintext []byte) (ciphertext []*big.Int, err error)
}

type Decrypter interface {
	Decrypt(ciphertext []*big.Int) (plaintext []byte, err error)
}
