// Package rsa предназначен для шифрования данных с помощью учебного алгоритма RSA
// без схемы дополнения.
package rsa

import (
	"math/big"

	"github.com/xrymbos/rsa/internal/codec"
	"github.com/xrymbos/rsa/internal/encryption"
)

var (
	_ encryption.Encrypter = (*Encrypter)(nil)
	_ encryption.Decrypter = (*Decrypter)(nil)
)

type Encrypter struct {
	publicKey PublicKey
	codec     *codec.Codec
}

func NewEncrypter(publicKey PublicKey, c *codec.Codec) *Encrypter {
	return &Encrypter{publicKey: publicKey, codec: c}
}

func (e *Encrypter) Encrypt(plaintext []byte) ([]*big.Int, error) {
	blocks, err := e.codec.Encode(plaintext)
	if err != nil {
		return nil, err
	}
	return Transform(blocks, EncryptOp(e.publicKey))
}

type Decrypter struct {
	keyPair *KeyPair
	codec   *codec.Codec
}

func NewDecrypter(keyPair *KeyPair, c *codec.Codec) *Decrypter {
	return &Decrypter{keyPair: keyPair, codec: c}
}

func (d *Decrypter) Decrypt(ciphertext []*big.Int) ([]byte, error) {
	blocks, err := Transform(ciphertext, DecryptOp(d.keyPair))
	if err != nil {
		return nil, err
	}
	return d.codec.Decode(blocks), nil
}
