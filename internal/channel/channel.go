// Package channel реализует двустороннюю передачу сообщения с подписью
// отправителя и шифрованием для получателя.
//
// Схема дополнения отсутствует, поэтому промежуточный результат первого
// преобразования должен быть меньше модуля второго. Для этого обе операции
// выполняются в порядке возрастания модулей: если модуль получателя меньше
// модуля отправителя, сообщение сначала шифруется и только потом подписывается.
// Получатель применяет обратные операции в зеркальном порядке.
package channel

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/openlyinc/pointy"

	"github.com/xrymbos/rsa/internal/codec"
	"github.com/xrymbos/rsa/internal/encryption/rsa"
)

// Delivery результат приема сообщения.
type Delivery struct {
	Text []byte
	// Authentic равен nil, если исходный текст получателю неизвестен.
	// Иначе сообщает, совпал ли восстановленный текст с исходным.
	Authentic *bool
}

type Channel struct {
	codec *codec.Codec
}

func New(c *codec.Codec) *Channel {
	return &Channel{codec: c}
}

// SendSigned кодирует text, подписывает его ключом sender и шифрует
// открытым ключом recipient.
func (c *Channel) SendSigned(text []byte, sender *rsa.KeyPair, recipient rsa.PublicKey) ([]*big.Int, error) {
	blocks, err := c.codec.Encode(text)
	if err != nil {
		return nil, err
	}
	return apply(blocks, SendOps(sender, recipient))
}

// ReceiveVerified расшифровывает cipher ключом recipient, проверяет подпись
// открытым ключом sender и декодирует текст. Неверная подпись или чужой ключ
// проявляются только как искаженный текст.
func (c *Channel) ReceiveVerified(cipher []*big.Int, recipient *rsa.KeyPair, sender rsa.PublicKey, original []byte) (*Delivery, error) {
	blocks, err := apply(cipher, ReceiveOps(recipient, sender))
	if err != nil {
		return nil, err
	}

	delivery := &Delivery{Text: c.codec.Decode(blocks)}
	if original != nil {
		delivery.Authentic = pointy.Bool(bytes.Equal(delivery.Text, original))
	}
	return delivery, nil
}

// SendOps возвращает операции отправителя: подпись, затем шифрование,
// либо в обратном порядке, если модуль получателя меньше.
func SendOps(sender *rsa.KeyPair, recipient rsa.PublicKey) []rsa.Op {
	ops := []rsa.Op{rsa.SignOp(sender), rsa.EncryptOp(recipient)}
	if recipient.N.Cmp(sender.N) < 0 {
		ops[0], ops[1] = ops[1], ops[0]
	}
	return ops
}

// ReceiveOps возвращает операции получателя, зеркальные SendOps.
func ReceiveOps(recipient *rsa.KeyPair, sender rsa.PublicKey) []rsa.Op {
	ops := []rsa.Op{rsa.DecryptOp(recipient), rsa.VerifyOp(sender)}
	if recipient.N.Cmp(sender.N) < 0 {
		ops[0], ops[1] = ops[1], ops[0]
	}
	return ops
}

func apply(blocks []*big.Int, ops []rsa.Op) ([]*big.Int, error) {
	var err error
	for i, op := range ops {
		blocks, err = rsa.Transform(blocks, op)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return blocks, nil
}
