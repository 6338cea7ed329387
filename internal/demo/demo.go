// Package demo проводит пошаговую демонстрацию RSA: генерацию ключей,
// шифрование и расшифрование текста, а затем передачу подписанного
// сообщения между двумя ключевыми парами.
package demo

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xrymbos/rsa/internal/channel"
	"github.com/xrymbos/rsa/internal/codec"
	"github.com/xrymbos/rsa/internal/encryption"
	"github.com/xrymbos/rsa/internal/encryption/rsa"
)

// Report содержит все промежуточные значения демонстрации.
type Report struct {
	First     *rsa.KeyPair
	Encoded   []*big.Int
	Encrypted []*big.Int
	Decrypted []byte
	// RoundTrip сообщает, совпал ли расшифрованный текст с исходным.
	RoundTrip bool

	Second    *rsa.KeyPair
	Signed    []*big.Int
	Delivered *channel.Delivery
}

// Authentic сообщает, подтвердилась ли подпись во второй части демонстрации.
func (r *Report) Authentic() bool {
	return r.Delivered != nil && r.Delivered.Authentic != nil && *r.Delivered.Authentic
}

type Demo struct {
	keys    *rsa.Generator
	codec   *codec.Codec
	channel *channel.Channel
	pauser  Pauser
	digits  int
	timeout time.Duration
}

// New создает демонстрацию. timeout ограничивает генерацию каждой ключевой
// пары отдельно и не распространяется на паузы; ноль снимает ограничение.
func New(keys *rsa.Generator, c *codec.Codec, digits int, timeout time.Duration, pauser Pauser) *Demo {
	if pauser == nil {
		pauser = NoPause{}
	}
	return &Demo{
		keys:    keys,
		codec:   c,
		channel: channel.New(c),
		pauser:  pauser,
		digits:  digits,
		timeout: timeout,
	}
}

// Run проводит демонстрацию над plaintext. Ошибкой считаются только сбои
// генерации ключей и недопустимые символы; искаженный результат
// отражается в Report.
func (d *Demo) Run(ctx context.Context, plaintext []byte) (*Report, error) {
	report := &Report{}

	encoded, err := d.codec.Encode(plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plaintext: %w", err)
	}
	report.Encoded = encoded

	log.Info().Msg("Testing encryption, generating keys")
	report.First, err = d.generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate first key pair: %w", err)
	}
	logKeyPair("Key setup completed", report.First)
	d.checkBound(report.First)
	if err = d.pause(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("plaintext", string(plaintext)).Msg("Performing encryption")
	log.Info().Strs("blocks", decimals(encoded)).Msg("String encoded to integers")
	if err = d.pause(ctx); err != nil {
		return nil, err
	}

	var encrypter encryption.Encrypter = rsa.NewEncrypter(report.First.Public(), d.codec)
	report.Encrypted, err = encrypter.Encrypt(plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	log.Info().Strs("ciphertext", decimals(report.Encrypted)).Msg("Encrypted message")
	if err = d.pause(ctx); err != nil {
		return nil, err
	}

	var decrypter encryption.Decrypter = rsa.NewDecrypter(report.First, d.codec)
	report.Decrypted, err = decrypter.Decrypt(report.Encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	report.RoundTrip = bytes.Equal(report.Decrypted, plaintext)
	log.Info().Str("plaintext", string(report.Decrypted)).Msg("Decrypted message")
	if report.RoundTrip {
		log.Info().Msg("Success, received message is identical")
	} else {
		log.Warn().Msg("Something went wrong, received message was garbled")
	}
	if err = d.pause(ctx); err != nil {
		return nil, err
	}

	log.Info().Msg("Testing authentication, generating second key pair")
	report.Second, err = d.generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate second key pair: %w", err)
	}
	logKeyPair("Generated second key", report.Second)
	d.checkBound(report.Second)
	if err = d.pause(ctx); err != nil {
		return nil, err
	}

	log.Info().Msg("Sending a signed and encrypted message from the first key pair to the second")
	report.Signed, err = d.channel.SendSigned(plaintext, report.First, report.Second.Public())
	if err != nil {
		return nil, fmt.Errorf("failed to send signed message: %w", err)
	}
	log.Info().Strs("ciphertext", decimals(report.Signed)).Msg("Encrypted and signed message")
	if err = d.pause(ctx); err != nil {
		return nil, err
	}

	report.Delivered, err = d.channel.ReceiveVerified(report.Signed, report.Second, report.First.Public(), plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to receive signed message: %w", err)
	}
	log.Info().Str("plaintext", string(report.Delivered.Text)).Msg("Decrypted message")
	if report.Authentic() {
		log.Info().Msg("Success, received message is identical")
	} else {
		log.Warn().Msg("Something went wrong, or the sender is not who they say they are")
	}
	return report, nil
}

func (d *Demo) generate(ctx context.Context) (*rsa.KeyPair, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return d.keys.Generate(ctx, d.digits)
}

func (d *Demo) pause(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.pauser.Wait(ctx)
}

// checkBound предупреждает, если блоки могут оказаться не меньше модуля.
func (d *Demo) checkBound(k *rsa.KeyPair) {
	if d.codec.Bound().Cmp(k.N) > 0 {
		log.Warn().
			Str("bound", d.codec.Bound().String()).
			Str("n", k.N.String()).
			Msg("Block values may exceed the modulus, decryption can be garbled")
	}
}

func logKeyPair(msg string, k *rsa.KeyPair) {
	log.Info().
		Str("p", k.P.String()).
		Str("q", k.Q.String()).
		Str("n", k.N.String()).
		Str("e", k.E.String()).
		Str("d", k.D.String()).
		Msg(msg)
}

func decimals(blocks []*big.Int) []string {
	result := make([]string, len(blocks))
	for i, b := range blocks {
		result[i] = b.String()
	}
	return result
}
