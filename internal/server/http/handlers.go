package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/xrymbos/rsa/internal/codec"
	"github.com/xrymbos/rsa/internal/encryption/rsa"
	"github.com/xrymbos/rsa/internal/numtheory"
	"github.com/xrymbos/rsa/internal/storage"
)

var (
	errInvalidBlock = errors.New("invalid block")
	validate        = validator.New()
)

type keyRequest struct {
	Digits int `json:"digits,omitempty" validate:"omitempty,min=1,max=1000"`
}

// PublicKeyResponse открытый ключ. Числа передаются десятичными строками.
type PublicKeyResponse struct {
	ID string `json:"id"`
	N  string `json:"n"`
	E  string `json:"e"`
}

type encryptRequest struct {
	ID   string `json:"key_id" validate:"required"`
	Text string `json:"text"`
}

type decryptRequest struct {
	ID     string   `json:"key_id" validate:"required"`
	Blocks []string `json:"blocks" validate:"dive,required"`
}

type sendRequest struct {
	Sender    string `json:"sender_id" validate:"required"`
	Recipient string `json:"recipient_id" validate:"required"`
	Text      string `json:"text"`
}

type receiveRequest struct {
	Recipient string   `json:"recipient_id" validate:"required"`
	Sender    string   `json:"sender_id" validate:"required"`
	Blocks    []string `json:"blocks" validate:"dive,required"`
	Expected  *string  `json:"expected,omitempty"`
}

// BlocksResponse зашифрованные блоки в виде десятичных строк.
type BlocksResponse struct {
	Blocks []string `json:"blocks"`
}

// TextResponse восстановленный текст. Authentic присутствует, только если
// в запросе был передан ожидаемый текст.
type TextResponse struct {
	Text      string `json:"text"`
	Authentic *bool  `json:"authentic,omitempty"`
}

// Ping хендлер для проверки доступности сервиса
func (s *Server) Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// CreateKeyPair хендлер, генерирующий и сохраняющий новую ключевую пару.
// Возвращает идентификатор и открытый ключ.
func (s *Server) CreateKeyPair() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req keyRequest
		if r.ContentLength != 0 {
			if !decode(w, r, &req) {
				return
			}
		}
		digits := s.Digits
		if req.Digits != 0 {
			digits = req.Digits
		}

		ctx := r.Context()
		if s.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.Timeout)
			defer cancel()
		}

		keyPair, err := s.Keys.Generate(ctx, digits)
		if err != nil {
			handleError(w, err)
			return
		}
		id, err := s.Storage.Put(r.Context(), keyPair)
		if err != nil {
			handleError(w, err)
			return
		}
		log.Info().Str("id", id).Int("digits", digits).Msg("Key pair generated")

		writeJSON(w, http.StatusCreated, publicKeyResponse(id, keyPair.Public()))
	}
}

// GetPublicKey хендлер, возвращающий открытый ключ по идентификатору из URL
func (s *Server) GetPublicKey() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		keyPair, err := s.Storage.Get(r.Context(), id)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, publicKeyResponse(id, keyPair.Public()))
	}
}

// DeleteKeyPair хендлер, удаляющий ключевую пару
func (s *Server) DeleteKeyPair() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Storage.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Encrypt хендлер, шифрующий текст открытым ключом сохраненной пары
func (s *Server) Encrypt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req encryptRequest
		if !decode(w, r, &req) {
			return
		}

		keyPair, err := s.Storage.Get(r.Context(), req.ID)
		if err != nil {
			handleError(w, err)
			return
		}
		blocks, err := rsa.NewEncrypter(keyPair.Public(), s.Codec).Encrypt([]byte(req.Text))
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, BlocksResponse{Blocks: formatBlocks(blocks)})
	}
}

// Decrypt хендлер, расшифровывающий блоки закрытым ключом сохраненной пары
func (s *Server) Decrypt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req decryptRequest
		if !decode(w, r, &req) {
			return
		}
		blocks, err := parseBlocks(req.Blocks)
		if err != nil {
			handleError(w, err)
			return
		}

		keyPair, err := s.Storage.Get(r.Context(), req.ID)
		if err != nil {
			handleError(w, err)
			return
		}
		text, err := rsa.NewDecrypter(keyPair, s.Codec).Decrypt(blocks)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TextResponse{Text: string(text)})
	}
}

// SendSigned хендлер, подписывающий текст ключом отправителя и шифрующий
// его открытым ключом получателя
func (s *Server) SendSigned() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		if !decode(w, r, &req) {
			return
		}

		sender, err := s.Storage.Get(r.Context(), req.Sender)
		if err != nil {
			handleError(w, err)
			return
		}
		recipient, err := s.Storage.Get(r.Context(), req.Recipient)
		if err != nil {
			handleError(w, err)
			return
		}

		blocks, err := s.Channel.SendSigned([]byte(req.Text), sender, recipient.Public())
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, BlocksResponse{Blocks: formatBlocks(blocks)})
	}
}

// ReceiveVerified хендлер, расшифровывающий сообщение ключом получателя и
// проверяющий подпись отправителя
func (s *Server) ReceiveVerified() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req receiveRequest
		if !decode(w, r, &req) {
			return
		}
		blocks, err := parseBlocks(req.Blocks)
		if err != nil {
			handleError(w, err)
			return
		}

		recipient, err := s.Storage.Get(r.Context(), req.Recipient)
		if err != nil {
			handleError(w, err)
			return
		}
		sender, err := s.Storage.Get(r.Context(), req.Sender)
		if err != nil {
			handleError(w, err)
			return
		}

		var original []byte
		if req.Expected != nil {
			original = []byte(*req.Expected)
		}
		delivery, err := s.Channel.ReceiveVerified(blocks, recipient, sender.Public(), original)
		if err != nil {
			handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TextResponse{Text: string(delivery.Text), Authentic: delivery.Authentic})
	}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Debug().Err(err).Msg("Failed to decode request")
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(v); err != nil {
		log.Debug().Err(err).Msg("Invalid request")
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, errInvalidBlock),
		errors.Is(err, codec.ErrInvalidUnit),
		errors.Is(err, numtheory.ErrInvalidArgument):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, numtheory.ErrCancelled):
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		log.Error().Err(err).Msg("Request failed")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func publicKeyResponse(id string, pub rsa.PublicKey) PublicKeyResponse {
	return PublicKeyResponse{ID: id, N: pub.N.String(), E: pub.E.String()}
}

func formatBlocks(blocks []*big.Int) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.String()
	}
	return out
}

func parseBlocks(values []string) ([]*big.Int, error) {
	blocks := make([]*big.Int, len(values))
	for i, v := range values {
		b, ok := new(big.Int).SetString(v, 10)
		if !ok || b.Sign() < 0 {
			return nil, fmt.Errorf("%w: %q at %d", errInvalidBlock, v, i)
		}
		blocks[i] = b
	}
	return blocks, nil
}
