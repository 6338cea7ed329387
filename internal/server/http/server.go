// Package http содержит реализацию сервиса учебного RSA,
// выполняющего генерацию ключей, шифрование и подписанную передачу
// сообщений по протоколу HTTP.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xrymbos/rsa/internal/channel"
	"github.com/xrymbos/rsa/internal/codec"
	"github.com/xrymbos/rsa/internal/config"
	"github.com/xrymbos/rsa/internal/encryption/rsa"
	"github.com/xrymbos/rsa/internal/scheduler"
	"github.com/xrymbos/rsa/internal/storage"
)

type Server struct {
	Storage       storage.Storage
	Keys          *rsa.Generator
	Codec         *codec.Codec
	Channel       *channel.Channel
	Digits        int
	Timeout       time.Duration
	TrustedSubnet string
	Address       string
	EvictInterval time.Duration
}

// NewServer создает сервис, хранящий ключевые пары в store.
func NewServer(cfg config.ServerConfig, store storage.Storage) (*Server, error) {
	c, err := cfg.Codec()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Storage:       store,
		Keys:          rsa.NewDefaultGenerator(cfg.MillerRabinTrials, cfg.Source()),
		Codec:         c,
		Channel:       channel.New(c),
		Digits:        cfg.PrimeDigitWidth,
		Timeout:       cfg.Timeout,
		TrustedSubnet: cfg.TrustedSubnet,
		Address:       cfg.Address,
		EvictInterval: cfg.EvictInterval,
	}
	return s, nil
}

// Run обслуживает запросы и периодически удаляет истекшие ключи до отмены ctx.
func (s *Server) Run(ctx context.Context) {
	sched := scheduler.New()
	defer sched.Stop()
	sched.Add(ctx, "evict", s.evict, s.EvictInterval)

	srv := &http.Server{
		Addr:    s.Address,
		Handler: s.Route(),
	}

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown HTTP server")
		}
	}()
	log.Info().Str("address", s.Address).Msg("Starting HTTP server")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Error on http server ListenAndServe")
	}
}

func (s *Server) evict(ctx context.Context) {
	if n := s.Storage.Evict(ctx, time.Now()); n > 0 {
		log.Info().Int("count", n).Msg("Evicted expired key pairs")
	}
}
