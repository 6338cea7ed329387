// Server обслуживает по HTTP генерацию ключей, шифрование и подписанную
// передачу сообщений. Ключевые пары хранятся только в памяти.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/xrymbos/rsa/internal/config"
	"github.com/xrymbos/rsa/internal/logger"
	"github.com/xrymbos/rsa/internal/server/http"
	"github.com/xrymbos/rsa/internal/storage"
)

func main() {
	cfg := config.GetServerConfig()
	if err := logger.Setup(cfg.LogConfig); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup logger")
	}

	server, err := http.NewServer(cfg, storage.NewMemoryStorage(cfg.KeyTTL))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	server.Run(ctx)
	log.Info().Msg("Server stopped")
}
