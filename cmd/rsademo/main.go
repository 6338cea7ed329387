// Rsademo читает открытый текст из файла и демонстрирует на нем
// шифрование и подписанную передачу сообщения между двумя ключевыми парами.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/xrymbos/rsa/internal/config"
	"github.com/xrymbos/rsa/internal/demo"
	"github.com/xrymbos/rsa/internal/encryption/rsa"
	"github.com/xrymbos/rsa/internal/logger"
)

func main() {
	cfg := config.GetDemoConfig()
	if err := logger.Setup(cfg.LogConfig); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	report, err := run(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		stop()
		log.Fatal().Err(err).Msg("Demonstration failed")
	}
	log.Info().
		Bool("round_trip", report.RoundTrip).
		Bool("authentic", report.Authentic()).
		Msg("Demonstration finished")
}

// run проводит демонстрацию над содержимым cfg.InputFile. Паузы читают in и пишут в out.
func run(ctx context.Context, cfg config.DemoConfig, in io.Reader, out io.Writer) (*demo.Report, error) {
	plaintext, err := os.ReadFile(cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read plaintext: %w", err)
	}

	c, err := cfg.Codec()
	if err != nil {
		return nil, err
	}

	var pauser demo.Pauser = demo.NoPause{}
	if cfg.Pause {
		pauser = demo.NewLinePauser(in, out)
	}

	keys := rsa.NewDefaultGenerator(cfg.MillerRabinTrials, cfg.Source())
	return demo.New(keys, c, cfg.PrimeDigitWidth, cfg.Timeout, pauser).Run(ctx, plaintext)
}
