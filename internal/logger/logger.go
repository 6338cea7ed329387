// Package logger настраивает глобальный логгер zerolog.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/xrymbos/rsa/internal/config"
)

// Setup устанавливает уровень и вывод глобального логгера.
// Если указан файл, лог пишется в него в формате JSON с ротацией,
// иначе в stderr в человекочитаемом виде.
func Setup(cfg config.LogConfig) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = zerolog.New(writer(cfg)).With().Timestamp().Logger()
	return nil
}

func writer(cfg config.LogConfig) io.Writer {
	if cfg.File == "" {
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   true,
	}
}
