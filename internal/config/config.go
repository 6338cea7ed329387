// Package config собирает настройки из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/xrymbos/rsa/internal/codec"
	"github.com/xrymbos/rsa/internal/numtheory"
)

type KeyConfig struct {
	PrimeDigitWidth   int           `env:"PRIME_DIGITS" validate:"min=1,max=1000"`
	MillerRabinTrials int           `env:"MR_TRIALS" validate:"min=1,max=256"`
	Seed              int64         `env:"SEED"`
	Timeout           time.Duration `env:"KEYGEN_TIMEOUT" validate:"min=0"`
}

// Source возвращает детерминированный источник, если задан ненулевой Seed, иначе crypto/rand.
func (c KeyConfig) Source() numtheory.Source {
	if c.Seed != 0 {
		return numtheory.NewSeededSource(c.Seed)
	}
	return numtheory.CryptoSource()
}

type CodecConfig struct {
	BlockLength  int `env:"BLOCK_LENGTH" validate:"min=1"`
	AlphabetSize int `env:"ALPHABET_SIZE" validate:"min=2,max=256"`
}

// Codec создает codec.Codec с заданными параметрами.
func (c CodecConfig) Codec() (*codec.Codec, error) {
	return codec.New(c.BlockLength, c.AlphabetSize)
}

type LogConfig struct {
	Level      string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	File       string `env:"LOG_FILE"`
	MaxSize    int    `env:"LOG_MAX_SIZE" validate:"min=1,max=100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" validate:"min=1,max=10"`
	MaxAge     int    `env:"LOG_MAX_AGE" validate:"min=1,max=365"`
}

type DemoConfig struct {
	KeyConfig
	CodecConfig
	LogConfig
	InputFile string `env:"INPUT_FILE" validate:"required"`
	Pause     bool   `env:"PAUSE"`
}

type ServerConfig struct {
	KeyConfig
	CodecConfig
	LogConfig
	Address       string        `env:"ADDRESS" validate:"required,hostname_port"`
	KeyTTL        time.Duration `env:"KEY_TTL" validate:"min=0"`
	EvictInterval time.Duration `env:"EVICT_INTERVAL" validate:"gt=0"`
	TrustedSubnet string        `env:"TRUSTED_SUBNET" validate:"omitempty,cidr"`
}

func GetDemoConfig() DemoConfig {
	cfg, err := ParseDemoConfig(flag.CommandLine, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse demo config")
	}
	return cfg
}

func GetServerConfig() ServerConfig {
	cfg, err := ParseServerConfig(flag.CommandLine, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse server config")
	}
	return cfg
}

// ParseDemoConfig разбирает args (os.Args[1:], если args == nil) и окружение.
func ParseDemoConfig(fs *flag.FlagSet, args []string) (DemoConfig, error) {
	var config DemoConfig
	registerKeyFlags(fs, &config.KeyConfig)
	registerCodecFlags(fs, &config.CodecConfig)
	registerLogFlags(fs, &config.LogConfig)
	fs.StringVar(&config.InputFile, "f", "text.txt", "Plaintext file")
	fs.BoolVar(&config.Pause, "p", false, "Wait for Enter between demonstration steps")

	if err := parse(fs, args, &config); err != nil {
		return DemoConfig{}, err
	}
	return config, nil
}

// ParseServerConfig разбирает args (os.Args[1:], если args == nil) и окружение.
func ParseServerConfig(fs *flag.FlagSet, args []string) (ServerConfig, error) {
	var config ServerConfig
	registerKeyFlags(fs, &config.KeyConfig)
	registerCodecFlags(fs, &config.CodecConfig)
	registerLogFlags(fs, &config.LogConfig)
	fs.StringVar(&config.Address, "a", "127.0.0.1:8080", "Server address")
	fs.DurationVar(&config.KeyTTL, "ttl", time.Hour, "Key pair lifetime, 0 keeps keys forever")
	fs.DurationVar(&config.EvictInterval, "e", time.Minute, "Expired key eviction interval")
	fs.StringVar(&config.TrustedSubnet, "ts", "", "Trusted subnet in CIDR notation")

	if err := parse(fs, args, &config); err != nil {
		return ServerConfig{}, err
	}
	return config, nil
}

func registerKeyFlags(fs *flag.FlagSet, config *KeyConfig) {
	fs.IntVar(&config.PrimeDigitWidth, "d", 50, "Decimal digits of p and q")
	fs.IntVar(&config.MillerRabinTrials, "t", numtheory.DefaultTrials, "Miller-Rabin trials")
	fs.DurationVar(&config.Timeout, "timeout", 30*time.Second, "Key generation timeout, 0 disables it")
	fs.Int64Var(&config.Seed, "s", 0, "Random seed for reproducible keys, 0 uses crypto/rand")
}

func registerCodecFlags(fs *flag.FlagSet, config *CodecConfig) {
	fs.IntVar(&config.BlockLength, "b", codec.DefaultBlockLength, "Block length, units")
	fs.IntVar(&config.AlphabetSize, "m", codec.DefaultAlphabetSize, "Alphabet size")
}

func registerLogFlags(fs *flag.FlagSet, config *LogConfig) {
	fs.StringVar(&config.Level, "l", "info", "Log level")
	fs.StringVar(&config.File, "log-file", "", "Log file, stderr if empty")
	fs.IntVar(&config.MaxSize, "log-max-size", 10, "Log file size before rotation, MB")
	fs.IntVar(&config.MaxBackups, "log-max-backups", 3, "Rotated log files to keep")
	fs.IntVar(&config.MaxAge, "log-max-age", 28, "Rotated log file age, days")
}

func parse(fs *flag.FlagSet, args []string, config interface{}) error {
	if args == nil {
		args = os.Args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
