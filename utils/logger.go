// utils/logger.go
package utils

import (
	"io"
	"os"
	"time"

	"ecometer/config"

	"github.com/rs/zerolog"
	"gopkg.in/lumberjack.v2"
)

// Logger is the service-wide structured logger.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// InitLogger configures Logger from cfg: human-readable console output and,
// when cfg.File is set, JSON lines to a rotated log file.
func InitLogger(cfg config.LogConfig) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().Timestamp().
		Logger()
	Logger.Info().Str("level", lvl.String()).Str("file", cfg.File).Msg("📝 logger initialized")
}
