package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Init global log seviyesini ayarlar. Konsolda okunabilir çıktı için
// ConsoleWriter kullanıyoruz; production'da LOG_FORMAT=json ile ham JSON basılır.
func Init(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
}

func New(component string) zerolog.Logger {
	var logger zerolog.Logger
	if os.Getenv("LOG_FORMAT") == "json" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	}
	return logger.With().Timestamp().Str("component", component).Logger()
}
