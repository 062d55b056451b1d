package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger: console output in development,
// JSON otherwise. An unknown level falls back to info.
func Init(env, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	// zerolog.Ctx falls back to the global logger outside of a request.
	zerolog.DefaultContextLogger = &log.Logger
}

func Info(msg string, fields map[string]interface{}) {
	log.Info().Fields(fields).Msg(msg)
}

func Debug(msg string) {
	log.Debug().Msg(msg)
}

func Warn(msg string, fields map[string]interface{}) {
	log.Warn().Fields(fields).Msg(msg)
}

func Error(msg string, err error) {
	log.Error().Err(err).Msg(msg)
}
