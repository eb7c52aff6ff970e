package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// NewMongoLogger creates a console logger dedicated to MongoDB command
// tracing. It is only used in the local environment where every command is
// printed, so readability wins over machine parsing.
func NewMongoLogger(level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: TimeFormat,
		FieldsExclude: []string{
			"service",
			"environment",
		},
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("component", "mongo").
		Logger()
}
