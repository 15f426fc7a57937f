package observability

import (
	"io"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the adapter Logger interface.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger builds a structured logger writing JSON lines to w.
func NewZerologLogger(w io.Writer, level zerolog.Level) *ZerologLogger {
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &ZerologLogger{logger: logger}
}

// WrapZerolog adapts an existing zerolog.Logger.
func WrapZerolog(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// Debug logs at debug level.
func (z *ZerologLogger) Debug(msg string, fields ...Field) {
	applyFields(z.logger.Debug(), fields).Msg(msg)
}

// Info logs at info level.
func (z *ZerologLogger) Info(msg string, fields ...Field) {
	applyFields(z.logger.Info(), fields).Msg(msg)
}

// Warn logs at warn level.
func (z *ZerologLogger) Warn(msg string, fields ...Field) {
	applyFields(z.logger.Warn(), fields).Msg(msg)
}

// Error logs at error level.
func (z *ZerologLogger) Error(msg string, fields ...Field) {
	applyFields(z.logger.Error(), fields).Msg(msg)
}

func applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		switch value := field.Value.(type) {
		case string:
			event = event.Str(field.Key, value)
		case int:
			event = event.Int(field.Key, value)
		case int64:
			event = event.Int64(field.Key, value)
		case uint64:
			event = event.Uint64(field.Key, value)
		case bool:
			event = event.Bool(field.Key, value)
		case error:
			event = event.AnErr(field.Key, value)
		default:
			event = event.Interface(field.Key, value)
		}
	}
	return event
}
