package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger логгер сервиса с printf-интерфейсом поверх zerolog
type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// Option дополнительная настройка логгера
type Option func(*options)

type options struct {
	format  string
	service string
	out     io.Writer
}

// WithFormat задаёт формат вывода: "json" (по умолчанию) или "console"
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = strings.ToLower(strings.TrimSpace(format))
	}
}

// WithService добавляет поле service в каждую запись
func WithService(name string) Option {
	return func(o *options) {
		o.service = name
	}
}

// WithOutput перенаправляет вывод (используется в тестах)
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// New создаёт логгер. Если file пустой, пишет в stdout,
// иначе дописывает в файл и дублирует в stdout.
func New(file string, level string, opts ...Option) (*Logger, error) {
	o := &options{format: "json"}
	for _, opt := range opts {
		opt(o)
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var (
		out io.Writer = os.Stdout
		f   *os.File
	)
	if o.out != nil {
		out = o.out
	}

	if file != "" {
		f, err = os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(out, f)
	}

	if o.format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if o.service != "" {
		ctx = ctx.Str("service", o.service)
	}

	return &Logger{zl: ctx.Logger(), file: f}, nil
}

// Debug пишет сообщение уровня debug
func (l *Logger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

// Info пишет сообщение уровня info
func (l *Logger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

// Warn пишет сообщение уровня warn
func (l *Logger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

// Error пишет сообщение уровня error
func (l *Logger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.zl.Fatal().Msgf(format, v...)
}

// With возвращает дочерний логгер с дополнительным полем
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Close закрывает файл лога, если он был открыт
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
