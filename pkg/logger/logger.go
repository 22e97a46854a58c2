package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger de cada proceso (cmd/api, cmd/web).
type Config struct {
	Env     string // development -> consola legible; otro -> JSON
	Level   string // trace, debug, info, warn, error
	Service string // se agrega como campo "service" en cada línea
}

// Logger envuelve zerolog para inyectarlo en handlers, casos de uso y adaptadores.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger del proceso y lo instala también como logger global de zerolog.
func New(cfg Config) *Logger {
	return build(os.Stdout, cfg)
}

// FromWriter construye un logger JSON sobre w; los tests lo usan para inspeccionar la salida.
func FromWriter(w io.Writer) *Logger {
	return &Logger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

// Nop descarta todo.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func build(out io.Writer, cfg Config) *Logger {
	w := out
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Named devuelve un sublogger con el campo component (auth, guard, mailer...).
func (l *Logger) Named(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// ForTenant agrega company_id y user_id; se usa en las operaciones con actor autenticado.
func (l *Logger) ForTenant(companyID, userID string) *Logger {
	return &Logger{zl: l.zl.With().Str("company_id", companyID).Str("user_id", userID).Logger()}
}
