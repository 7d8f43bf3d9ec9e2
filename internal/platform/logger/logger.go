// Package logger is the process wide zerolog setup plus request scoped child loggers
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"observafloresta/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string // zerolog level name, unknown names fall back to info
	Format  string // json or console
	NoColor bool   // console only
	Service string
	Writer  io.Writer
	Caller  bool
	Sample  uint32 // keep one of every Sample events when > 1
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_NO_COLOR, LOG_SERVICE, LOG_CALLER and LOG_SAMPLE
// it uses raw so config can log without an import cycle
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:   env.Get("LEVEL", "info"),
		Format:  env.Get("FORMAT", "json"),
		NoColor: env.GetBool("NO_COLOR", false),
		Service: env.Get("SERVICE", ""),
		Caller:  env.GetBool("CALLER", false),
		Sample:  uint32(env.GetInt("SAMPLE", 0)),
	}
}

var (
	once sync.Once
	root zerolog.Logger
)

// Init builds the root logger, only the first call in a process has any effect
func Init(opt Options) {
	once.Do(func() { root = build(opt) })
}

// Get returns the root logger, initialising it from the environment when Init never ran
func Get() *Logger {
	Init(FromEnv())
	return &root
}

func build(opt Options) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: opt.NoColor}
	}

	zc := zerolog.New(w).Level(level(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		zc = zc.Str("service", opt.Service)
	}
	if opt.Caller {
		zc = zc.Caller()
	}
	l := zc.Logger()
	if opt.Sample > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: opt.Sample})
	}
	return l
}

func level(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// WithRequest stores a child logger carrying the request id and client ip in ctx
func WithRequest(ctx context.Context, reqID, clientIP string) context.Context {
	zc := Get().With()
	if reqID != "" {
		zc = zc.Str("request_id", reqID)
	}
	if clientIP != "" {
		zc = zc.Str("client_ip", clientIP)
	}
	return zc.Logger().WithContext(ctx)
}

// C is the logger stored by WithRequest, or the root logger outside a request
func C(ctx context.Context) *Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return Get()
}

// Named tags the root logger with a component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}
