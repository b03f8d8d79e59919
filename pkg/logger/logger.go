// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns the request-scoped logger injected by the Logger
// middleware, so every line written from a handler carries the request id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("sale deleted", "sale_id", id)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/shashiranjanraj/ventas/config"
)

var L *slog.Logger

func init() {
	L = New(config.AppEnv(), os.Stdout)
	slog.SetDefault(L)
}

// New builds a JSON logger for production and a text logger for every other
// environment.
func New(env string, w io.Writer) *slog.Logger {
	return slog.New(newHandler(env, w))
}

func newHandler(env string, w io.Writer) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case "testing", "test":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Options selects the sinks Configure wires up. Stdout is always on.
type Options struct {
	Env string
	// File, when set, receives a JSON copy of every record, rotated by size.
	File string
	// MongoURI, when set, ships records to MongoDB asynchronously.
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Configure replaces L (and the slog default) with a logger writing to every
// sink in opts. The returned func flushes and closes the extra sinks.
func Configure(opts Options) (func(), error) {
	handlers := []slog.Handler{newHandler(opts.Env, os.Stdout)}
	var closers []func()

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		}
		handlers = append(handlers, slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: slog.LevelInfo}))
		closers = append(closers, func() { _ = rotator.Close() })
	}

	if opts.MongoURI != "" {
		mh, err := NewMongoHandler(opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, err
		}
		handlers = append(handlers, mh)
		closers = append(closers, mh.Close)
	}

	var h slog.Handler = handlers[0]
	if len(handlers) > 1 {
		h = NewMultiHandler(handlers...)
	}
	L = slog.New(h)
	slog.SetDefault(L)

	return func() {
		for _, c := range closers {
			c()
		}
	}, nil
}

type ctxKey struct{}

// WithCtx returns the logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
