package generator

import (
	"context"
	"log/slog"
)

// Logger receives the generator's diagnostics as a message plus slog-style
// key/value pairs. Debug reports reservations and expansions, Info summarizes
// finished requests, Warn reports inputs that degrade the output (an open
// schema fallback, an unmatched default literal).
//
//	gen, err := generator.New(nil, generator.WithLogger(generator.NewSlogAdapter(slog.Default())))
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)

	// With returns a Logger that adds kv to every entry. Each request logs
	// through a child scoped to its root type.
	With(kv ...any) Logger
}

// NopLogger discards everything. It is the default.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any) {}
func (NopLogger) Warn(string, ...any) {}
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter routes generator diagnostics to a *slog.Logger. Entries carry
// the request context, so handlers can correlate them with the active span.
type SlogAdapter struct {
	logger *slog.Logger
	ctx    context.Context
}

// NewSlogAdapter wraps logger, or slog.Default() when nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger, ctx: context.Background()}
}

func (s *SlogAdapter) Debug(msg string, kv ...any) { s.logger.Log(s.ctx, slog.LevelDebug, msg, kv...) }
func (s *SlogAdapter) Info(msg string, kv ...any) { s.logger.Log(s.ctx, slog.LevelInfo, msg, kv...) }
func (s *SlogAdapter) Warn(msg string, kv ...any) { s.logger.Log(s.ctx, slog.LevelWarn, msg, kv...) }

func (s *SlogAdapter) With(kv ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(kv...), ctx: s.ctx}
}

// withContext binds ctx to loggers that can carry it.
func withContext(l Logger, ctx context.Context) Logger {
	if s, ok := l.(*SlogAdapter); ok {
		return &SlogAdapter{logger: s.logger, ctx: ctx}
	}
	return l
}
