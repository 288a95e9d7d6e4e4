package logging

import (
	"log/slog"
)

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelFatal = slog.Level(12)
	LevelPanic = slog.Level(13)
)

// enumeration of level keys (for performance. See Init's replaceFunc)
const (
	debugLevel = "debug"
	infoLevel  = "info"
	warnLevel  = "warn"
	errorLevel = "error"
	fatalLevel = "fatal"
	panicLevel = "panic"
)

type L struct {
	*slog.Logger
	*formatter
}

func newL(logger *slog.Logger) *L {
	return &L{
		Logger: logger,
		formatter: &formatter{
			l:        logger,
			exiter:   defaultExiter{},
			panicker: defaultPanicker{},
		}}
}

func (l *L) exiter(e exiter) *L {
	l.formatter.exiter = e
	return l
}

func (l *L) panicker(p panicker) *L {
	l.formatter.panicker = p
	return l
}

// With returns a logger that carries the given attributes on every subsequent
// record, preserving Fatal/Panic behavior (unlike the embedded *slog.Logger.With,
// which would otherwise shadow those methods with a plain *slog.Logger)
func (l *L) With(args ...any) *L {
	nl := l.Logger.With(args...)
	return &L{
		Logger: nl,
		formatter: &formatter{
			l:        nl,
			exiter:   l.formatter.exiter,
			panicker: l.formatter.panicker,
		},
	}
}

// WithGroup returns a logger whose subsequent attributes are nested under group
func (l *L) WithGroup(group string) *L {
	nl := l.Logger.WithGroup(group)
	return &L{
		Logger: nl,
		formatter: &formatter{
			l:        nl,
			exiter:   l.formatter.exiter,
			panicker: l.formatter.panicker,
		},
	}
}
