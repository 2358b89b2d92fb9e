package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name. Unknown names fall back to INFO.
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelNone:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// Logger is a printf-style front end over a slog text handler. Messages are
// tagged by the caller ("[SIM] ...").
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	lvl    Level
}

func New(out io.Writer, level Level) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level.slog())
	h := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: lv,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Frame logs are noisy enough without timestamps.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return &Logger{logger: slog.New(h), level: lv, lvl: level}
}

// Discard returns a logger that drops everything.
func Discard() *Logger { return New(io.Discard, LevelNone) }

func (l *Logger) logf(level slog.Level, format string, v ...any) {
	if l == nil || !l.logger.Enabled(context.Background(), level) {
		return
	}
	l.logger.Log(context.Background(), level, fmt.Sprintf(format, v...))
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(slog.LevelDebug, format, v...) }

func (l *Logger) Infof(format string, v ...any) { l.logf(slog.LevelInfo, format, v...) }

func (l *Logger) Warnf(format string, v ...any) { l.logf(slog.LevelWarn, format, v...) }

func (l *Logger) Errorf(format string, v ...any) { l.logf(slog.LevelError, format, v...) }

func (l *Logger) SetLevel(level Level) {
	l.lvl = level
	l.level.Set(level.slog())
}

func (l *Logger) Level() Level {
	return l.lvl
}
