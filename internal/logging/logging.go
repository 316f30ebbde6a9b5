// Package logging adapts go-logger to the converter's Logger contract.
package logging

import (
	"context"
	"fmt"
	"sort"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Config captures the options exposed by the go-logger adapter.
type Config struct {
	Level     string // trace, debug, info, warn, error, fatal
	Format    string // json, console, pretty
	AddSource bool
}

// Logger is the structured logger handed to converters and the CLI.
type Logger struct {
	inner glog.Logger
}

// Root owns the go-logger instance and hands out named children.
type Root struct {
	base *glog.BaseLogger
}

// New builds a go-logger root from cfg. An empty format means console.
func New(cfg Config) (*Root, error) {
	options := []glog.Option{}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	return &Root{base: glog.NewLogger(options...)}, nil
}

// Named returns a child logger. An empty name returns the root logger.
func (r *Root) Named(name string) *Logger {
	name = strings.TrimSpace(name)
	if name == "" {
		return wrap(r.base)
	}
	return wrap(r.base.GetLogger(name))
}

func wrap(inner glog.Logger) *Logger {
	return &Logger{inner: inner}
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// With returns a logger that attaches fields to every entry. Loggers that
// cannot carry fields get them appended as key/value pairs instead.
func (l *Logger) With(fields map[string]any) *Logger {
	if len(fields) == 0 {
		return l
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	if fl, ok := l.inner.(glog.FieldsLogger); ok {
		return wrap(fl.WithFields(copied))
	}
	return wrap(&pairsLogger{inner: l.inner, pairs: sortedPairs(copied)})
}

// pairsLogger prepends fixed key/value pairs to every call.
type pairsLogger struct {
	inner glog.Logger
	pairs []any
}

func (p *pairsLogger) args(args []any) []any {
	return append(append(make([]any, 0, len(p.pairs)+len(args)), p.pairs...), args...)
}

func (p *pairsLogger) Trace(msg string, args ...any) { p.inner.Trace(msg, p.args(args)...) }
func (p *pairsLogger) Debug(msg string, args ...any) { p.inner.Debug(msg, p.args(args)...) }
func (p *pairsLogger) Info(msg string, args ...any)  { p.inner.Info(msg, p.args(args)...) }
func (p *pairsLogger) Warn(msg string, args ...any)  { p.inner.Warn(msg, p.args(args)...) }
func (p *pairsLogger) Error(msg string, args ...any) { p.inner.Error(msg, p.args(args)...) }
func (p *pairsLogger) Fatal(msg string, args ...any) { p.inner.Fatal(msg, p.args(args)...) }

func (p *pairsLogger) WithContext(ctx context.Context) glog.Logger {
	return &pairsLogger{inner: p.inner.WithContext(ctx), pairs: p.pairs}
}

func sortedPairs(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, fields[k])
	}
	return pairs
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}
