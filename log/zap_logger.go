// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package log

import (
	"context"
	"log/slog"

	"github.com/luxfi/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements log.Logger over a real *zap.Logger, for production
// use by cmd/unicorn. NoLog in this package remains the choice for tests
// that don't want log output.
type ZapLogger struct {
	l *zap.Logger
}

// NewProduction returns a ZapLogger backed by zap's JSON production config.
func NewProduction() (log.Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{l: l}, nil
}

// NewDevelopment returns a ZapLogger backed by zap's human-readable
// console config, for local runs of cmd/unicorn's run subcommand.
func NewDevelopment() (log.Logger, error) {
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{l: l}, nil
}

func toFields(ctx []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, ctx[i+1]))
	}
	return fields
}

func (z *ZapLogger) With(ctx ...interface{}) log.Logger {
	return &ZapLogger{l: z.l.With(toFields(ctx)...)}
}

func (z *ZapLogger) New(ctx ...interface{}) log.Logger {
	return z.With(ctx...)
}

func (z *ZapLogger) Log(level slog.Level, msg string, ctx ...interface{}) {
	z.l.With(toFields(ctx)...).Check(slogToZapLevel(level), msg).Write()
}

func (z *ZapLogger) Trace(msg string, ctx ...interface{}) {
	z.l.Debug(msg, toFields(ctx)...)
}

func (z *ZapLogger) Debug(msg string, ctx ...interface{}) {
	z.l.Debug(msg, toFields(ctx)...)
}

func (z *ZapLogger) Info(msg string, ctx ...interface{}) {
	z.l.Info(msg, toFields(ctx)...)
}

func (z *ZapLogger) Warn(msg string, ctx ...interface{}) {
	z.l.Warn(msg, toFields(ctx)...)
}

func (z *ZapLogger) Error(msg string, ctx ...interface{}) {
	z.l.Error(msg, toFields(ctx)...)
}

func (z *ZapLogger) Crit(msg string, ctx ...interface{}) {
	z.l.Error(msg, toFields(ctx)...)
}

func (z *ZapLogger) WriteLog(level slog.Level, msg string, attrs ...any) {
	z.l.Check(slogToZapLevel(level), msg).Write()
}

func (z *ZapLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return z.l.Core().Enabled(slogToZapLevel(level))
}

func (z *ZapLogger) Handler() slog.Handler {
	return nil
}

func (z *ZapLogger) Fatal(msg string, fields ...zap.Field) {
	z.l.Fatal(msg, fields...)
}

func (z *ZapLogger) Verbo(msg string, fields ...zap.Field) {
	z.l.Debug(msg, fields...)
}

func (z *ZapLogger) WithFields(fields ...zap.Field) log.Logger {
	return &ZapLogger{l: z.l.With(fields...)}
}

func (z *ZapLogger) WithOptions(opts ...zap.Option) log.Logger {
	return &ZapLogger{l: z.l.WithOptions(opts...)}
}

func (z *ZapLogger) SetLevel(level slog.Level) {}

func (z *ZapLogger) GetLevel() slog.Level {
	return slog.LevelInfo
}

func (z *ZapLogger) EnabledLevel(lvl slog.Level) bool {
	return z.l.Core().Enabled(slogToZapLevel(lvl))
}

func (z *ZapLogger) StopOnPanic() {}

func (z *ZapLogger) RecoverAndPanic(f func()) {
	f()
}

func (z *ZapLogger) RecoverAndExit(f, exit func()) {
	f()
}

func (z *ZapLogger) Stop() {
	_ = z.l.Sync()
}

func (z *ZapLogger) Write(p []byte) (int, error) {
	z.l.Info(string(p))
	return len(p), nil
}

func slogToZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

var _ log.Logger = (*ZapLogger)(nil)
