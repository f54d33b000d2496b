// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package commons

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the application-wide logging contract. Every component takes a
// Logger instead of reaching for a package-level instance so that per-call
// loggers (one file per call) can be swapped in without touching call sites.
type Logger interface {
	Level() zapcore.Level

	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	DPanic(args ...interface{})
	DPanicf(template string, args ...interface{})
	Panic(args ...interface{})
	Panicf(template string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(template string, args ...interface{})

	Benchmark(functionName string, duration time.Duration)
	Tracef(ctx context.Context, format string, args ...interface{})

	Sync() error
}

type applicationLogger struct {
	base    *zap.Logger
	sugared *zap.SugaredLogger
	level   zap.AtomicLevel
}

// NewApplicationLogger builds the default production logger (console encoder,
// debug level). Use NewFileLogger for per-call log files.
func NewApplicationLogger() (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &applicationLogger{base: base, sugared: base.Sugar(), level: cfg.Level}, nil
}

// NewFileLogger builds a logger that also writes every record to the given
// file, rotated by size. Used for per-call logs so a single call can be
// replayed end to end.
func NewFileLogger(path string) (Logger, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)
	rotated := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
	})
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(enc, rotated, level),
	)
	base := zap.New(core, zap.AddCallerSkip(1))
	return &applicationLogger{base: base, sugared: base.Sugar(), level: level}, nil
}

func (l *applicationLogger) Level() zapcore.Level { return l.level.Level() }

func (l *applicationLogger) Debug(args ...interface{})                   { l.sugared.Debug(args...) }
func (l *applicationLogger) Debugf(template string, args ...interface{}) { l.sugared.Debugf(template, args...) }
func (l *applicationLogger) Info(args ...interface{})                    { l.sugared.Info(args...) }
func (l *applicationLogger) Infof(template string, args ...interface{})  { l.sugared.Infof(template, args...) }
func (l *applicationLogger) Warn(args ...interface{})                    { l.sugared.Warn(args...) }
func (l *applicationLogger) Warnf(template string, args ...interface{})  { l.sugared.Warnf(template, args...) }
func (l *applicationLogger) Error(args ...interface{})                   { l.sugared.Error(args...) }
func (l *applicationLogger) Errorf(template string, args ...interface{}) { l.sugared.Errorf(template, args...) }
func (l *applicationLogger) DPanic(args ...interface{})                  { l.sugared.DPanic(args...) }
func (l *applicationLogger) DPanicf(template string, args ...interface{}) {
	l.sugared.DPanicf(template, args...)
}
func (l *applicationLogger) Panic(args ...interface{})                   { l.sugared.Panic(args...) }
func (l *applicationLogger) Panicf(template string, args ...interface{}) { l.sugared.Panicf(template, args...) }
func (l *applicationLogger) Fatal(args ...interface{})                   { l.sugared.Fatal(args...) }
func (l *applicationLogger) Fatalf(template string, args ...interface{}) { l.sugared.Fatalf(template, args...) }

func (l *applicationLogger) Benchmark(functionName string, duration time.Duration) {
	l.sugared.Debugf("benchmark: %s took %s", functionName, duration)
}

func (l *applicationLogger) Tracef(ctx context.Context, format string, args ...interface{}) {
	l.sugared.Debugf(format, args...)
}

func (l *applicationLogger) Sync() error { return l.base.Sync() }
