// Package logger is the process-wide structured logger. Call Init once at
// startup; until then a no-op logger is used.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log = zap.NewNop().Sugar()
)

// Init builds the global logger for the given environment. "production" logs
// JSON at info level, anything else logs human-readable console output at debug.
func Init(environment string) {
	var (
		base *zap.Logger
		err  error
	)

	if environment == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		base, err = cfg.Build(zap.AddCallerSkip(1))
	} else {
		base, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	}
	if err != nil {
		base = zap.NewExample()
	}

	SetLogger(base)
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l.Sugar()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug(msg string, keysAndValues ...any) {
	current().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	current().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	current().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	current().Errorw(msg, keysAndValues...)
}

// Fatal logs and exits the process.
func Fatal(msg string, keysAndValues ...any) {
	current().Fatalw(msg, keysAndValues...)
}

// Sync flushes buffered entries; call it before exit.
func Sync() {
	_ = current().Sync()
}
