package mlog

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogConfig struct {
	// Level, See also zapcore.ParseLevel.
	Level string `yaml:"level"`

	// File that logger will be writen into.
	// Default is stderr.
	File string `yaml:"file"`

	// Production enables json output.
	Production bool `yaml:"production"`
}

var (
	stderr = zapcore.Lock(os.Stderr)
	lvl    = zap.NewAtomicLevelAt(zap.InfoLevel)
	l      = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), stderr, lvl))
	s      = l.Sugar()

	nop = zap.NewNop()

	// Log files are shared by every logger writing to the same path.
	filesMu sync.Mutex
	files   = make(map[string]openedFile)
)

type openedFile struct {
	ws    zapcore.WriteSyncer
	close func()
}

func NewLogger(lc *LogConfig) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	var out zapcore.WriteSyncer
	if lf := lc.File; len(lf) > 0 {
		out, err = openFile(lf)
		if err != nil {
			return nil, err
		}
	} else {
		out = stderr
	}

	if lc.Production {
		return zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), out, lvl)), nil
	}
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), out, lvl)), nil
}

func openFile(path string) (zapcore.WriteSyncer, error) {
	filesMu.Lock()
	defer filesMu.Unlock()

	if of, ok := files[path]; ok {
		return of.ws, nil
	}
	f, closeFn, err := zap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	ws := zapcore.Lock(f)
	files[path] = openedFile{ws: ws, close: closeFn}
	return ws, nil
}

// CloseFiles syncs and closes every log file opened by NewLogger. Loggers
// built before the call must not be used afterwards.
func CloseFiles() {
	filesMu.Lock()
	defer filesMu.Unlock()

	for path, of := range files {
		_ = of.ws.Sync()
		of.close()
		delete(files, path)
	}
}

// L is a global logger.
func L() *zap.Logger {
	return l
}

// SetLevel sets the log level for the global logger.
func SetLevel(l zapcore.Level) {
	lvl.SetLevel(l)
}

// S is a global logger.
func S() *zap.SugaredLogger {
	return s
}

// Nop is a logger that never writes out logs.
func Nop() *zap.Logger {
	return nop
}
