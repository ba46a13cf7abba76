// Package logging builds the zap logger shared by all casegallery components.
package logging

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/ziadkadry99/casegallery/internal/config"
)

// AppName names the root logger.
const AppName = "casegallery"

var isTerminal = term.IsTerminal

// New returns a logger configured from cfg. The console core writes to
// stderr so that stdout stays free for the MCP stdio transport. When
// verbose is set the console level is raised to debug.
func New(cfg config.LogConfig, verbose bool) (*zap.Logger, error) {
	level := cfg.Level
	if verbose {
		level = config.LogLevelDebug
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if isTerminal(int(os.Stderr.Fd())) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	var consoleCore zapcore.Core
	switch level {
	case config.LogLevelDebug:
		consoleCore = zapcore.NewCore(newEncoder(ec), zapcore.Lock(os.Stderr), zapcore.DebugLevel)
	case config.LogLevelNone:
		consoleCore = zapcore.NewNopCore()
	default:
		consoleCore = zapcore.NewCore(newEncoder(ec), zapcore.Lock(os.Stderr), zapcore.InfoLevel)
	}

	fileCore := zapcore.NewNopCore()
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
		}
		fileCore = zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.Lock(f), zapcore.DebugLevel)
	}

	return zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller()).Named(AppName), nil
}

// consoleEnc drops verbose error details when printing errors to console.
type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
