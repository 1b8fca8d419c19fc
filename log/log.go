package log

import (
	"os"
	"path"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	debugLogFile = "ctow_debug.log"

	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// New returns a logger writing JSON lines to the rotating debug log under
// dir. Unknown levels fall back to info.
func New(dir, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path.Join(dir, debugLogFile),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	})
	return NewWithWriter(writer, level), nil
}

// NewWithWriter returns a JSON logger writing to ws.
func NewWithWriter(ws zapcore.WriteSyncer, level string) *zap.Logger {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.SetLevel(zap.InfoLevel)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), ws, lvl)
	return zap.New(core).Named("ctow")
}
