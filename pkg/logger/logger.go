package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON logger writing to stderr and, when fileSyncer is non-nil, to the
// reopenable log file. Unknown levels fall back to info.
func NewLogger(logLevel string, fileSyncer *ReopenableWriteSyncer) *zap.Logger {
	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encodeConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encodeConfig.EncodeCaller = zapcore.ShortCallerEncoder

	level, err := zapcore.ParseLevel(logLevel)
	if err != nil || logLevel == "" {
		level = zap.InfoLevel
	}

	syncers := []zapcore.WriteSyncer{zapcore.Lock(os.Stderr)}
	if fileSyncer != nil {
		syncers = append(syncers, fileSyncer)
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encodeConfig), zapcore.NewMultiWriteSyncer(syncers...), level)
	return zap.New(core, zap.AddCaller())
}
