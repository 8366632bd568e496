package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

type Option func(config *zap.Config) zapcore.Core

// WithFile additionally writes JSON logs to a rotated file.
func WithFile(path string, maxSizeMB, maxBackups int) Option {
	return func(config *zap.Config) zapcore.Core {
		writer := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			Compress:   true,
		}
		return zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(writer),
			config.Level,
		)
	}
}

func InitProd(opts ...Option) *zap.Logger {
	return initLogger(zap.NewProductionConfig(), opts...)
}

func InitDev(opts ...Option) *zap.Logger {
	return initLogger(zap.NewDevelopmentConfig(), opts...)
}

func initLogger(config zap.Config, opts ...Option) *zap.Logger {
	var err error
	logger, err = config.Build(zap.AddStacktrace(zap.WarnLevel))
	if err != nil {
		fmt.Printf("Failed to init zap logger: %v", err)
		os.Exit(1)
	}

	cores := make([]zapcore.Core, 0, len(opts))
	for _, opt := range opts {
		cores = append(cores, opt(&config))
	}
	if len(cores) > 0 {
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(append([]zapcore.Core{core}, cores...)...)
		}))
	}

	zap.ReplaceGlobals(logger)
	return logger
}

func Sync() {
	_ = logger.Sync()
}
