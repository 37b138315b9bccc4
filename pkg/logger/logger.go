package logger

import (
	"sync"

	"tire-service/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// InitLogger initializes the global logger with configuration
func InitLogger(cfg *config.Config) {
	once.Do(func() {
		var level zapcore.Level
		switch cfg.Log.Level {
		case "debug":
			level = zapcore.DebugLevel
		case "info":
			level = zapcore.InfoLevel
		case "warn":
			level = zapcore.WarnLevel
		case "error":
			level = zapcore.ErrorLevel
		default:
			level = zapcore.InfoLevel
		}

		var (
			logger *zap.Logger
			err    error
		)
		if cfg.Server.Env == "production" {
			prodConfig := zap.NewProductionConfig()
			prodConfig.Level = zap.NewAtomicLevelAt(level)
			prodConfig.OutputPaths = []string{"stdout"}
			prodConfig.EncoderConfig.TimeKey = "timestamp"
			prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			logger, err = prodConfig.Build(zap.Fields(
				zap.String("environment", cfg.Server.Env),
			))
		} else {
			devConfig := zap.NewDevelopmentConfig()
			devConfig.Level = zap.NewAtomicLevelAt(level)
			devConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			logger, err = devConfig.Build()
		}
		if err != nil {
			panic(err)
		}

		instance = logger
		zap.ReplaceGlobals(logger)
	})
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if instance == nil {
		logger, err := zap.NewProductionConfig().Build()
		if err != nil {
			panic(err)
		}
		instance = logger
	}
	return instance
}
