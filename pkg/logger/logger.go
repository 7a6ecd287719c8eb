package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL" default:"debug"`
	Sink     string        `yaml:"sink" envconfig:"LOG_SINK"`
}

// NewLogger builds a named zap logger writing to stdout and, optionally, a file sink.
func NewLogger(cfg Log, name string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	sinks := []string{"stdout"}
	if cfg.Sink != "" {
		sinks = append(sinks, cfg.Sink)
	}

	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(cfg.LogLevel),
		Encoding:         "json",
		EncoderConfig:    encCfg,
		OutputPaths:      sinks,
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatal("logger build ", err)
	}
	return logger.Named(name)
}
