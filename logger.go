package norm

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelDev
	LogLevelProd
)

func (l *LogLevel) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "", "none":
		*l = LogLevelNone
	case "dev", "development":
		*l = LogLevelDev
	case "prod", "production":
		*l = LogLevelProd
	default:
		return fmt.Errorf("norm: log level should be one of none, dev, prod, got %q", value.Value)
	}
	return nil
}

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type zapLogger struct {
	l *zap.SugaredLogger
}

// NewLogger returns a zap backed Logger for the given level.
func NewLogger(level LogLevel) (Logger, error) {
	switch level {
	case LogLevelNone:
		return NopLogger(), nil
	case LogLevelDev:
		l, err := zap.NewDevelopmentConfig().Build()
		if err != nil {
			return nil, err
		}
		return &zapLogger{l.Sugar()}, nil
	case LogLevelProd:
		l, err := zap.NewProductionConfig().Build()
		if err != nil {
			return nil, err
		}
		return &zapLogger{l.Sugar()}, nil
	default:
		return nil, fmt.Errorf("norm: log level should be LogLevelNone, LogLevelDev or LogLevelProd")
	}
}

// NopLogger discards everything.
func NopLogger() Logger {
	return &zapLogger{zap.NewNop().Sugar()}
}

func (z *zapLogger) Debugf(format string, args ...any) {
	z.l.Debugf("[DEBUG] "+format, args...)
}

func (z *zapLogger) Infof(format string, args ...any) {
	z.l.Infof("[INFO] "+format, args...)
}

func (z *zapLogger) Warnf(format string, args ...any) {
	z.l.Warnf("[WARN] "+format, args...)
}

func (z *zapLogger) Errorf(format string, args ...any) {
	z.l.Errorf("[ERROR] "+format, args...)
}
