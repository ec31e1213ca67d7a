package logging

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	contextKeyLogger contextKey = "logger"
)

// New builds a production logger, or a development one when debug is set.
func New(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config = zap.NewDevelopmentConfig()
	}
	return config.Build()
}

// OrNop never returns nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func NewContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

func FromContext(ctx context.Context) *zap.Logger {
	logger, ok := ctx.Value(contextKeyLogger).(*zap.Logger)
	if !ok || logger == nil {
		return zap.L()
	}
	return logger
}
