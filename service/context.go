package service

import (
	"context"
)

type contextKey string

const contextServicerKey contextKey = "servicer"

func SetServicer(ctx context.Context, s Servicer) context.Context {
	return context.WithValue(ctx, contextServicerKey, s)
}

// GetServicer returns nil when no servicer was injected.
func GetServicer(ctx context.Context) Servicer {
	s, _ := ctx.Value(contextServicerKey).(Servicer)
	return s
}
