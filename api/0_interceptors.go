package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fulldump/box"
	"go.uber.org/zap"

	"github.com/fulldump/tableview/logging"
)

func RecoverFromPanic(next box.H) box.H {
	return func(ctx context.Context) {
		defer func() {
			if err := recover(); err != nil {
				logging.FromContext(ctx).Error("panic",
					zap.Any("panic", err),
					zap.ByteString("stack", debug.Stack()),
				)
				box.SetError(ctx, fmt.Errorf("panic: %v", err))
			}
		}()
		next(ctx)
	}
}

// AccessLog logs every request and makes the logger available to handlers.
func AccessLog(l *zap.Logger) box.I {
	l = logging.OrNop(l)
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			now := time.Now()
			defer func() {
				fields := []zap.Field{
					zap.String("remote", formatRemoteAddr(r)),
					zap.String("method", r.Method),
					zap.String("url", r.URL.String()),
					zap.Duration("elapsed", time.Since(now)),
				}
				if err := box.GetError(ctx); err != nil {
					fields = append(fields, zap.Error(err))
				}
				l.Info("access", fields...)
			}()

			next(logging.NewContextWithLogger(ctx, l))
		}
	}
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(
		r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}

	i := strings.LastIndex(r.RemoteAddr, ":")
	if i < 0 {
		return r.RemoteAddr
	}
	return r.RemoteAddr[0:i]
}
