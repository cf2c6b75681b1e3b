package cli

import (
	"context"
	"time"

	"github.com/fortrabbit/craft-plugin-list/pkg/observability"
)

// logHooks writes HTTP and cache events to the logger carried in the
// request context at debug level.
type logHooks struct{}

// InstallHooks routes observability events to the run logger.
func InstallHooks() {
	observability.SetHTTPHooks(logHooks{})
	observability.SetCacheHooks(logHooks{})
}

func (logHooks) OnRequest(ctx context.Context, method, host, path string) {
	loggerFromContext(ctx).Debug("request", "method", method, "host", host, "path", path)
}

func (logHooks) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	loggerFromContext(ctx).Debug("response", "method", method, "path", path, "status", status,
		"duration", d.Round(time.Millisecond))
}

func (logHooks) OnError(ctx context.Context, method, host, path string, err error) {
	loggerFromContext(ctx).Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

func (logHooks) OnCacheHit(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache hit", "key", keyType)
}

func (logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache miss", "key", keyType)
}

func (logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	loggerFromContext(ctx).Debug("cache set", "key", keyType, "bytes", size)
}
